// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/deusexludus/internal/config"
	"github.com/hamed0406/deusexludus/internal/i18n"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}

	if len(cfg.AdminAPIKeys) == 0 {
		fail("ADMIN_API_KEYS is empty (actor writes would be open to anyone).")
	}
	if len(cfg.PublicAPIKeys) == 0 {
		fail("PUBLIC_API_KEYS is empty (read and roll routes would be open to anyone).")
	}
	for _, k := range cfg.PublicAPIKeys {
		for _, a := range cfg.AdminAPIKeys {
			if k == a {
				warn("a key is listed in both PUBLIC_API_KEYS and ADMIN_API_KEYS; it gets admin rights")
			}
		}
	}
	ok("API_ADDR=" + cfg.Addr)

	switch {
	case cfg.DatabaseURL != "":
		ok("DATABASE_URL present (postgres)")
		if cfg.SQLitePath != "" {
			warn("SQLITE_PATH is ignored while DATABASE_URL is set")
		}
	case cfg.SQLitePath != "":
		ok("SQLITE_PATH=" + cfg.SQLitePath)
	default:
		warn("no DATABASE_URL or SQLITE_PATH: actors and checks live in memory and vanish on restart")
	}

	if len(cfg.AllowedOrigins) == 0 {
		warn("ALLOWED_ORIGINS empty: any origin may call the API and open the chat stream")
	} else {
		ok("ALLOWED_ORIGINS=" + strings.Join(cfg.AllowedOrigins, ","))
	}

	if cfg.RedisAddr == "" && cfg.ChatWebhookURL == "" {
		warn("no REDIS_ADDR or CHAT_WEBHOOK_URL: rolls reach only the log and websocket clients")
	}

	msgs, err := i18n.Load()
	if err != nil {
		fail("locale catalogs: " + err.Error())
	}
	if tag := msgs.Match(cfg.DefaultLocale); tag.String() != cfg.DefaultLocale {
		warn("DEFAULT_LOCALE=" + cfg.DefaultLocale + " is not bundled; falling back to " + tag.String())
	}
	if cfg.DiceSeed != 0 {
		warn("DICE_SEED is set: every restart replays the same rolls")
	}
	ok(fmt.Sprintf("missing skills: %s, default target number %d", cfg.MissingSkillPolicy, cfg.DefaultTargetNumber))

	ok("preflight passed")
}
