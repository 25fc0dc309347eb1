package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/roller"
)

type client struct {
	base string
	key  string
	lang string
	http *http.Client
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	c := &client{
		base: strings.TrimRight(api, "/"),
		key:  os.Getenv("API_KEY"),
		lang: os.Getenv("CHAT_LANG"),
		http: &http.Client{Timeout: 10 * time.Second},
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Actor id (blank to list actors): ")
	id, _ := reader.ReadString('\n')
	id = strings.TrimSpace(id)
	if id == "" {
		if err := c.listActors(); err != nil {
			fmt.Println("Error contacting API:", err)
		}
		return
	}

	for {
		fmt.Print("Skill to roll (blank to quit): ")
		skill, err := reader.ReadString('\n')
		skill = strings.TrimSpace(skill)
		if skill == "" || err != nil {
			return
		}
		rep, err := c.roll(id, skill)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s\n%s [%s]\n", rep.Title, rep.Message, rep.Label)
	}
}

func (c *client) do(method, path string) (*http.Response, error) {
	u := c.base + path
	if c.lang != "" {
		u += "?lang=" + url.QueryEscape(c.lang)
	}
	req, err := http.NewRequest(method, u, nil)
	if err != nil {
		return nil, err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	return c.http.Do(req)
}

func (c *client) listActors() error {
	resp, err := c.do(http.MethodGet, "/api/actors")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status: %s", resp.Status)
	}
	var actors []domain.Actor
	if err := json.NewDecoder(resp.Body).Decode(&actors); err != nil {
		return err
	}
	for _, a := range actors {
		fmt.Printf("%s  %-10s %s\n", a.ID, a.Type, a.Name)
	}
	return nil
}

func (c *client) roll(id, skill string) (*roller.Report, error) {
	resp, err := c.do(http.MethodPost, "/api/actors/"+url.PathEscape(id)+"/skills/"+url.PathEscape(skill)+"/roll")
	if err != nil {
		return nil, fmt.Errorf("error contacting API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "" {
			return nil, fmt.Errorf("%s", body.Error)
		}
		return nil, fmt.Errorf("API returned status: %s", resp.Status)
	}
	var rep roller.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
