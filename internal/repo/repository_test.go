package repo_test

import (
	"testing"

	"github.com/hamed0406/deusexludus/internal/repo"
	"github.com/hamed0406/deusexludus/internal/repo/memory"
	pg "github.com/hamed0406/deusexludus/internal/repo/postgres"
	"github.com/hamed0406/deusexludus/internal/repo/sqlite"
)

// Compile-time interface satisfaction checks.
// Using external test package avoids import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.ActorStore = memory.New()
	var _ repo.CheckStore = memory.New()

	var _ repo.Store = (*pg.Store)(nil)
	var _ repo.Store = (*sqlite.Store)(nil)
}
