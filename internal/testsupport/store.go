package testsupport

import (
	"context"
	"testing"

	"biblioteca/internal/config"
	"biblioteca/internal/logging"
	"biblioteca/internal/store"
)

// MustOpenStore opens the configured catalog database and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg.Paths.Database, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}
