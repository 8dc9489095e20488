package board

import (
	"path/filepath"
	"testing"

	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/types"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	store, err := catalog.Open(filepath.Join(t.TempDir(), "mpflash.db"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func TestResolveByDescriptionAtRequestedVersion(t *testing.T) {
	r := openTestRegistry(t)

	old := types.Board{BoardID: "PICO", Version: "v1.21.0", Description: "Raspberry Pi Pico", Port: "rp2"}
	newer := types.Board{BoardID: "PICO", Version: "v1.22.0", Description: "Raspberry Pi Pico", Port: "rp2"}
	if err := r.store.UpsertBoard(old); err != nil {
		t.Fatalf("upsert old: %v", err)
	}
	if err := r.store.UpsertBoard(newer); err != nil {
		t.Fatalf("upsert newer: %v", err)
	}

	b, err := r.ResolveByDescription("Raspberry Pi Pico", "Raspberry Pi Pico", "v1.21.0")
	if err != nil {
		t.Fatalf("ResolveByDescription: %v", err)
	}
	if b.Version != "v1.21.0" {
		t.Fatalf("Version = %q, want the requested v1.21.0, not the latest", b.Version)
	}
}

func TestResolveByDescriptionFallsBackWhenVersionMissing(t *testing.T) {
	r := openTestRegistry(t)

	board := types.Board{BoardID: "PICO", Version: "v1.22.0", Description: "Raspberry Pi Pico", Port: "rp2"}
	if err := r.store.UpsertBoard(board); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	b, err := r.ResolveByDescription("Raspberry Pi Pico", "Raspberry Pi Pico", "v1.99.0")
	if err != nil {
		t.Fatalf("ResolveByDescription: %v", err)
	}
	if b.Version != "v1.22.0" {
		t.Fatalf("Version = %q, want fallback to the only known version v1.22.0", b.Version)
	}
}
