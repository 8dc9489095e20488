package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpflash/mpflash/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpflash.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndFindExact(t *testing.T) {
	store := openTestStore(t)

	board := types.Board{BoardID: "RPI_PICO", Version: "v1.22.0", Port: "rp2", Description: "Raspberry Pi Pico"}
	fw := types.Firmware{BoardID: "RPI_PICO", Version: "v1.22.0", Port: "rp2", FirmwareFile: "rp2/RPI_PICO-v1.22.0.uf2"}

	_, err := store.UpsertFirmware(fw, board)
	require.NoError(t, err)

	found, err := store.Find("RPI_PICO", "v1.22.0", "rp2")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "rp2/RPI_PICO-v1.22.0.uf2", found[0].FirmwareFile)
	require.NotEmpty(t, found[0].ID)
}

func TestFindFallsBackThroughRewriteTable(t *testing.T) {
	store := openTestStore(t)

	board := types.Board{BoardID: "RPI_PICO", Version: "v1.22.0", Port: "rp2"}
	fw := types.Firmware{BoardID: "RPI_PICO", Version: "v1.22.0", Port: "rp2", FirmwareFile: "rp2/RPI_PICO-v1.22.0.uf2"}
	_, err := store.UpsertFirmware(fw, board)
	require.NoError(t, err)

	// "PICO" on its own isn't stored directly; Find should retry via
	// the PICO -> RPI_PICO rewrite.
	found, err := store.Find("PICO", "v1.22.0", "rp2")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestFindPreviewReturnsSingleHighestBuild(t *testing.T) {
	store := openTestStore(t)

	board := types.Board{BoardID: "RPI_PICO", Version: "preview", Port: "rp2"}
	older := types.Firmware{BoardID: "RPI_PICO", Version: "preview", Port: "rp2", FirmwareFile: "rp2/RPI_PICO-preview.1234.uf2", Build: 1234}
	newer := types.Firmware{BoardID: "RPI_PICO", Version: "preview", Port: "rp2", FirmwareFile: "rp2/RPI_PICO-preview.1240.uf2", Build: 1240}

	_, err := store.UpsertFirmware(older, board)
	require.NoError(t, err)
	_, err = store.UpsertFirmware(newer, board)
	require.NoError(t, err)

	found, err := store.Find("RPI_PICO", "preview", "rp2")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, 1240, found[0].Build)
}

func TestFindMissingReturnsFirmwareMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Find("NOT_A_BOARD", "v1.22.0", "rp2")
	require.Error(t, err)
}
