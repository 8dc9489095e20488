package commands

import "testing"

func TestParseFirmwarePath(t *testing.T) {
	board, fw, ok := parseFirmwarePath("rp2/RPI_PICO-v1.22.0.uf2")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if board.Port != "rp2" || board.BoardID != "RPI_PICO" || board.Version != "v1.22.0" {
		t.Fatalf("unexpected board: %+v", board)
	}
	if fw.BoardID != "RPI_PICO" || fw.Version != "v1.22.0" {
		t.Fatalf("unexpected firmware: %+v", fw)
	}
}

func TestParseFirmwarePathRejectsFlatNames(t *testing.T) {
	if _, _, ok := parseFirmwarePath("RPI_PICO-v1.22.0.uf2"); ok {
		t.Fatalf("expected parse to fail for a file with no port directory")
	}
}

func TestParseFirmwarePathRejectsNoVersionSeparator(t *testing.T) {
	if _, _, ok := parseFirmwarePath("rp2/RPIPICO.uf2"); ok {
		t.Fatalf("expected parse to fail when there's no board-version separator")
	}
}
