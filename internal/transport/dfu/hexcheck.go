package dfu

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"

	"github.com/mpflash/mpflash/internal/errs"
)

// validateHex sanity-checks an Intel HEX artifact before it is ever
// written to a device: a corrupt record checksum here means a bad
// download, not a device fault, and is worth catching before the
// device is even touched.
func validateHex(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".hex") {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return errs.New(errs.KindFirmwareMissing, "open hex artifact", err.Error())
	}
	defer f.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return errs.New(errs.KindFirmwareMissing, "corrupt hex artifact", err.Error())
	}
	return nil
}
