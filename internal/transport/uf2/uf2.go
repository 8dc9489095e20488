// Package uf2 programs UF2-capable boards by copying the firmware
// artifact onto the mass-storage volume the board's bootloader
// exposes.
package uf2

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
	"github.com/mpflash/mpflash/internal/ui/progress"
)

// CapablePorts lists the ports known to speak the UF2 mass-storage
// protocol, and so to accept a nuke/erase image before the real
// firmware under the --erase flag contract. transport.Select's auto
// resolution and this driver's erase precondition both consult it.
var CapablePorts = map[string]bool{
	"rp2":  true,
	"samd": true,
}

// nukeImageName is the universal erase artifact mpflash ships
// alongside the firmware catalog; Flash looks for it under the
// firmware root before copying the real artifact.
const nukeImageName = "universal_flash_nuke.uf2"

// Driver flashes firmware over a UF2 mass-storage volume.
type Driver struct {
	// PollInterval and PollTimeout govern how long Flash waits for the
	// volume to remount after reset and to disappear after the copy.
	PollInterval time.Duration
	PollTimeout  time.Duration

	// FirmwareRoot locates nukeImageName for an --erase flash.
	FirmwareRoot string
}

func New(firmwareRoot string) *Driver {
	return &Driver{PollInterval: 200 * time.Millisecond, PollTimeout: 10 * time.Second, FirmwareRoot: firmwareRoot}
}

func (d *Driver) Name() string { return "uf2" }

func (d *Driver) Flash(ctx context.Context, item types.WorklistItem) error {
	if item.Firmware == nil {
		return errs.New(errs.KindFirmwareMissing, "no firmware selected for uf2 flash")
	}

	if item.Erase && !CapablePorts[item.Device.Port] {
		return errs.New(errs.KindUnsuitableTransport, "erase not supported on this port", item.Device.Port)
	}

	vol, err := d.findVolume(ctx, item.Device.BoardID)
	if err != nil {
		return err
	}

	if item.Erase {
		nuke := filepath.Join(d.FirmwareRoot, nukeImageName)
		if err := copyArtifact(nuke, vol, item.Device.Serial+" (erase)"); err != nil {
			return errs.New(errs.KindTransportFailed, "copy uf2 nuke image", err.Error())
		}
		vol, err = d.findVolume(ctx, item.Device.BoardID)
		if err != nil {
			return err
		}
	}

	if err := copyArtifact(item.Firmware.FirmwareFile, vol, item.Device.Serial); err != nil {
		return errs.New(errs.KindTransportFailed, "copy uf2 artifact", err.Error())
	}

	if err := unmount(vol); err != nil {
		return errs.New(errs.KindTransportFailed, "unmount uf2 volume", err.Error())
	}

	return d.waitForDisappearance(ctx, vol)
}

// findVolume polls mounted partitions for one carrying INFO_UF2.TXT,
// matching boardID when it is known, or any UF2 volume otherwise.
func (d *Driver) findVolume(ctx context.Context, boardID string) (string, error) {
	deadline := time.Now().Add(d.PollTimeout)
	for {
		parts, err := disk.Partitions(true)
		if err == nil {
			for _, p := range parts {
				info := filepath.Join(p.Mountpoint, "INFO_UF2.TXT")
				if id, ok := readBoardID(info); ok {
					if boardID == "" || boardID == "Unknown" || strings.EqualFold(id, boardID) {
						return p.Mountpoint, nil
					}
				}
			}
		}
		if time.Now().After(deadline) {
			return "", errs.New(errs.KindBootloaderFailed, "no uf2 volume found")
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d.PollInterval):
		}
	}
}

func readBoardID(infoPath string) (string, bool) {
	f, err := os.Open(infoPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Board-ID:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Board-ID:")), true
		}
	}
	return "Unknown", true
}

func copyArtifact(src, destDir, label string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return err
	}

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	bar := progress.New(os.Stderr, stat.Size(), label)
	_, err = io.Copy(bar.Writer(out), in)
	if err != nil {
		return err
	}
	return bar.Finish()
}

func (d *Driver) waitForDisappearance(ctx context.Context, vol string) error {
	deadline := time.Now().Add(d.PollTimeout)
	for {
		if _, err := os.Stat(vol); err != nil {
			return nil
		}
		if time.Now().After(deadline) {
			return errs.New(errs.KindTransportFailed, "uf2 volume did not disappear after flash")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.PollInterval):
		}
	}
}
