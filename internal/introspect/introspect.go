// Package introspect opens a serial port, runs the on-device identity
// script, and decodes the resulting record into a types.Device.
package introspect

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/retry"
	"github.com/mpflash/mpflash/internal/types"
)

// DefaultTimeout bounds one introspection attempt before it is
// considered failed and, if retries remain, retried.
const DefaultTimeout = 2 * time.Second

const rawREPLEnter = "\x01" // Ctrl-A
const execute = "\x04"      // Ctrl-D

type identityRecord struct {
	Family      string `json:"family"`
	Version     string `json:"version"`
	Ver         string `json:"ver"`
	Port        string `json:"port"`
	Board       string `json:"board"`
	BoardID     string `json:"board_id"`
	Variant     string `json:"variant"`
	CPU         string `json:"cpu"`
	MPY         string `json:"mpy"`
	Arch        string `json:"arch"`
	Build       string `json:"build"`
	Description string `json:"description"`
}

// Device opens serialPort, runs the identity script, and returns the
// decoded device. Three attempts, one second apart, each bounded by
// DefaultTimeout.
func Device(ctx context.Context, serialPort string) (types.Device, error) {
	var dev types.Device
	err := retry.Do(ctx, 3, time.Second, func(ctx context.Context) error {
		d, err := attempt(ctx, serialPort)
		if err != nil {
			return err
		}
		dev = d
		return nil
	})
	if err != nil {
		return types.Device{}, errs.New(errs.KindIntrospectionFailed, "introspect device", err.Error())
	}
	return dev, nil
}

func attempt(ctx context.Context, serialPort string) (types.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	mode := &serial.Mode{BaudRate: 115200}
	port, err := serial.Open(serialPort, mode)
	if err != nil {
		return types.Device{}, err
	}
	defer port.Close()

	if _, err := port.Write([]byte(rawREPLEnter + identityScript + execute)); err != nil {
		return types.Device{}, err
	}

	done := make(chan identityRecord, 1)
	errc := make(chan error, 1)
	go func() {
		rec, err := readIdentity(port)
		if err != nil {
			errc <- err
			return
		}
		done <- rec
	}()

	select {
	case <-ctx.Done():
		return types.Device{}, ctx.Err()
	case err := <-errc:
		return types.Device{}, err
	case rec := <-done:
		return types.Device{
			Serial:      serialPort,
			Family:      rec.Family,
			Port:        rec.Port,
			Board:       rec.Board,
			BoardID:     rec.BoardID,
			Variant:     rec.Variant,
			CPU:         rec.CPU,
			MPY:         rec.MPY,
			Arch:        rec.Arch,
			Build:       rec.Build,
			Version:     rec.Version,
			Ver:         rec.Ver,
			Description: rec.Description,
		}, nil
	}
}

func readIdentity(port serial.Port) (identityRecord, error) {
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, identityMarker)
		if idx == -1 {
			continue
		}
		var rec identityRecord
		if err := json.Unmarshal([]byte(line[idx+len(identityMarker):]), &rec); err != nil {
			return identityRecord{}, err
		}
		return rec, nil
	}
	if err := scanner.Err(); err != nil {
		return identityRecord{}, err
	}
	return identityRecord{}, errs.New(errs.KindIntrospectionFailed, "no identity record received")
}
