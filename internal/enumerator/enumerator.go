// Package enumerator lists candidate serial ports and classifies them
// as USB, Bluetooth, or neither before introspection ever opens one.
package enumerator

import (
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"go.bug.st/serial/enumerator"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

// List returns every detected serial port whose name matches include
// (literal paths or shell-glob patterns, "*" meaning all) and is not
// named in ignore, admitting Bluetooth-classified ports only when
// admitBluetooth is set, annotated with USB identity, ordered the way
// a human expects to read them on the host platform.
//
// A port is included only if it matches some include pattern; an empty
// include list matches nothing (callers that want "every port" must
// pass []string{"*"} explicitly), so an empty include list combined
// with a non-empty ignore list still yields an empty result — the two
// lists are ANDed, never OR'd.
func List(include, ignore []string, admitBluetooth bool) ([]types.Device, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errs.New(errs.KindIntrospectionFailed, "list serial ports", err.Error())
	}

	ignored := make(map[string]bool, len(ignore))
	for _, p := range ignore {
		ignored[p] = true
	}

	out := make([]types.Device, 0, len(ports))
	for _, p := range ports {
		if ignored[p.Name] || !matchesInclude(include, p.Name) {
			continue
		}
		bt := isBluetooth(p.Product, p.Name, p.VID+":"+p.PID)
		if bt && !admitBluetooth {
			continue
		}
		out = append(out, types.Device{
			Serial:    p.Name,
			Family:    "unknown",
			IsUSB:     p.IsUSB,
			VID:       p.VID,
			PID:       p.PID,
			Product:   p.Product,
			Bluetooth: bt,
		})
	}

	sortPorts(out)
	return out, nil
}

// matchesInclude reports whether name is selected by the include list:
// "*" is an explicit wildcard, anything else is a literal path or a
// shell-glob pattern matched with filepath.Match. An empty include
// list matches nothing.
func matchesInclude(include []string, name string) bool {
	for _, pattern := range include {
		if pattern == "*" || pattern == name {
			return true
		}
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// bluetoothHardwareIDPrefixes are VID:PID combinations known to belong
// to Bluetooth serial adapters rather than wired USB-serial bridges.
var bluetoothHardwareIDPrefixes = []string{
	"1004", // Samsung BT SPP profile devices seen in the wild on Linux
}

func isBluetooth(product, name, hardwareID string) bool {
	lower := strings.ToLower(product + " " + name)
	if strings.Contains(lower, "bluetooth") {
		return true
	}
	for _, prefix := range bluetoothHardwareIDPrefixes {
		if strings.HasPrefix(strings.ToLower(hardwareID), prefix) {
			return true
		}
	}
	return false
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// sortPorts orders by natural numeric suffix on Windows (COM3 before
// COM21), and lexicographically everywhere else where port paths are
// already stable device names.
func sortPorts(devices []types.Device) {
	sort.Slice(devices, func(i, j int) bool {
		if runtime.GOOS == "windows" {
			ni, oki := trailingInt(devices[i].Serial)
			nj, okj := trailingInt(devices[j].Serial)
			if oki && okj {
				return ni < nj
			}
		}
		return devices[i].Serial < devices[j].Serial
	})
}

func trailingInt(s string) (int, bool) {
	m := trailingDigits.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
