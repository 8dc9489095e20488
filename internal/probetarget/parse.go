// Package probetarget resolves a device's free-text chip description
// to a concrete debug-probe target name.
package probetarget

import (
	"context"
	"regexp"
	"strings"
)

// ParsedDescription is the structured form a device's description is
// reduced to before fuzzy matching against probe-visible targets.
type ParsedDescription struct {
	Board   string
	Family  string // "stm32wb55", "rp2040", "samd51j19a", ...
	Variant string // trailing package/pin/temp-grade suffix, e.g. "rgv6"; empty when the chip name carries none
}

// Target is one probe-visible debug target: a chip the probe can see
// and potentially program. Owned here rather than by transport/probe
// so the matching logic and its value type live together; probe.Driver
// depends on this package, not the other way around.
type Target struct {
	Name   string
	Vendor string
	Part   string
}

// Backend is the capability set any debug-probe implementation
// provides: discover available probes, connect/disconnect a session,
// list targets, and program one.
type Backend interface {
	Discover(ctx context.Context) ([]string, error)
	Connect(ctx context.Context, probeID string) error
	Targets(ctx context.Context) ([]Target, error)
	Program(ctx context.Context, target Target, firmwarePath string) error
	Disconnect(ctx context.Context) error
}

var (
	boardWithChip = regexp.MustCompile(`(?i)^(.*?)\s+with\s+([A-Za-z0-9]+)`)
	rp2040Bare    = regexp.MustCompile(`(?i)rp2(040|350)`)
	samdVariant   = regexp.MustCompile(`(?i)samd(\d{2})`)
	stm32Variant  = regexp.MustCompile(`(?i)stm32[a-z0-9]+`)
)

// Parse extracts a board name and chip family from a device
// description such as "Pico with RP2040" or "Feather M4 SAMD51".
// Malformed or empty descriptions return a zero-value family so
// callers can fall back to CPU/port-based matching.
func Parse(description, cpu, port string) ParsedDescription {
	description = strings.TrimSpace(description)

	if m := boardWithChip.FindStringSubmatch(description); m != nil {
		family, variant := splitChipVariant(m[2])
		return ParsedDescription{Board: strings.TrimSpace(m[1]), Family: family, Variant: variant}
	}
	if m := stm32Variant.FindString(description); m != "" {
		family, variant := splitChipVariant(m)
		return ParsedDescription{Board: description, Family: family, Variant: variant}
	}
	if m := rp2040Bare.FindString(description); m != "" {
		return ParsedDescription{Board: description, Family: normalizeFamily(m)}
	}
	if m := samdVariant.FindString(description); m != "" {
		return ParsedDescription{Board: description, Family: normalizeFamily(m)}
	}

	// fall back to cpu/port when the description itself carries no
	// recognizable chip family
	family, variant := splitChipVariant(cpu)
	if family == "" {
		family = normalizeFamily(port)
	}
	return ParsedDescription{Board: description, Family: family, Variant: variant}
}

func normalizeFamily(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitChipVariant separates a bare chip identifier (e.g. "STM32WB55RGV6")
// into its family and trailing variant suffix. STM32 part numbers name
// the family with "STM32" plus exactly 4 more characters (series letter(s)
// plus model number, e.g. "WB55" or "F429"); anything after that is a
// package/pin-count/temperature-grade variant code. Other families
// (rp2040, samd51j19a, esp32, ...) carry no such suffix and are returned
// whole, with an empty variant.
func splitChipVariant(raw string) (family, variant string) {
	s := strings.TrimSpace(raw)
	if len(s) > 9 && strings.EqualFold(s[:5], "stm32") {
		return normalizeFamily(s[:9]), normalizeFamily(s[9:])
	}
	return normalizeFamily(s), ""
}
