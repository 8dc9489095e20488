package catalog

import (
	"strings"

	"github.com/blang/semver/v4"

	"github.com/mpflash/mpflash/internal/errs"
)

// NormalizeVersion validates a user-supplied --version value and
// returns it in the "vMAJOR.MINOR.PATCH" form the catalog stores
// versions in. MicroPython tags carry a leading "v" that semver
// itself doesn't understand, so it is stripped before parsing and
// restored after.
func NormalizeVersion(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return "", nil
	}
	// preview tags (e.g. "1.22.0-preview") are passed through
	// semver.Parse as-is; it already understands prerelease suffixes.
	v, err := semver.Parse(trimmed)
	if err != nil {
		return "", errs.New(errs.KindBoardUnknown, "invalid version", raw)
	}
	return "v" + v.String(), nil
}
