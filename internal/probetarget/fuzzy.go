package probetarget

import (
	"strings"
)

// matchThreshold is the minimum score a candidate must clear to be
// considered a match at all.
const matchThreshold = 0.6

// Score weights: the chip family appearing in the target's own name is
// worth more than it appearing in the part number, and a port match
// between the device and the target's name/part adds a bonus on top
// of either.
const (
	weightFamilyInName = 0.5
	weightFamilyInPart = 0.3
	weightPortBonus    = 0.2
)

// FuzzyMatch scores every candidate target against parsed and returns
// the best match, or false if nothing clears matchThreshold. Each term
// scores an exact substring hit at full weight and a near-miss at
// partial credit via containmentRatio; no third-party string-similarity
// library in this module's dependency set offers this exact weighted,
// domain-specific scoring, so the scorer is a direct implementation.
func FuzzyMatch(parsed ParsedDescription, port string, targets []Target) (Target, float64, bool) {
	var best Target
	var bestScore float64
	found := false

	if parsed.Family == "" {
		return best, 0, false
	}

	for _, t := range targets {
		score := scoreTarget(parsed, port, t)
		if score > bestScore {
			bestScore = score
			best = t
			found = true
		}
	}

	if !found || bestScore < matchThreshold {
		return Target{}, bestScore, false
	}
	return best, bestScore, true
}

func scoreTarget(parsed ParsedDescription, port string, t Target) float64 {
	family := parsed.Family
	name := strings.ToLower(t.Name)
	part := strings.ToLower(t.Part)

	var score float64
	if family != "" {
		score += weightFamilyInName * containmentRatio(name, family)
		score += weightFamilyInPart * containmentRatio(part, family)
	}
	if port != "" && (strings.Contains(name, strings.ToLower(port)) || strings.Contains(part, strings.ToLower(port))) {
		score += weightPortBonus
	}
	return score
}

// containmentRatio scores how well needle matches somewhere in
// haystack: an exact substring hit scores 1.0; otherwise it falls back
// to a sequence-similarity ratio (longest common substring length over
// needle length) so a near-miss family string, e.g. "stm32h563" against
// a target part "stm32h562zi", still earns partial credit instead of
// a hard zero.
func containmentRatio(haystack, needle string) float64 {
	if needle == "" {
		return 0
	}
	if strings.Contains(haystack, needle) {
		return 1.0
	}
	return float64(longestCommonSubstring(haystack, needle)) / float64(len(needle))
}

// longestCommonSubstring returns the length of the longest run of
// characters shared contiguously between a and b.
func longestCommonSubstring(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	prev := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			}
		}
		prev = cur
	}
	return best
}
