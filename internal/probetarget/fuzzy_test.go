package probetarget

import (
	"testing"
)

func TestFuzzyMatchExact(t *testing.T) {
	targets := []Target{
		{Name: "rp2040", Vendor: "Raspberry Pi", Part: "RP2040"},
		{Name: "stm32f411re", Vendor: "STMicro", Part: "STM32F411RE"},
	}
	parsed := ParsedDescription{Family: "rp2040"}

	got, score, ok := FuzzyMatch(parsed, "rp2", targets)
	if !ok {
		t.Fatalf("expected a match, got none (score %v)", score)
	}
	if got.Name != "rp2040" {
		t.Fatalf("got %q, want rp2040", got.Name)
	}
}

func TestFuzzyMatchNoMatchForUnsupportedFamily(t *testing.T) {
	targets := []Target{
		{Name: "stm32f411re", Vendor: "STMicro", Part: "STM32F411RE"},
	}
	parsed := ParsedDescription{Family: "esp32"}

	_, _, ok := FuzzyMatch(parsed, "esp32", targets)
	if ok {
		t.Fatalf("expected no match for unsupported family")
	}
}

func TestFuzzyMatchPortBonusBreaksTie(t *testing.T) {
	targets := []Target{
		{Name: "samd51", Vendor: "Microchip", Part: "ATSAMD51J19"},
		{Name: "samd51-feather", Vendor: "Microchip", Part: "ATSAMD51-FEATHER"},
	}
	parsed := ParsedDescription{Family: "samd51"}

	got, _, ok := FuzzyMatch(parsed, "feather", targets)
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.Name != "samd51-feather" {
		t.Fatalf("expected port-matching candidate to win, got %q", got.Name)
	}
}

func TestFuzzyMatchEmptyFamily(t *testing.T) {
	targets := []Target{{Name: "rp2040", Part: "RP2040"}}
	_, _, ok := FuzzyMatch(ParsedDescription{}, "rp2", targets)
	if ok {
		t.Fatalf("expected no match when chip family is empty")
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	targets := []Target{{Name: "RP2040", Part: "rp2040"}}
	parsed := ParsedDescription{Family: "rp2040"}
	_, _, ok := FuzzyMatch(parsed, "", targets)
	if !ok {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestFuzzyMatchPartialCreditForNearMissFamily(t *testing.T) {
	// "stm32h563" isn't an exact substring of either target's name or part
	// number, but it shares far more characters with "stm32h562zi" (one
	// digit off) than with an unrelated rp2040 part, so it should score
	// the near miss higher even though neither is an exact containment hit.
	nearMiss := Target{Name: "stm32h562zitx", Vendor: "STMicroelectronics", Part: "STM32H562ZI"}
	unrelated := Target{Name: "rp2040", Vendor: "Raspberry Pi", Part: "RP2040"}
	parsed := ParsedDescription{Family: "stm32h563"}

	nearScore := scoreTarget(parsed, "", nearMiss)
	unrelatedScore := scoreTarget(parsed, "", unrelated)
	if nearScore <= unrelatedScore {
		t.Fatalf("near-miss score %v should exceed unrelated score %v", nearScore, unrelatedScore)
	}
}

func TestFuzzyMatchThresholdFiltersWeakCandidates(t *testing.T) {
	// Only a part-number hit, below threshold on its own.
	targets := []Target{{Name: "generic-chip", Part: "contains-rp2040-suffix"}}
	parsed := ParsedDescription{Family: "rp2040"}
	_, score, ok := FuzzyMatch(parsed, "", targets)
	if ok {
		t.Fatalf("expected weak part-only match (score %v) to be filtered by threshold", score)
	}
}
