package probetarget

import "testing"

func TestParseBoardWithChip(t *testing.T) {
	p := Parse("Pico with RP2040", "", "rp2")
	if p.Family != "rp2040" {
		t.Fatalf("Family = %q, want rp2040", p.Family)
	}
}

func TestParseBareRP2040(t *testing.T) {
	p := Parse("RP2040", "", "rp2")
	if p.Family != "rp2040" {
		t.Fatalf("Family = %q, want rp2040", p.Family)
	}
}

func TestParseSAMD51Variant(t *testing.T) {
	p := Parse("Feather M4 SAMD51", "", "samd")
	if p.Family != "samd51" {
		t.Fatalf("Family = %q, want samd51", p.Family)
	}
}

func TestParseSTM32Variant(t *testing.T) {
	p := Parse("Nucleo STM32F411RE", "", "stm32")
	if p.Family != "stm32f411" {
		t.Fatalf("Family = %q, want stm32f411", p.Family)
	}
	if p.Variant != "re" {
		t.Fatalf("Variant = %q, want re", p.Variant)
	}
}

func TestParseSTM32WithChipSplitsVariant(t *testing.T) {
	p := Parse("NUCLEO-WB55 with STM32WB55RGV6", "", "stm32")
	if p.Board != "NUCLEO-WB55" {
		t.Fatalf("Board = %q, want NUCLEO-WB55", p.Board)
	}
	if p.Family != "stm32wb55" {
		t.Fatalf("Family = %q, want stm32wb55", p.Family)
	}
	if p.Variant != "rgv6" {
		t.Fatalf("Variant = %q, want rgv6", p.Variant)
	}
}

func TestParseMalformedFallsBackToCPU(t *testing.T) {
	p := Parse("", "rp2040", "rp2")
	if p.Family != "rp2040" {
		t.Fatalf("Family = %q, want fallback to cpu rp2040", p.Family)
	}
}

func TestParseMalformedFallsBackToPort(t *testing.T) {
	p := Parse("???", "", "esp32")
	if p.Family != "esp32" {
		t.Fatalf("Family = %q, want fallback to port esp32", p.Family)
	}
}
