package usecase

import (
	"testing"

	"github.com/labellens/backend/internal/domain"
)

func TestExtractAlcoholContent(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantValue float64
		wantUnit  domain.Unit
		wantABV   float64
	}{
		{
			name:      "basic percentage",
			text:      Normalize("45% Alc./Vol."),
			wantOK:    true,
			wantValue: 45,
			wantUnit:  domain.UnitPercentABV,
			wantABV:   45,
		},
		{
			name:      "decimal percentage with space",
			text:      Normalize("43.5 % alcohol by volume"),
			wantOK:    true,
			wantValue: 43.5,
			wantUnit:  domain.UnitPercentABV,
			wantABV:   43.5,
		},
		{
			name:      "intervening words before percent sign",
			text:      Normalize("40 alc vol %"),
			wantOK:    true,
			wantValue: 40,
			wantUnit:  domain.UnitPercentABV,
			wantABV:   40,
		},
		{
			name:      "written as percent",
			text:      Normalize("contains 12 percent alcohol"),
			wantOK:    true,
			wantValue: 12,
			wantUnit:  domain.UnitPercentABV,
			wantABV:   12,
		},
		{
			name:      "abv prefix form",
			text:      Normalize("ABV 13.9"),
			wantOK:    true,
			wantValue: 13.9,
			wantUnit:  domain.UnitPercentABV,
			wantABV:   13.9,
		},
		{
			name:      "proof converts to abv by halving",
			text:      Normalize("90 Proof"),
			wantOK:    true,
			wantValue: 90,
			wantUnit:  domain.UnitProof,
			wantABV:   45,
		},
		{
			name:   "no alcohol expression",
			text:   Normalize("Kentucky Straight Bourbon Whiskey 750 mL"),
			wantOK: false,
		},
		{
			name:   "out of range percentage skipped",
			text:   Normalize("batch 1852% pure nonsense"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ExtractAlcoholContent(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if q.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", q.Value, tt.wantValue)
			}
			if q.Unit != tt.wantUnit {
				t.Errorf("Unit = %v, want %v", q.Unit, tt.wantUnit)
			}
			if q.ABV() != tt.wantABV {
				t.Errorf("ABV() = %v, want %v", q.ABV(), tt.wantABV)
			}
		})
	}
}

func TestExtractAlcoholContentPatternOrder(t *testing.T) {
	// A label carrying both expressions resolves through the percent family,
	// not whichever appears first in the text
	text := Normalize("(90 Proof) 45% Alc./Vol.")
	q, ok := ExtractAlcoholContent(text)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if q.Unit != domain.UnitPercentABV {
		t.Errorf("Unit = %v, want percent_abv", q.Unit)
	}
	if q.Value != 45 {
		t.Errorf("Value = %v, want 45", q.Value)
	}
}

func TestExtractNetContents(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantUnit domain.Unit
		wantML   float64
	}{
		{"milliliters", Normalize("750 mL"), true, domain.UnitMilliliter, 750},
		{"milliliters no space", Normalize("750ml"), true, domain.UnitMilliliter, 750},
		{"centiliters", Normalize("75 cl"), true, domain.UnitCentiliter, 750},
		{"liters", Normalize("1.75 L"), true, domain.UnitLiter, 1750},
		{"spelled out litre", Normalize("1 litre"), true, domain.UnitLiter, 1000},
		{"fluid ounces", Normalize("12 fl. oz."), true, domain.UnitFluidOunce, 12 * 29.5735},
		{"fluid ounces spelled out", Normalize("12 fluid ounces"), true, domain.UnitFluidOunce, 12 * 29.5735},
		{"plain ounces treated as fluid", Normalize("12 oz"), true, domain.UnitFluidOunce, 12 * 29.5735},
		{"gallons", Normalize("1 gallon"), true, domain.UnitGallon, 3785.41},
		{"no volume expression", Normalize("Kentucky Straight Bourbon Whiskey"), false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ExtractNetContents(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if q.Unit != tt.wantUnit {
				t.Errorf("Unit = %v, want %v", q.Unit, tt.wantUnit)
			}
			if got := q.Milliliters(); got < tt.wantML-1e-6 || got > tt.wantML+1e-6 {
				t.Errorf("Milliliters() = %v, want %v", got, tt.wantML)
			}
		})
	}
}

func TestExtractNetContentsFirstMatchWins(t *testing.T) {
	// Milliliters are tried before liters, so a text with both resolves to ml
	text := Normalize("750 mL (0.75 L)")
	q, ok := ExtractNetContents(text)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if q.Unit != domain.UnitMilliliter {
		t.Errorf("Unit = %v, want ml", q.Unit)
	}
	if q.Value != 750 {
		t.Errorf("Value = %v, want 750", q.Value)
	}
}

func TestDetectGovernmentWarning(t *testing.T) {
	t.Run("full statement detected", func(t *testing.T) {
		text := Normalize(`GOVERNMENT WARNING: (1) According to the Surgeon General,
			women should not drink alcoholic beverages during pregnancy because of
			the risk of birth defects.`)
		d := DetectGovernmentWarning(text)
		if !d.HeaderFound {
			t.Error("HeaderFound = false, want true")
		}
		if len(d.Keywords) < 2 {
			t.Errorf("Keywords = %v, want at least 2", d.Keywords)
		}
	})

	t.Run("header only", func(t *testing.T) {
		d := DetectGovernmentWarning(Normalize("GOVERNMENT WARNING"))
		if !d.HeaderFound {
			t.Error("HeaderFound = false, want true")
		}
	})

	t.Run("absent", func(t *testing.T) {
		d := DetectGovernmentWarning(Normalize("Kentucky Straight Bourbon Whiskey"))
		if d.HeaderFound {
			t.Error("HeaderFound = true, want false")
		}
		if len(d.Keywords) != 0 {
			t.Errorf("Keywords = %v, want none", d.Keywords)
		}
	})
}
