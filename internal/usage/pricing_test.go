package usage

import (
	"math"
	"testing"
)

func TestPricingFor(t *testing.T) {
	tests := []struct {
		model string
		want  ModelPricing
	}{
		{"claude-opus-4-20250514", ModelPricing{15.0, 75.0, 1.50}},
		{"claude-sonnet-4-20250514", ModelPricing{3.0, 15.0, 0.30}},
		{"claude-3-5-haiku-20241022", ModelPricing{0.80, 4.0, 0.08}},
		{"CLAUDE-OPUS-4", ModelPricing{15.0, 75.0, 1.50}},
		{"something-unknown", defaultPricing},
		{"", defaultPricing},
	}

	for _, tt := range tests {
		if got := PricingFor(tt.model); got != tt.want {
			t.Errorf("PricingFor(%q) = %+v, want %+v", tt.model, got, tt.want)
		}
	}
}

func TestCalculateCost(t *testing.T) {
	// 1M input + 1M output + 1M cache read at sonnet pricing.
	got := CalculateCost("claude-sonnet-4", 1_000_000, 1_000_000, 1_000_000)
	want := 3.0 + 15.0 + 0.30
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CalculateCost = %v, want %v", got, want)
	}
}

// TestCalculateCostLinear checks cost scales linearly with token counts.
func TestCalculateCostLinear(t *testing.T) {
	base := CalculateCost("claude-opus-4", 1000, 2000, 3000)
	double := CalculateCost("claude-opus-4", 2000, 4000, 6000)
	if math.Abs(double-2*base) > 1e-9 {
		t.Errorf("cost not linear: base %v, double %v", base, double)
	}
}

func TestCalculateCostZero(t *testing.T) {
	if got := CalculateCost("claude-sonnet-4", 0, 0, 0); got != 0 {
		t.Errorf("CalculateCost(0,0,0) = %v, want 0", got)
	}
}
