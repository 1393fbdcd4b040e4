package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

func TestFixedPolicyAdvisor(t *testing.T) {
	advisor := NewFixedPolicyAdvisor(decimal.NewFromInt(15), decimal.NewFromInt(5))

	policy, err := ResolvePolicy(advisor, 6)
	if err != nil {
		t.Fatalf("ResolvePolicy failed: %v", err)
	}
	if len(policy) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(policy))
	}
	for i, days := range policy {
		if !days.FG.Equal(decimal.NewFromInt(15)) || !days.Resin.Equal(decimal.NewFromInt(5)) {
			t.Errorf("period %d: expected (15, 5), got (%s, %s)", i, days.FG, days.Resin)
		}
	}
}

func TestTrendPolicyAdvisor(t *testing.T) {
	base := entities.SafetyDays{FG: decimal.NewFromInt(15), Resin: decimal.NewFromInt(5)}
	adjustment := decimal.NewFromInt(3)

	tests := []struct {
		name      string
		trends    []PriceTrend
		index     int
		wantResin string
	}{
		{"rising_widens", []PriceTrend{TrendRising}, 0, "8"},
		{"falling_narrows", []PriceTrend{TrendFalling}, 0, "2"},
		{"stable_keeps_base", []PriceTrend{TrendStable}, 0, "5"},
		{"beyond_table_keeps_base", []PriceTrend{TrendRising}, 3, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advisor := NewTrendPolicyAdvisor(base, adjustment, tt.trends)
			days := advisor.SafetyDays(tt.index)
			if !days.Resin.Equal(decimal.RequireFromString(tt.wantResin)) {
				t.Errorf("expected resin days %s, got %s", tt.wantResin, days.Resin)
			}
			if !days.FG.Equal(base.FG) {
				t.Errorf("FG days must not be adjusted, got %s", days.FG)
			}
		})
	}
}

func TestTrendPolicyAdvisor_FallingFloorsAtZero(t *testing.T) {
	base := entities.SafetyDays{FG: decimal.NewFromInt(15), Resin: decimal.NewFromInt(2)}
	advisor := NewTrendPolicyAdvisor(base, decimal.NewFromInt(5), []PriceTrend{TrendFalling})

	days := advisor.SafetyDays(0)
	if !days.Resin.IsZero() {
		t.Errorf("expected resin days floored at zero, got %s", days.Resin)
	}
}

func TestParsePriceTrend(t *testing.T) {
	for _, s := range []string{"stable", "rising", "falling"} {
		trend, err := ParsePriceTrend(s)
		if err != nil {
			t.Errorf("ParsePriceTrend(%q) failed: %v", s, err)
		}
		if string(trend) != s {
			t.Errorf("expected trend %q, got %q", s, trend)
		}
	}
	if _, err := ParsePriceTrend("sideways"); err == nil {
		t.Error("expected error for unknown trend label")
	}
}

func TestResolvePolicy_Rejections(t *testing.T) {
	advisor := NewFixedPolicyAdvisor(decimal.NewFromInt(15), decimal.NewFromInt(5))
	if _, err := ResolvePolicy(advisor, 0); err == nil {
		t.Error("expected error for non-positive horizon")
	}

	negative := NewFixedPolicyAdvisor(decimal.NewFromInt(-1), decimal.NewFromInt(5))
	if _, err := ResolvePolicy(negative, 3); err == nil {
		t.Error("expected error for advisor returning negative days")
	}
}
