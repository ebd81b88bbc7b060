package blend

import (
	"math"
	"testing"
)

func TestNewRejectsOutOfRangeAlpha(t *testing.T) {
	if _, err := New(-0.1); err == nil {
		t.Fatal("expected error for negative alpha")
	}
	if _, err := New(1.1); err == nil {
		t.Fatal("expected error for alpha above 1")
	}
}

func TestBlendConvexCombination(t *testing.T) {
	b, err := New(0.7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := b.Blend(0.6, 0.5)
	expected := 0.7*0.6 + 0.3*0.5
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestBlendEndpoints(t *testing.T) {
	pureModel, _ := New(1.0)
	if got := pureModel.Blend(0.62, 0.48); got != 0.62 {
		t.Errorf("alpha=1 should return model probability, got %v", got)
	}

	pureMarket, _ := New(0.0)
	if got := pureMarket.Blend(0.62, 0.48); got != 0.48 {
		t.Errorf("alpha=0 should return market probability, got %v", got)
	}
}

func TestBlendStaysBetweenInputs(t *testing.T) {
	b, _ := New(0.35)
	pairs := [][2]float64{{0.1, 0.9}, {0.9, 0.1}, {0.5, 0.5}, {0.0, 1.0}}
	for _, pair := range pairs {
		lo := math.Min(pair[0], pair[1])
		hi := math.Max(pair[0], pair[1])
		got := b.Blend(pair[0], pair[1])
		if got < lo-1e-12 || got > hi+1e-12 {
			t.Errorf("blend(%v, %v)=%v escapes [%v, %v]", pair[0], pair[1], got, lo, hi)
		}
	}
}
