package application

import (
	"math"
	"testing"
)

func TestTwoFactorScore(t *testing.T) {
	scorer := NewScorer(TwoFactorProfile())
	cases := []struct {
		name   string
		age    string
		income string
		score  float64
		status string
		ok     bool
	}{
		{name: "high", age: "30", income: "150000", score: 195, status: StatusHigh, ok: true},
		{name: "moderate", age: "20", income: "40000", score: 70, status: StatusModerate},
		{name: "boundary not above 100", age: "0", income: "100000", score: 100, status: StatusModerate},
		{name: "under review", age: "10", income: "10000", score: 25, status: StatusUnderReview},
		{name: "non numeric age", age: "abc", income: "60000", score: 60, status: StatusModerate},
		{name: "all garbage", age: "x", income: "y", score: 0, status: StatusUnderReview},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := scorer.Evaluate("run", Fields{FieldAge: tc.age, FieldIncome: tc.income})
			if math.Abs(res.Score-tc.score) > 1e-9 {
				t.Fatalf("score = %v, want %v", res.Score, tc.score)
			}
			if res.Status != tc.status {
				t.Fatalf("status = %q, want %q", res.Status, tc.status)
			}
			if res.Approved != tc.ok {
				t.Fatalf("approved = %v, want %v", res.Approved, tc.ok)
			}
		})
	}
}

func TestIncomeOnlyScore(t *testing.T) {
	scorer := NewScorer(IncomeOnlyProfile())
	res := scorer.Evaluate("run", Fields{FieldIncome: "1000", FieldAge: "99"})
	if res.Score != 1.0 {
		t.Fatalf("score = %v, want 1", res.Score)
	}
	if res.Status != StatusUnderReview {
		t.Fatalf("status = %q, want %q", res.Status, StatusUnderReview)
	}
	if res.Approved {
		t.Fatalf("income 1000 must not qualify")
	}
	if got := scorer.Evaluate("run", Fields{FieldIncome: "50001"}); !got.Approved {
		t.Fatalf("income 50001 should qualify, score %v", got.Score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScorer(TwoFactorProfile())
	firstScore, firstStatus := scorer.Score(42, 73500)
	for i := 0; i < 10; i++ {
		score, status := scorer.Score(42, 73500)
		if score != firstScore || status != firstStatus {
			t.Fatalf("run %d = (%v, %s), want (%v, %s)", i, score, status, firstScore, firstStatus)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	ages := map[string]int{"30": 30, " 41 ": 41, "abc": 0, "-3": 0, "2.5": 0, "": 0}
	for raw, want := range ages {
		if got := ParseAge(raw); got != want {
			t.Fatalf("ParseAge(%q) = %d, want %d", raw, got, want)
		}
	}
	incomes := map[string]float64{"1500.5": 1500.5, "abc": 0, "NaN": 0, "Inf": 0, "": 0}
	for raw, want := range incomes {
		if got := ParseIncome(raw); got != want {
			t.Fatalf("ParseIncome(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNormalizeOrdersThresholds(t *testing.T) {
	p := ScoringProfile{
		IncomeDivisor: 1000,
		Thresholds: []Threshold{
			{Above: 10, Status: " low "},
			{Above: 90, Status: "top"},
		},
	}
	p.Normalize()
	if p.Thresholds[0].Status != "top" || p.Thresholds[1].Status != "low" {
		t.Fatalf("unexpected order: %+v", p.Thresholds)
	}
	if p.DefaultStatus != StatusUnderReview {
		t.Fatalf("default status = %q", p.DefaultStatus)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	p.IncomeDivisor = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected divisor error")
	}
}
