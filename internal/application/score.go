package application

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Status labels used by the default profiles.
const (
	StatusHigh        = "high"
	StatusModerate    = "moderate"
	StatusUnderReview = "under review"
)

// Threshold maps scores strictly above Above to Status.
type Threshold struct {
	Above  float64 `yaml:"above"`
	Status string  `yaml:"status"`
}

// ScoringProfile holds the constants of one scoring formula:
//
//	score = income/IncomeDivisor + age*AgeWeight
type ScoringProfile struct {
	Name              string      `yaml:"name"`
	IncomeDivisor     float64     `yaml:"income_divisor"`
	AgeWeight         float64     `yaml:"age_weight"`
	ApprovalThreshold float64     `yaml:"approval_threshold"`
	Thresholds        []Threshold `yaml:"thresholds"`
	DefaultStatus     string      `yaml:"default_status"`
}

// TwoFactorProfile weighs income and age and approves above 100.
func TwoFactorProfile() ScoringProfile {
	return ScoringProfile{
		Name:              "two-factor",
		IncomeDivisor:     1000,
		AgeWeight:         1.5,
		ApprovalThreshold: 100,
		Thresholds:        defaultThresholds(),
		DefaultStatus:     StatusUnderReview,
	}
}

// IncomeOnlyProfile ignores age and approves above 50.
func IncomeOnlyProfile() ScoringProfile {
	return ScoringProfile{
		Name:              "income-only",
		IncomeDivisor:     1000,
		AgeWeight:         0,
		ApprovalThreshold: 50,
		Thresholds:        defaultThresholds(),
		DefaultStatus:     StatusUnderReview,
	}
}

func defaultThresholds() []Threshold {
	return []Threshold{
		{Above: 100, Status: StatusHigh},
		{Above: 50, Status: StatusModerate},
	}
}

// Normalize trims labels and orders thresholds from highest to lowest.
func (p *ScoringProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.DefaultStatus = strings.TrimSpace(p.DefaultStatus)
	if p.DefaultStatus == "" {
		p.DefaultStatus = StatusUnderReview
	}
	for i := range p.Thresholds {
		p.Thresholds[i].Status = strings.TrimSpace(p.Thresholds[i].Status)
	}
	sort.SliceStable(p.Thresholds, func(i, j int) bool {
		return p.Thresholds[i].Above > p.Thresholds[j].Above
	})
}

// Validate rejects profiles that cannot produce a finite score.
func (p ScoringProfile) Validate() error {
	if p.IncomeDivisor <= 0 || math.IsInf(p.IncomeDivisor, 0) || math.IsNaN(p.IncomeDivisor) {
		return fmt.Errorf("income_divisor must be a positive number")
	}
	if math.IsInf(p.AgeWeight, 0) || math.IsNaN(p.AgeWeight) {
		return fmt.Errorf("age_weight must be finite")
	}
	for i, th := range p.Thresholds {
		if th.Status == "" {
			return fmt.Errorf("thresholds[%d]: status is required", i)
		}
	}
	return nil
}

// Result is produced once per workflow run.
type Result struct {
	ID        string
	Fields    Fields
	Age       int
	Income    float64
	Score     float64
	Status    string
	Approved  bool
	CreatedAt time.Time
}

// Scorer turns raw form values into a Result. It never fails.
type Scorer struct {
	profile ScoringProfile
	now     func() time.Time
}

// NewScorer builds a scorer for profile.
func NewScorer(profile ScoringProfile) Scorer {
	profile.Normalize()
	return Scorer{profile: profile, now: time.Now}
}

// Profile returns the constants the scorer applies.
func (s Scorer) Profile() ScoringProfile {
	return s.profile
}

// Score applies the formula and buckets the result.
func (s Scorer) Score(age int, income float64) (float64, string) {
	divisor := s.profile.IncomeDivisor
	if divisor <= 0 {
		divisor = 1
	}
	score := income/divisor + float64(age)*s.profile.AgeWeight
	return score, s.status(score)
}

func (s Scorer) status(score float64) string {
	for _, th := range s.profile.Thresholds {
		if score > th.Above {
			return th.Status
		}
	}
	return s.profile.DefaultStatus
}

// Evaluate parses the age and income fields and scores them.
func (s Scorer) Evaluate(id string, fields Fields) Result {
	age := ParseAge(fields[FieldAge])
	income := ParseIncome(fields[FieldIncome])
	score, status := s.Score(age, income)
	cp := make(Fields, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return Result{
		ID:        id,
		Fields:    cp,
		Age:       age,
		Income:    income,
		Score:     score,
		Status:    status,
		Approved:  score > s.profile.ApprovalThreshold,
		CreatedAt: now(),
	}
}

// ParseAge reads a non-negative whole number. Anything else is 0.
func ParseAge(raw string) int {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// ParseIncome reads a finite decimal number. Anything else is 0.
func ParseIncome(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
