package risk

import (
	"math"
	"strings"
)

// Smoking statuses accepted by the scorer.
const (
	SmokingNever   = "never"
	SmokingFormer  = "former"
	SmokingCurrent = "current"
)

// Exercise frequencies accepted by the scorer.
const (
	ExerciseDaily        = "daily"
	ExerciseWeekly       = "weekly"
	ExerciseOccasionally = "occasionally"
	ExerciseNone         = "none"
)

// FamilyHistoryConditions lists the conditions offered for family history.
var FamilyHistoryConditions = []string{
	"Heart Disease", "Diabetes", "High Blood Pressure", "Stroke", "Cancer", "Obesity",
}

// HealthParameters is the parsed disease-prediction input. Numeric readings
// that were missing or unparseable hold NaN, which fails every threshold.
type HealthParameters struct {
	Age           float64
	BloodPressure string
	Systolic      float64
	Diastolic     float64
	Glucose       float64
	HeartRate     float64
	Cholesterol   float64
	Weight        float64
	Height        float64
	Smoking       string
	Exercise      string
	FamilyHistory []string
}

// Form is the raw disease-prediction form as submitted by the UI.
type Form struct {
	Age               string   `json:"age" binding:"required"`
	BloodPressure     string   `json:"bloodPressure" binding:"required"`
	GlucoseLevel      string   `json:"glucoseLevel" binding:"required"`
	HeartRate         string   `json:"heartRate" binding:"required"`
	Cholesterol       string   `json:"cholesterol"`
	Weight            string   `json:"weight"`
	Height            string   `json:"height"`
	SmokingStatus     string   `json:"smokingStatus" binding:"omitempty,oneof=never former current"`
	ExerciseFrequency string   `json:"exerciseFrequency" binding:"omitempty,oneof=daily weekly occasionally none"`
	FamilyHistory     []string `json:"familyHistory"`
}

// Parameters parses the form. It never fails: bad numbers become NaN.
func (f Form) Parameters() HealthParameters {
	systolicText, diastolicText, _ := strings.Cut(f.BloodPressure, "/")
	systolic := parseLeadingInt(systolicText)
	if math.IsNaN(systolic) {
		systolic = 0
	}

	return HealthParameters{
		Age:           parseLeadingInt(f.Age),
		BloodPressure: f.BloodPressure,
		Systolic:      systolic,
		Diastolic:     parseLeadingInt(diastolicText),
		Glucose:       parseLeadingInt(f.GlucoseLevel),
		HeartRate:     parseLeadingInt(f.HeartRate),
		Cholesterol:   parseLeadingInt(f.Cholesterol),
		Weight:        parseLeadingInt(f.Weight),
		Height:        parseLeadingInt(f.Height),
		Smoking:       f.SmokingStatus,
		Exercise:      f.ExerciseFrequency,
		FamilyHistory: uniqueNonEmpty(f.FamilyHistory),
	}
}

// parseLeadingInt reads an optional sign and the leading decimal digits of s
// after trimming whitespace. Anything after the digits is ignored; no digits
// yields NaN.
func parseLeadingInt(s string) float64 {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	value := 0.0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		value = value*10 + float64(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return math.NaN()
	}
	if neg {
		return -value
	}
	return value
}

func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
