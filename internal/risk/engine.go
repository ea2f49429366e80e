// Package risk scores health parameters into a coarse disease-risk
// classification. Scoring and classification are pure; the only random input
// is the probability jitter, supplied through a Source.
package risk

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
)

// Level is the coarse risk bucket.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

const (
	highRiskThreshold   = 8
	mediumRiskThreshold = 4

	probabilityPerPoint = 8
	maxJitter           = 20
	minProbability      = 10
	maxProbability      = 85
)

// PredictionResult is what the prediction page displays.
type PredictionResult struct {
	Disease         string   `json:"disease"`
	Probability     float64  `json:"probability"`
	RiskLevel       Level    `json:"riskLevel"`
	RiskScore       int      `json:"riskScore"`
	Recommendations []string `json:"recommendations"`
	Explanation     string   `json:"explanation"`
}

// Classification is the score-derived part of a prediction.
type Classification struct {
	Disease         string
	Level           Level
	Recommendations []string
}

var (
	cardiovascular = Classification{
		Disease: "Cardiovascular Disease",
		Level:   LevelHigh,
		Recommendations: []string{
			"Consult with a cardiologist immediately",
			"Start a heart-healthy diet low in sodium and saturated fats",
			"Begin regular moderate exercise as approved by your doctor",
			"Monitor blood pressure daily",
			"Consider medication consultation for cholesterol management",
		},
	}
	metabolic = Classification{
		Disease: "Pre-diabetes / Metabolic Syndrome",
		Level:   LevelMedium,
		Recommendations: []string{
			"Schedule regular check-ups with your primary care physician",
			"Adopt a balanced diet with reduced sugar intake",
			"Increase physical activity to 150 minutes per week",
			"Monitor blood glucose levels regularly",
			"Consider lifestyle counseling",
		},
	}
	wellness = Classification{
		Disease: "General Wellness",
		Level:   LevelLow,
		Recommendations: []string{
			"Continue maintaining your healthy lifestyle",
			"Regular health screenings as per age recommendations",
			"Maintain a balanced diet and regular exercise",
			"Stay hydrated and get adequate sleep",
			"Continue avoiding smoking and excessive alcohol",
		},
	}
)

// Score sums the risk points for p. Higher is worse.
func Score(p HealthParameters) int {
	score := 0

	switch {
	case p.Age > 65:
		score += 3
	case p.Age > 50:
		score += 2
	case p.Age > 35:
		score += 1
	}

	switch {
	case p.Systolic > 140:
		score += 3
	case p.Systolic > 120:
		score += 1
	}

	switch {
	case p.Glucose > 140:
		score += 3
	case p.Glucose > 100:
		score += 1
	}

	if p.HeartRate > 100 {
		score += 2
	}
	if p.Cholesterol > 240 {
		score += 2
	}

	switch p.Smoking {
	case SmokingCurrent:
		score += 3
	case SmokingFormer:
		score += 1
	}

	if p.Exercise == ExerciseNone {
		score += 2
	}

	score += len(uniqueNonEmpty(p.FamilyHistory))
	return score
}

// Classify maps a risk score onto its disease label, level and advice.
// The returned recommendations are a fresh copy.
func Classify(score int) Classification {
	var c Classification
	switch {
	case score >= highRiskThreshold:
		c = cardiovascular
	case score >= mediumRiskThreshold:
		c = metabolic
	default:
		c = wellness
	}
	c.Recommendations = append([]string(nil), c.Recommendations...)
	return c
}

// Probability converts a score into the displayed percentage. jitter is the
// additive noise term, expected in [0, 20).
func Probability(score int, jitter float64) float64 {
	raw := float64(score*probabilityPerPoint) + jitter
	return roundTo(clamp(raw, minProbability, maxProbability), 1)
}

// Explain renders the explanation sentence shown next to the result.
func Explain(p HealthParameters) string {
	return fmt.Sprintf("Based on your health parameters including age (%s), blood pressure (%s), "+
		"glucose level (%smg/dL), and other factors, our AI model has analyzed your risk profile. "+
		"The prediction considers multiple risk factors and their interactions to provide a "+
		"comprehensive assessment.", formatReading(p.Age), p.BloodPressure, formatReading(p.Glucose))
}

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Predictor turns parameters into a full result.
type Predictor struct {
	src Source
}

// NewPredictor returns a Predictor drawing jitter from src, or from the
// process-wide generator when src is nil.
func NewPredictor(src Source) *Predictor {
	if src == nil {
		src = globalSource{}
	}
	return &Predictor{src: src}
}

func (pr *Predictor) Predict(p HealthParameters) PredictionResult {
	score := Score(p)
	c := Classify(score)

	return PredictionResult{
		Disease:         c.Disease,
		Probability:     Probability(score, pr.src.Float64()*maxJitter),
		RiskLevel:       c.Level,
		RiskScore:       score,
		Recommendations: c.Recommendations,
		Explanation:     Explain(p),
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
