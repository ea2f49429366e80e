package risk

import (
	"math"
	"strings"
	"testing"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestScore_WorstCaseScenario(t *testing.T) {
	p := Form{
		Age:               "70",
		BloodPressure:     "150/95",
		GlucoseLevel:      "160",
		HeartRate:         "110",
		Cholesterol:       "250",
		SmokingStatus:     "current",
		ExerciseFrequency: "none",
		FamilyHistory:     []string{"Heart Disease", "Diabetes"},
	}.Parameters()

	if got := Score(p); got != 20 {
		t.Fatalf("expected score 20, got %d", got)
	}

	result := NewPredictor(fixedSource(0.5)).Predict(p)
	if result.Disease != "Cardiovascular Disease" || result.RiskLevel != LevelHigh {
		t.Fatalf("expected high cardiovascular risk, got %+v", result)
	}
	if result.Probability < 10 || result.Probability > 85 {
		t.Fatalf("probability out of range: %v", result.Probability)
	}
	if len(result.Recommendations) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(result.Recommendations))
	}
}

func TestScore_HighThresholdsAlwaysHigh(t *testing.T) {
	p := HealthParameters{
		Age: 66, Systolic: 141, Glucose: 141, HeartRate: 101, Cholesterol: 241,
		Smoking: SmokingCurrent, Exercise: ExerciseNone, FamilyHistory: []string{"Stroke"},
	}
	score := Score(p)
	if score < 8 {
		t.Fatalf("expected score >= 8, got %d", score)
	}
	if c := Classify(score); c.Level != LevelHigh {
		t.Fatalf("expected High, got %s", c.Level)
	}
}

func TestScore_HealthyIsLow(t *testing.T) {
	p := Form{
		Age:               "30",
		BloodPressure:     "115/75",
		GlucoseLevel:      "90",
		HeartRate:         "70",
		Cholesterol:       "180",
		SmokingStatus:     "never",
		ExerciseFrequency: "daily",
	}.Parameters()

	score := Score(p)
	if score >= 4 {
		t.Fatalf("expected score < 4, got %d", score)
	}
	result := NewPredictor(fixedSource(0)).Predict(p)
	if result.RiskLevel != LevelLow || result.Disease != "General Wellness" {
		t.Fatalf("expected general wellness, got %+v", result)
	}
}

func TestScore_Bands(t *testing.T) {
	cases := []struct {
		name string
		p    HealthParameters
		want int
	}{
		{"age 36", HealthParameters{Age: 36}, 1},
		{"age 51", HealthParameters{Age: 51}, 2},
		{"age 65 is not over 65", HealthParameters{Age: 65}, 2},
		{"systolic 121", HealthParameters{Systolic: 121}, 1},
		{"systolic 140 stays mild", HealthParameters{Systolic: 140}, 1},
		{"glucose 101", HealthParameters{Glucose: 101}, 1},
		{"glucose 141", HealthParameters{Glucose: 141}, 3},
		{"heart rate 100", HealthParameters{HeartRate: 100}, 0},
		{"cholesterol 240", HealthParameters{Cholesterol: 240}, 0},
		{"former smoker", HealthParameters{Smoking: SmokingFormer}, 1},
		{"weekly exercise", HealthParameters{Exercise: ExerciseWeekly}, 0},
		{"duplicate family history", HealthParameters{FamilyHistory: []string{"Cancer", "Cancer", ""}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.p); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestScore_MalformedFieldsFailOpen(t *testing.T) {
	p := Form{
		Age:           "unknown",
		BloodPressure: "high",
		GlucoseLevel:  "",
		HeartRate:     "n/a",
		Cholesterol:   "lots",
	}.Parameters()

	if !math.IsNaN(p.Age) || !math.IsNaN(p.Glucose) || !math.IsNaN(p.HeartRate) {
		t.Fatalf("expected NaN sentinels, got %+v", p)
	}
	if p.Systolic != 0 {
		t.Fatalf("expected unparseable systolic to read 0, got %v", p.Systolic)
	}
	if got := Score(p); got != 0 {
		t.Fatalf("expected malformed input to score 0, got %d", got)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	cases := map[int]Level{0: LevelLow, 3: LevelLow, 4: LevelMedium, 7: LevelMedium, 8: LevelHigh, 30: LevelHigh}
	for score, want := range cases {
		if got := Classify(score).Level; got != want {
			t.Fatalf("score %d: expected %s, got %s", score, want, got)
		}
	}
	if Classify(5).Disease != "Pre-diabetes / Metabolic Syndrome" {
		t.Fatalf("unexpected medium disease label %q", Classify(5).Disease)
	}
}

func TestClassify_ReturnsCopy(t *testing.T) {
	c := Classify(10)
	c.Recommendations[0] = "changed"
	if Classify(10).Recommendations[0] == "changed" {
		t.Fatal("classification recommendations must not alias the catalog")
	}
}

func TestProbability_Clamped(t *testing.T) {
	for _, score := range []int{0, 1, 5, 9, 10, 50} {
		for _, jitter := range []float64{0, 7.77, 19.999} {
			got := Probability(score, jitter)
			if got < 10 || got > 85 {
				t.Fatalf("score %d jitter %v: probability %v out of [10,85]", score, jitter, got)
			}
		}
	}
	if got := Probability(5, 3.26); got != 43.3 {
		t.Fatalf("expected 43.3, got %v", got)
	}
	if got := Probability(0, 0); got != 10 {
		t.Fatalf("expected floor 10, got %v", got)
	}
	if got := Probability(20, 19.9); got != 85 {
		t.Fatalf("expected ceiling 85, got %v", got)
	}
}

func TestPredictor_JitterScaledFromSource(t *testing.T) {
	p := HealthParameters{Age: 51, Systolic: 121, Glucose: 101}
	result := NewPredictor(fixedSource(0.5)).Predict(p)
	// score 4 -> 32 + 0.5*20
	if result.Probability != 42 {
		t.Fatalf("expected 42, got %v", result.Probability)
	}
}

func TestPredictor_DefaultSource(t *testing.T) {
	result := NewPredictor(nil).Predict(HealthParameters{})
	if result.Probability < 10 || result.Probability > 85 {
		t.Fatalf("probability out of range: %v", result.Probability)
	}
}

func TestExplain(t *testing.T) {
	p := Form{Age: "42", BloodPressure: "130/85", GlucoseLevel: "110"}.Parameters()
	got := Explain(p)
	for _, want := range []string{"age (42)", "blood pressure (130/85)", "glucose level (110mg/dL)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("explanation %q missing %q", got, want)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	cases := map[string]float64{"120": 120, " 85 ": 85, "12.7": 12, "140abc": 140, "-3": -3, "+7": 7}
	for in, want := range cases {
		if got := parseLeadingInt(in); got != want {
			t.Fatalf("parseLeadingInt(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "abc", "-", " "} {
		if got := parseLeadingInt(in); !math.IsNaN(got) {
			t.Fatalf("parseLeadingInt(%q) = %v, want NaN", in, got)
		}
	}
}

func TestFormParameters_BloodPressure(t *testing.T) {
	p := Form{BloodPressure: "150/95"}.Parameters()
	if p.Systolic != 150 || p.Diastolic != 95 {
		t.Fatalf("expected 150/95, got %v/%v", p.Systolic, p.Diastolic)
	}
	p = Form{BloodPressure: "150"}.Parameters()
	if p.Systolic != 150 || !math.IsNaN(p.Diastolic) {
		t.Fatalf("expected 150/NaN, got %v/%v", p.Systolic, p.Diastolic)
	}
}
