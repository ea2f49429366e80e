// Package medicine picks over-the-counter suggestions for a symptom profile.
package medicine

import "strings"

// Severities and durations offered by the symptom form.
var (
	Severities = []string{"mild", "moderate", "severe"}
	Durations  = []string{"hours", "1day", "2-3days", "1week", "2weeks"}
)

// Symptoms is the primary/additional symptom vocabulary.
var Symptoms = []string{
	"Headache", "Fever", "Cough", "Sore Throat", "Nausea", "Stomach Pain",
	"Back Pain", "Muscle Pain", "Fatigue", "Dizziness", "Insomnia", "Anxiety",
}

// Conditions is the pre-existing condition vocabulary.
var Conditions = []string{
	"Diabetes", "Hypertension", "Heart Disease", "Asthma", "Kidney Disease",
	"Liver Disease", "Depression", "Anxiety Disorder", "Arthritis", "Allergies",
}

// SymptomProfile is the medicine-recommendation input. Only PrimarySymptom
// currently influences the result; the other fields are accepted as-is.
type SymptomProfile struct {
	PrimarySymptom     string   `json:"primarySymptom" binding:"required"`
	Severity           string   `json:"severity" binding:"required,oneof=mild moderate severe"`
	Duration           string   `json:"duration" binding:"required,oneof=hours 1day 2-3days 1week 2weeks"`
	AdditionalSymptoms []string `json:"additionalSymptoms"`
	Conditions         []string `json:"medicalConditions"`
	CurrentMedications string   `json:"currentMedications"`
	Allergies          string   `json:"allergies"`
	Age                *int     `json:"age" binding:"required,min=0"`
	Weight             *float64 `json:"weight" binding:"omitempty,min=0"`
}

// Normalize deduplicates the set-valued fields and drops the primary symptom
// from the additional symptoms.
func (p SymptomProfile) Normalize() SymptomProfile {
	primary := strings.ToLower(strings.TrimSpace(p.PrimarySymptom))
	p.AdditionalSymptoms = dedupe(p.AdditionalSymptoms, func(s string) bool {
		return strings.ToLower(s) == primary
	})
	p.Conditions = dedupe(p.Conditions, nil)
	return p
}

// Recommendation is one suggested medicine.
type Recommendation struct {
	Name        string   `json:"name"`
	GenericName string   `json:"genericName"`
	Dosage      string   `json:"dosage"`
	Frequency   string   `json:"frequency"`
	Duration    string   `json:"duration"`
	SideEffects []string `json:"sideEffects"`
	Precautions []string `json:"precautions"`
	Confidence  int      `json:"confidence"`
	Reasoning   string   `json:"reasoning"`
}

var bySymptom = map[string]Recommendation{
	"headache": {
		Name:        "Ibuprofen",
		GenericName: "Ibuprofen",
		Dosage:      "400mg",
		Frequency:   "Every 6-8 hours",
		Duration:    "3-5 days",
		SideEffects: []string{"Stomach upset", "Dizziness", "Heartburn"},
		Precautions: []string{"Take with food", "Avoid alcohol", "Monitor kidney function"},
		Confidence:  92,
		Reasoning:   "First-line treatment for tension headaches with anti-inflammatory properties.",
	},
	"fever": {
		Name:        "Acetaminophen",
		GenericName: "Paracetamol",
		Dosage:      "500-1000mg",
		Frequency:   "Every 4-6 hours",
		Duration:    "3-7 days",
		SideEffects: []string{"Rare allergic reactions", "Liver toxicity (high doses)"},
		Precautions: []string{"Do not exceed 4g per day", "Avoid alcohol", "Check liver function"},
		Confidence:  95,
		Reasoning:   "Effective antipyretic with excellent safety profile for fever reduction.",
	},
	"cough": {
		Name:        "Dextromethorphan",
		GenericName: "Dextromethorphan HBr",
		Dosage:      "15-30mg",
		Frequency:   "Every 4 hours",
		Duration:    "7-14 days",
		SideEffects: []string{"Drowsiness", "Dizziness", "Nausea"},
		Precautions: []string{"Avoid driving", "Do not combine with alcohol", "Monitor for breathing issues"},
		Confidence:  88,
		Reasoning:   "Effective cough suppressant for dry, non-productive coughs.",
	},
	"stomach pain": {
		Name:        "Omeprazole",
		GenericName: "Omeprazole",
		Dosage:      "20mg",
		Frequency:   "Once daily before breakfast",
		Duration:    "14 days",
		SideEffects: []string{"Headache", "Diarrhea", "Stomach pain"},
		Precautions: []string{"Take before meals", "Monitor magnesium levels", "Gradual discontinuation"},
		Confidence:  85,
		Reasoning:   "Proton pump inhibitor effective for acid-related stomach pain and heartburn.",
	},
}

var fallback = Recommendation{
	Name:        "Acetaminophen",
	GenericName: "Paracetamol",
	Dosage:      "500mg",
	Frequency:   "Every 6 hours as needed",
	Duration:    "5-7 days",
	SideEffects: []string{"Rare allergic reactions"},
	Precautions: []string{"Do not exceed recommended dose", "Avoid alcohol"},
	Confidence:  75,
	Reasoning:   "General pain and fever relief medication with good safety profile.",
}

var supportiveCare = Recommendation{
	Name:        "Multivitamin Complex",
	GenericName: "Vitamin B-Complex + Vitamin C",
	Dosage:      "1 tablet",
	Frequency:   "Once daily with meals",
	Duration:    "30 days",
	SideEffects: []string{"Mild stomach upset", "Yellow urine (normal)"},
	Precautions: []string{"Take with food", "Store in cool, dry place"},
	Confidence:  70,
	Reasoning:   "Supportive therapy to boost immune system and aid recovery.",
}

// Recommend returns the symptom-specific suggestion followed by the
// supportive-care entry. Unknown or empty symptoms get the general fallback.
func Recommend(p SymptomProfile) []Recommendation {
	primary, ok := bySymptom[strings.ToLower(strings.TrimSpace(p.PrimarySymptom))]
	if !ok {
		primary = fallback
	}
	return []Recommendation{primary.clone(), supportiveCare.clone()}
}

func (r Recommendation) clone() Recommendation {
	r.SideEffects = append([]string(nil), r.SideEffects...)
	r.Precautions = append([]string(nil), r.Precautions...)
	return r
}

func dedupe(values []string, skip func(string) bool) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || (skip != nil && skip(v)) {
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
