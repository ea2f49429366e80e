package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels maps request struct fields to the wording used in messages.
var fieldLabels = map[string]string{
	"Age":               "age",
	"BloodPressure":     "blood pressure",
	"GlucoseLevel":      "glucose level",
	"HeartRate":         "heart rate",
	"SmokingStatus":     "smoking status",
	"ExerciseFrequency": "exercise frequency",
	"PrimarySymptom":    "primary symptom",
	"Severity":          "severity",
	"Duration":          "duration",
	"Weight":            "weight",
	"Email":             "email",
	"Password":          "password",
	"Name":              "name",
}

// validationDetails turns binding validation errors into readable messages.
// ok is false when err is not a validation error.
func validationDetails(err error) (details []string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	for _, fe := range verrs {
		details = append(details, describeField(fe))
	}
	return details, true
}

func describeField(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}
