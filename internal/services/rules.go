package services

import (
	"fmt"
	"time"

	"anicards-backend/internal/models"
)

// Structural rule sets for each record family. Every function returns
// the list of issues found on one stored value; "missing field" and
// "wrong type" are distinct messages.

const issueNullOrMissing = "null or missing"

func validateUserValue(value string) []string {
	raw, issues := decodeForValidation(value)
	if issues != nil {
		return issues
	}

	issues = appendNumericFieldIssues(issues, raw, "userId")
	issues = appendStringFieldIssues(issues, raw, "username")
	issues = appendStringFieldIssues(issues, raw, "ip")
	issues = appendTimestampFieldIssues(issues, raw, "createdAt")
	issues = appendTimestampFieldIssues(issues, raw, "updatedAt")

	if v, present := raw["stats"]; !present {
		issues = append(issues, "missing required field: stats")
	} else if _, ok := models.AsObject(v); !ok {
		issues = append(issues, "stats is not an object")
	}
	return issues
}

func validateCardsValue(value string) []string {
	raw, issues := decodeForValidation(value)
	if issues != nil {
		return issues
	}

	issues = appendNumericFieldIssues(issues, raw, "userId")

	cards, present := raw["cards"]
	if !present {
		issues = append(issues, "missing required field: cards")
	} else if arr, ok := models.AsArray(cards); !ok {
		issues = append(issues, "cards is not an array")
	} else {
		for i, elem := range arr {
			issues = append(issues, validateCardElement(i, elem)...)
		}
	}

	issues = appendTimestampFieldIssues(issues, raw, "updatedAt")
	return issues
}

func validateCardElement(i int, elem interface{}) []string {
	card, ok := models.AsObject(elem)
	if !ok {
		return []string{fmt.Sprintf("cards[%d] is not an object", i)}
	}

	var issues []string
	for _, field := range []string{"cardName", "variation"} {
		s, ok := models.AsString(card[field])
		if !ok || s == "" {
			issues = append(issues, fmt.Sprintf("cards[%d]: missing required field: %s", i, field))
		}
	}

	// A non-custom preset supplies the palette; otherwise all four
	// explicit colors are required.
	needColors := true
	if preset, ok := models.AsString(card["colorPreset"]); ok && preset != "custom" {
		needColors = false
	}
	if needColors {
		for _, field := range []string{"titleColor", "backgroundColor", "textColor", "circleColor"} {
			if v, present := card[field]; !present {
				issues = append(issues, fmt.Sprintf("cards[%d]: missing required field: %s", i, field))
			} else if _, ok := models.AsString(v); !ok {
				issues = append(issues, fmt.Sprintf("cards[%d]: %s is not a string", i, field))
			}
		}
	}
	if v, present := card["borderColor"]; present {
		if _, ok := models.AsString(v); !ok {
			issues = append(issues, fmt.Sprintf("cards[%d]: borderColor is not a string", i))
		}
	}
	return issues
}

func validateUsernameValue(value string) []string {
	if value == "" || value == "null" {
		return []string{issueNullOrMissing}
	}
	if _, ok := models.ParseFiniteNumber(value); !ok {
		return []string{"not a number"}
	}
	return nil
}

func validateAnalyticsValue(value string) []string {
	if value == "" || value == "null" {
		return []string{issueNullOrMissing}
	}
	if _, ok := models.ParseFiniteNumber(value); !ok {
		return []string{"not a number"}
	}
	return nil
}

// validateReportEntry checks one element of the analytics:reports list.
func validateReportEntry(value string) []string {
	raw, err := models.DecodeObject(value)
	if err != nil {
		return []string{err.Error()}
	}
	if raw == nil {
		return []string{issueNullOrMissing}
	}

	var issues []string
	if v, present := raw["generatedAt"]; !present {
		issues = append(issues, "missing required field: generatedAt")
	} else if _, ok := models.AsString(v); !ok {
		issues = append(issues, "generatedAt is not a string")
	}
	for _, field := range []string{"raw_data", "summary"} {
		if v, present := raw[field]; !present {
			issues = append(issues, fmt.Sprintf("missing required field: %s", field))
		} else if _, ok := models.AsObject(v); !ok {
			issues = append(issues, fmt.Sprintf("%s is not an object", field))
		}
	}
	return issues
}

// decodeForValidation parses a stored object value. The returned issue
// list is non-nil exactly when validation cannot proceed past decoding.
func decodeForValidation(value string) (map[string]interface{}, []string) {
	if value == "" || value == "null" {
		return nil, []string{issueNullOrMissing}
	}
	raw, err := models.DecodeObject(value)
	if err != nil {
		return nil, []string{err.Error()}
	}
	if raw == nil {
		return nil, []string{issueNullOrMissing}
	}
	return raw, nil
}

func appendNumericFieldIssues(issues []string, raw map[string]interface{}, field string) []string {
	v, present := raw[field]
	if !present {
		return append(issues, fmt.Sprintf("missing required field: %s", field))
	}
	if _, ok := models.AsNumber(v); !ok {
		return append(issues, fmt.Sprintf("%s is not numeric", field))
	}
	return issues
}

func appendStringFieldIssues(issues []string, raw map[string]interface{}, field string) []string {
	v, present := raw[field]
	if !present {
		return append(issues, fmt.Sprintf("missing required field: %s", field))
	}
	s, ok := models.AsString(v)
	if !ok {
		return append(issues, fmt.Sprintf("%s is not a string", field))
	}
	if s == "" {
		return append(issues, fmt.Sprintf("%s is empty", field))
	}
	return issues
}

func appendTimestampFieldIssues(issues []string, raw map[string]interface{}, field string) []string {
	v, present := raw[field]
	if !present {
		return append(issues, fmt.Sprintf("missing required field: %s", field))
	}
	s, ok := models.AsString(v)
	if !ok {
		return append(issues, fmt.Sprintf("%s is not a string", field))
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return append(issues, fmt.Sprintf("%s is not a valid timestamp", field))
	}
	return issues
}
