package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"anicards-backend/internal/models"
	"anicards-backend/internal/store"
)

// BuildValidationReport assembles the shared report shape from the
// per-pattern totals. The summary counts keys, and counts a key once no
// matter how many issues it produced.
func BuildValidationReport(details map[string]models.PatternStat, issues []models.KeyIssues, generatedAt time.Time) *models.ValidationReport {
	var checked, inconsistent int
	for _, stat := range details {
		checked += stat.Checked
		inconsistent += stat.Inconsistencies
	}
	if issues == nil {
		issues = []models.KeyIssues{}
	}
	return &models.ValidationReport{
		Summary:     fmt.Sprintf("%d keys checked, %d issues found", checked, inconsistent),
		Details:     details,
		Issues:      issues,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
	}
}

// PersistValidationReport appends the report to the report list. Reports
// are immutable once appended.
func PersistValidationReport(ctx context.Context, st store.Store, report *models.ValidationReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal validation report: %w", err)
	}
	if err := st.RPush(ctx, models.ValidationReportsKey, string(data)); err != nil {
		return fmt.Errorf("append validation report: %w", err)
	}
	return nil
}
