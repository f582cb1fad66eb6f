package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"anicards-backend/internal/models"
	"anicards-backend/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationService scans every record family for structural
// inconsistencies and produces one immutable report per run.
type ValidationService struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewValidationService(st store.Store, log *zap.Logger) *ValidationService {
	return &ValidationService{
		store: st,
		log:   log,
		now:   time.Now,
	}
}

// scanPatterns fixes the scan order so report details are deterministic.
var scanPatterns = []string{
	models.UserKeyPattern,
	models.CardsKeyPattern,
	models.UsernameKeyPattern,
	models.AnalyticsKeyPattern,
}

// Run applies the per-family rule sets across all four patterns. A key
// listing failure is fatal; anything scoped to a single key becomes an
// issue entry and the scan continues.
func (s *ValidationService) Run(ctx context.Context) (*models.ValidationReport, error) {
	log := s.log.With(
		zap.String("job", "validate-data"),
		zap.String("run_id", uuid.NewString()),
	)

	details := make(map[string]models.PatternStat, len(scanPatterns))
	var issues []models.KeyIssues

	for _, pattern := range scanPatterns {
		keys, err := s.store.Keys(ctx, pattern)
		if err != nil {
			return nil, fmt.Errorf("list keys for %s: %w", pattern, err)
		}
		sort.Strings(keys)

		var stat models.PatternStat
		for _, key := range keys {
			if key == models.AnalyticsReportsKey {
				continue
			}
			stat.Checked++
			if keyIssues := s.checkKey(ctx, pattern, key); len(keyIssues) > 0 {
				stat.Inconsistencies++
				issues = append(issues, models.KeyIssues{Key: key, Issues: keyIssues})
			}
		}

		if pattern == models.AnalyticsKeyPattern {
			reportIssues := s.checkReportsList(ctx)
			stat.Checked++
			if len(reportIssues) > 0 {
				stat.Inconsistencies++
				issues = append(issues, reportIssues...)
			}
		}
		details[pattern] = stat
	}

	report := BuildValidationReport(details, issues, s.now())
	log.Info("data validation finished",
		zap.String("summary", report.Summary),
		zap.Int("issue_keys", report.TotalIssueKeys()),
	)

	// Persisting the report is best-effort: the caller still gets the
	// computed report when the append fails.
	if err := PersistValidationReport(ctx, s.store, report); err != nil {
		log.Error("failed to persist validation report", zap.Error(err))
	}
	return report, nil
}

// checkKey loads one value and applies the rule set for its pattern.
// Store errors are reported as issues on the key, never propagated.
func (s *ValidationService) checkKey(ctx context.Context, pattern, key string) []string {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if err == store.ErrNotFound {
			return []string{issueNullOrMissing}
		}
		return []string{err.Error()}
	}

	switch pattern {
	case models.UserKeyPattern:
		return validateUserValue(value)
	case models.CardsKeyPattern:
		return validateCardsValue(value)
	case models.UsernameKeyPattern:
		return validateUsernameValue(value)
	case models.AnalyticsKeyPattern:
		return validateAnalyticsValue(value)
	}
	return nil
}

// checkReportsList validates the analytics:reports list in full. An
// empty list is itself an issue on the bare key; each malformed element
// is reported under analytics:reports[i].
func (s *ValidationService) checkReportsList(ctx context.Context) []models.KeyIssues {
	entries, err := s.store.LRange(ctx, models.AnalyticsReportsKey)
	if err != nil {
		return []models.KeyIssues{{
			Key:    models.AnalyticsReportsKey,
			Issues: []string{err.Error()},
		}}
	}
	if len(entries) == 0 {
		return []models.KeyIssues{{
			Key:    models.AnalyticsReportsKey,
			Issues: []string{"reports list is empty"},
		}}
	}

	var issues []models.KeyIssues
	for i, entry := range entries {
		if entryIssues := validateReportEntry(entry); len(entryIssues) > 0 {
			issues = append(issues, models.KeyIssues{
				Key:    fmt.Sprintf("%s[%d]", models.AnalyticsReportsKey, i),
				Issues: entryIssues,
			})
		}
	}
	return issues
}
