package models

import (
	"fmt"
	"time"
)

// UserRecord is the profile-statistics record stored under user:<id>.
// The raw decoded object is kept alongside the typed fields so unknown
// fields survive a refresh round trip.
type UserRecord struct {
	UserID    int64
	Username  string
	IP        string
	CreatedAt string
	UpdatedAt string
	Stats     map[string]interface{}

	raw map[string]interface{}
}

// UpdatedAtTime parses the record's updatedAt timestamp. Records with a
// missing or unparseable timestamp sort as epoch 0, which puts them at
// the front of the refresh queue.
func (u *UserRecord) UpdatedAtTime() time.Time {
	t, err := time.Parse(time.RFC3339, u.UpdatedAt)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// MergeStats copies every field of the fetched data object into the
// record's stats and stamps updatedAt.
func (u *UserRecord) MergeStats(data map[string]interface{}, now time.Time) {
	if u.Stats == nil {
		u.Stats = make(map[string]interface{})
	}
	for k, v := range data {
		u.Stats[k] = v
	}
	u.UpdatedAt = now.UTC().Format(time.RFC3339)
}

// Card is one rendered-card configuration inside a CardsRecord.
type Card struct {
	CardName        string `json:"cardName" binding:"required"`
	Variation       string `json:"variation" binding:"required"`
	ColorPreset     string `json:"colorPreset,omitempty"`
	TitleColor      string `json:"titleColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	CircleColor     string `json:"circleColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}

// CardsRecord is the card-configuration record stored under cards:<id>.
type CardsRecord struct {
	UserID    int64  `json:"userId"`
	Cards     []Card `json:"cards"`
	UpdatedAt string `json:"updatedAt"`
}

// SyncResult aggregates one synchronizer run.
type SyncResult struct {
	Updated int
	Total   int
	Failed  int
	Removed int
}

// Summary renders the response body the cron caller receives.
func (r SyncResult) Summary() string {
	return fmt.Sprintf("Updated %d/%d users successfully. Failed: %d, Removed: %d",
		r.Updated, r.Total, r.Failed, r.Removed)
}

// PatternStat counts one validated key pattern. Inconsistencies counts
// keys that produced at least one issue, not individual issues.
type PatternStat struct {
	Checked         int `json:"checked"`
	Inconsistencies int `json:"inconsistencies"`
}

// KeyIssues groups every issue found on a single key.
type KeyIssues struct {
	Key    string   `json:"key"`
	Issues []string `json:"issues"`
}

// ValidationReport is the immutable result of one validator run,
// appended as JSON to the data_validation:reports list.
type ValidationReport struct {
	Summary     string                 `json:"summary"`
	Details     map[string]PatternStat `json:"details"`
	Issues      []KeyIssues            `json:"issues"`
	GeneratedAt string                 `json:"generatedAt"`
}

// TotalIssueKeys returns how many keys carried at least one issue.
func (r *ValidationReport) TotalIssueKeys() int {
	return len(r.Issues)
}
