package models

import "fmt"

// Key patterns scanned by the batch jobs.
const (
	UserKeyPattern      = "user:*"
	CardsKeyPattern     = "cards:*"
	UsernameKeyPattern  = "username:*"
	AnalyticsKeyPattern = "analytics:*"

	// AnalyticsReportsKey is a list, not a counter, and is excluded from
	// the analytics:* numeric scan.
	AnalyticsReportsKey = "analytics:reports"

	// ValidationReportsKey is the list the validator appends its reports to.
	ValidationReportsKey = "data_validation:reports"
)

func UserKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func CardsKey(userID int64) string {
	return fmt.Sprintf("cards:%d", userID)
}

func FailedUpdatesKey(userID int64) string {
	return fmt.Sprintf("failed_updates:%d", userID)
}

func UsernameKey(username string) string {
	return fmt.Sprintf("username:%s", username)
}

func AnalyticsKey(name string) string {
	return fmt.Sprintf("analytics:%s", name)
}
