package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUserTolerance(t *testing.T) {
	rec, err := DecodeUser(`{"userId":42}`)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.UserID)
	assert.Empty(t, rec.Username)
	assert.Nil(t, rec.Stats)

	rec, err = DecodeUser(`{"userId":"42","username":"bob"}`)
	require.NoError(t, err, "numeric strings are tolerated on decode")
	assert.Equal(t, int64(42), rec.UserID)

	_, err = DecodeUser(`{"userId":"abc"}`)
	assert.Error(t, err)
	_, err = DecodeUser(`{}`)
	assert.Error(t, err)
	_, err = DecodeUser(`not json`)
	assert.Error(t, err)
	_, err = DecodeUser(`null`)
	assert.Error(t, err)
}

func TestUserRecordRoundTripPreservesUnknownFields(t *testing.T) {
	rec, err := DecodeUser(`{"userId":7,"username":"alice","ip":"10.0.0.1","updatedAt":"2024-01-01T00:00:00Z","stats":{"old":1},"extra":{"keep":"me"}}`)
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec.MergeStats(map[string]interface{}{"new": 2.0}, now)

	encoded, err := rec.Encode()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &raw))
	assert.Equal(t, map[string]interface{}{"keep": "me"}, raw["extra"])
	assert.Equal(t, "2025-03-01T12:00:00Z", raw["updatedAt"])

	stats := raw["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["old"], "merge keeps existing stats fields")
	assert.Equal(t, float64(2), stats["new"])
}

func TestMergeStatsOnNilStats(t *testing.T) {
	rec, err := DecodeUser(`{"userId":7}`)
	require.NoError(t, err)

	rec.MergeStats(map[string]interface{}{"a": 1.0}, time.Now())
	assert.Equal(t, 1.0, rec.Stats["a"])
}

func TestUpdatedAtTime(t *testing.T) {
	rec := &UserRecord{UpdatedAt: "2024-06-01T00:00:00Z"}
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), rec.UpdatedAtTime())

	epoch := time.Unix(0, 0).UTC()
	assert.Equal(t, epoch, (&UserRecord{}).UpdatedAtTime())
	assert.Equal(t, epoch, (&UserRecord{UpdatedAt: "yesterday"}).UpdatedAtTime())
}

func TestParseFiniteNumber(t *testing.T) {
	for _, ok := range []string{"0", "42", "-1.5", "1e3"} {
		_, valid := ParseFiniteNumber(ok)
		assert.True(t, valid, "%q should parse", ok)
	}
	for _, bad := range []string{"", "abc", `"42"`, "{}", "NaN", "Inf", "+Inf"} {
		_, valid := ParseFiniteNumber(bad)
		assert.False(t, valid, "%q should not parse", bad)
	}
}

func TestSyncResultSummary(t *testing.T) {
	r := SyncResult{Updated: 3, Total: 12, Failed: 2, Removed: 1}
	assert.Equal(t, "Updated 3/12 users successfully. Failed: 2, Removed: 1", r.Summary())
	assert.Equal(t, "Updated 0/0 users successfully. Failed: 0, Removed: 0", SyncResult{}.Summary())
}
