package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// The store holds arbitrary JSON strings written by several producers,
// so decoding is deliberately tolerant: only the fields a caller cannot
// work without are allowed to fail the decode. Everything else is kept
// in the raw map and preserved on write-back.

// DecodeUser parses a user:<id> value. It fails only on invalid JSON,
// a non-object value, or a userId that cannot be read as a number —
// anything else is recoverable.
func DecodeUser(value string) (*UserRecord, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode user record: null value")
	}

	userID, ok := asInt64(raw["userId"])
	if !ok {
		return nil, fmt.Errorf("decode user record: userId is not numeric")
	}

	rec := &UserRecord{
		UserID: userID,
		raw:    raw,
	}
	rec.Username, _ = AsString(raw["username"])
	rec.IP, _ = AsString(raw["ip"])
	rec.CreatedAt, _ = AsString(raw["createdAt"])
	rec.UpdatedAt, _ = AsString(raw["updatedAt"])
	if stats, ok := AsObject(raw["stats"]); ok {
		rec.Stats = stats
	}
	return rec, nil
}

// Encode serializes the record back to its stored form, folding the
// typed fields into the preserved raw object.
func (u *UserRecord) Encode() (string, error) {
	if u.raw == nil {
		u.raw = make(map[string]interface{})
	}
	u.raw["userId"] = u.UserID
	if u.Username != "" {
		u.raw["username"] = u.Username
	}
	if u.IP != "" {
		u.raw["ip"] = u.IP
	}
	if u.CreatedAt != "" {
		u.raw["createdAt"] = u.CreatedAt
	}
	u.raw["updatedAt"] = u.UpdatedAt
	u.raw["stats"] = u.Stats

	data, err := json.Marshal(u.raw)
	if err != nil {
		return "", fmt.Errorf("encode user record: %w", err)
	}
	return string(data), nil
}

// DecodeObject parses any stored value into a generic JSON object.
func DecodeObject(value string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AsString reports whether v is a JSON string and returns it.
func AsString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsNumber reports whether v is a JSON number and returns it.
func AsNumber(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// AsObject reports whether v is a non-null JSON object and returns it.
func AsObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// AsArray reports whether v is a JSON array and returns it.
func AsArray(v interface{}) ([]interface{}, bool) {
	a, ok := v.([]interface{})
	return a, ok
}

// ParseFiniteNumber parses a raw stored value (a bare numeric string) as
// a finite number. JSON-quoted strings, objects, NaN and infinities all
// fail.
func ParseFiniteNumber(value string) (float64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
