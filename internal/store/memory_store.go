package store

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"sync"
)

// Memory is an in-process Store used by tests and local development when
// no Redis is reachable. Keys lists in sorted order so scans are
// deterministic.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	lists  map[string][]string

	// FailKeys forces the next Keys call to error, for exercising the
	// fatal path of the batch jobs.
	FailKeys bool
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.lists, key)
	}
	return nil
}

func (m *Memory) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailKeys {
		return nil, fmt.Errorf("keys %s: connection refused", pattern)
	}
	var matched []string
	for key := range m.values {
		if ok, _ := path.Match(pattern, key); ok {
			matched = append(matched, key)
		}
	}
	for key := range m.lists {
		if ok, _ := path.Match(pattern, key); ok {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func (m *Memory) LRange(ctx context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.lists[key]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

func (m *Memory) RPush(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append(m.lists[key], value)
	return nil
}

func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.values[key], 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
