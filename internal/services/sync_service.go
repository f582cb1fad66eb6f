package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"anicards-backend/internal/anilist"
	"anicards-backend/internal/models"
	"anicards-backend/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RateLimit bounds one run to the upstream requests-per-window quota.
	// The oldest records are refreshed first so every user is reached in
	// bounded time regardless of population size.
	RateLimit = 10

	// MaxFetchAttempts is the total attempt budget per user for
	// transient upstream failures.
	MaxFetchAttempts = 3

	// EvictionThreshold is the number of consecutive upstream 404s after
	// which a user is considered permanently gone and removed.
	EvictionThreshold = 3
)

// StatsFetcher is the upstream surface the synchronizer depends on.
type StatsFetcher interface {
	FetchUserStats(ctx context.Context, userID int64) (map[string]interface{}, error)
}

// SyncService refreshes the most stale user records from the upstream
// API, one bounded batch per run.
type SyncService struct {
	store   store.Store
	fetcher StatsFetcher
	log     *zap.Logger
	now     func() time.Time
}

func NewSyncService(st store.Store, fetcher StatsFetcher, log *zap.Logger) *SyncService {
	return &SyncService{
		store:   st,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
}

type refreshOutcome int

const (
	outcomeSkipped refreshOutcome = iota
	outcomeUpdated
	outcomeFailed
	outcomeEvicted
)

// Run lists every user record, picks the RateLimit oldest, and refreshes
// them concurrently. The only fatal error is the key listing itself; a
// single bad record never aborts the batch.
func (s *SyncService) Run(ctx context.Context) (models.SyncResult, error) {
	log := s.log.With(
		zap.String("job", "update-stats"),
		zap.String("run_id", uuid.NewString()),
	)

	keys, err := s.store.Keys(ctx, models.UserKeyPattern)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("list user keys: %w", err)
	}

	result := models.SyncResult{Total: len(keys)}
	if len(keys) == 0 {
		log.Info("no user records to update")
		return result, nil
	}

	records := make([]*models.UserRecord, 0, len(keys))
	for _, key := range keys {
		value, err := s.store.Get(ctx, key)
		if err != nil {
			log.Warn("skipping unreadable user record",
				zap.String("key", key), zap.Error(err))
			continue
		}
		rec, err := models.DecodeUser(value)
		if err != nil {
			log.Warn("skipping undecodable user record",
				zap.String("key", key), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	// Oldest first; a missing or unparseable timestamp sorts as epoch 0.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAtTime().Before(records[j].UpdatedAtTime())
	})
	batch := records
	if len(batch) > RateLimit {
		batch = batch[:RateLimit]
	}

	outcomes := make(chan refreshOutcome, len(batch))
	var wg sync.WaitGroup
	for _, rec := range batch {
		wg.Add(1)
		go func(rec *models.UserRecord) {
			defer wg.Done()
			outcomes <- s.refreshUser(ctx, log, rec)
		}(rec)
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		switch outcome {
		case outcomeUpdated:
			result.Updated++
		case outcomeFailed:
			result.Failed++
		case outcomeEvicted:
			result.Failed++
			result.Removed++
		}
	}

	log.Info("stats update finished",
		zap.Int("total", result.Total),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Int("removed", result.Removed),
	)
	return result, nil
}

// refreshUser runs the per-user state machine. A 404 ends the attempt
// sequence immediately and advances the failure counter; transient
// errors burn the attempt budget and then leave the record untouched
// and uncounted.
func (s *SyncService) refreshUser(ctx context.Context, log *zap.Logger, rec *models.UserRecord) refreshOutcome {
	var (
		data     map[string]interface{}
		fetchErr error
	)
	for attempt := 1; attempt <= MaxFetchAttempts; attempt++ {
		data, fetchErr = s.fetcher.FetchUserStats(ctx, rec.UserID)
		if fetchErr == nil {
			break
		}
		if errors.Is(fetchErr, anilist.ErrUserNotFound) {
			return s.trackMissing(ctx, log, rec)
		}
		log.Warn("stats fetch attempt failed",
			zap.Int64("user_id", rec.UserID),
			zap.Int("attempt", attempt),
			zap.Error(fetchErr))
	}
	if fetchErr != nil {
		log.Warn("giving up on user after transient failures",
			zap.Int64("user_id", rec.UserID))
		return outcomeSkipped
	}

	rec.MergeStats(data, s.now())
	encoded, err := rec.Encode()
	if err != nil {
		log.Error("failed to encode refreshed record",
			zap.Int64("user_id", rec.UserID), zap.Error(err))
		return outcomeSkipped
	}
	if err := s.store.Set(ctx, models.UserKey(rec.UserID), encoded); err != nil {
		log.Error("failed to persist refreshed record",
			zap.Int64("user_id", rec.UserID), zap.Error(err))
		return outcomeSkipped
	}
	// A successful refresh resets the failure streak.
	if err := s.store.Del(ctx, models.FailedUpdatesKey(rec.UserID)); err != nil {
		log.Warn("failed to clear failure counter",
			zap.Int64("user_id", rec.UserID), zap.Error(err))
	}
	return outcomeUpdated
}

// trackMissing advances the consecutive-404 counter and, at the
// threshold, cascades deletion of the user's stats, counter, and card
// configuration.
func (s *SyncService) trackMissing(ctx context.Context, log *zap.Logger, rec *models.UserRecord) refreshOutcome {
	count, err := s.store.Incr(ctx, models.FailedUpdatesKey(rec.UserID))
	if err != nil {
		log.Error("failed to advance failure counter",
			zap.Int64("user_id", rec.UserID), zap.Error(err))
		return outcomeFailed
	}
	log.Info("user not found upstream",
		zap.Int64("user_id", rec.UserID),
		zap.Int64("consecutive_failures", count))

	if count < EvictionThreshold {
		return outcomeFailed
	}
	err = s.store.Del(ctx,
		models.UserKey(rec.UserID),
		models.FailedUpdatesKey(rec.UserID),
		models.CardsKey(rec.UserID),
	)
	if err != nil {
		log.Error("failed to evict user",
			zap.Int64("user_id", rec.UserID), zap.Error(err))
		return outcomeFailed
	}
	log.Info("evicted user permanently missing upstream",
		zap.Int64("user_id", rec.UserID))
	return outcomeEvicted
}
