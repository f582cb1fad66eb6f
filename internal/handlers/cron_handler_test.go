package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anicards-backend/internal/middleware"
	"anicards-backend/internal/models"
	"anicards-backend/internal/services"
	"anicards-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticFetcher struct {
	data map[string]interface{}
	err  error
}

func (f *staticFetcher) FetchUserStats(ctx context.Context, userID int64) (map[string]interface{}, error) {
	return f.data, f.err
}

func newCronRouter(t *testing.T, st store.Store, fetcher services.StatsFetcher, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	syncService := services.NewSyncService(st, fetcher, log)
	validationService := services.NewValidationService(st, log)
	h := NewCronHandler(syncService, validationService, log)

	router := gin.New()
	cron := router.Group("/api/cron")
	cron.Use(middleware.CronSecret(secret))
	cron.POST("/update-stats", h.UpdateStats)
	cron.POST("/validate-data", h.ValidateData)
	return router
}

func postCron(router *gin.Engine, path, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if secret != "" {
		req.Header.Set("x-cron-secret", secret)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateStatsZeroUsers(t *testing.T) {
	router := newCronRouter(t, store.NewMemory(), &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/update-stats", "sec")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated 0/0 users successfully. Failed: 0, Removed: 0", w.Body.String())
}

func TestUpdateStatsUnauthorized(t *testing.T) {
	router := newCronRouter(t, store.NewMemory(), &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/update-stats", "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", w.Body.String())
}

func TestUpdateStatsListingFailure(t *testing.T) {
	st := store.NewMemory()
	st.FailKeys = true
	router := newCronRouter(t, st, &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/update-stats", "sec")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Cron job failed", w.Body.String())
}

func TestUpdateStatsReportsCounts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, models.UserKey(1),
		`{"userId":1,"updatedAt":"2024-01-01T00:00:00Z","stats":{}}`))
	router := newCronRouter(t, st, &staticFetcher{data: map[string]interface{}{"User": map[string]interface{}{}}}, "sec")

	w := postCron(router, "/api/cron/update-stats", "sec")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated 1/1 users successfully. Failed: 0, Removed: 0", w.Body.String())
}

func TestValidateDataReturnsReport(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, "username:alice", "not-numeric"))
	router := newCronRouter(t, st, &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/validate-data", "sec")
	assert.Equal(t, http.StatusOK, w.Code)

	var report models.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.Summary)
	assert.NotEmpty(t, report.GeneratedAt)
	require.Len(t, report.Issues, 2, "bad username index plus empty reports list")

	// The report is also persisted for later inspection.
	entries, err := st.LRange(ctx, models.ValidationReportsKey)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestValidateDataListingFailure(t *testing.T) {
	st := store.NewMemory()
	st.FailKeys = true
	router := newCronRouter(t, st, &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/validate-data", "sec")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Data validation check failed", resp.Error)
}

func TestValidateDataUnauthorized(t *testing.T) {
	router := newCronRouter(t, store.NewMemory(), &staticFetcher{}, "sec")

	w := postCron(router, "/api/cron/validate-data", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", w.Body.String())
}
