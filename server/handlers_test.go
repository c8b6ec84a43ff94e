package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"influencer-pipeline/logging"
	"influencer-pipeline/types"
)

type fakeContent struct {
	record  *types.ContentRecord
	outcome types.PublishOutcome
	err     error

	publishedID string
}

func (f *fakeContent) CreateContent(ctx context.Context) (*types.ContentRecord, error) {
	return f.record, f.err
}

func (f *fakeContent) PublishContent(ctx context.Context, contentID string) (types.PublishOutcome, error) {
	f.publishedID = contentID
	return f.outcome, f.err
}

func (f *fakeContent) CreateAndPublish(ctx context.Context) (types.PublishOutcome, error) {
	return f.outcome, f.err
}

type fakeSchedule struct {
	entries []types.ScheduleEntry
}

func (f *fakeSchedule) UpcomingSchedule() []types.ScheduleEntry { return f.entries }

type fakeHistory struct {
	doc types.HistoryDocument
	err error
}

func (f *fakeHistory) Load() (types.HistoryDocument, error) { return f.doc, f.err }

func newTestRouter(t *testing.T, content *fakeContent, schedule *fakeSchedule, history *fakeHistory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandlers(logging.NewLogger(), content, schedule, history, nil, "development", t.TempDir())
	router := gin.New()
	h.Register(router)
	return router
}

func do(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetStatus(t *testing.T) {
	schedule := &fakeSchedule{entries: []types.ScheduleEntry{
		{ScheduledTime: "10:00", ScheduledDate: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), TimeUntil: 90},
	}}
	router := newTestRouter(t, &fakeContent{}, schedule, &fakeHistory{})

	w := do(router, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "running", body["status"])
	require.Equal(t, "development", body["environment"])
	upcoming, ok := body["upcomingSchedule"].([]any)
	require.True(t, ok)
	require.Len(t, upcoming, 1)
	first := upcoming[0].(map[string]any)
	require.Equal(t, "10:00", first["scheduledTime"])
	require.Equal(t, float64(90), first["timeUntil"])
}

func TestGenerateContentSuccess(t *testing.T) {
	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	content := &fakeContent{record: &types.ContentRecord{
		ID:        "abc-123",
		Topic:     "fitness",
		Idea:      "30 day challenge",
		CreatedAt: created,
	}}
	router := newTestRouter(t, content, &fakeSchedule{}, &fakeHistory{})

	w := do(router, http.MethodPost, "/api/content/generate")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	record := body["content"].(map[string]any)
	require.Equal(t, "abc-123", record["id"])
	require.Equal(t, "fitness", record["topic"])
	require.Equal(t, "30 day challenge", record["idea"])
}

func TestGenerateContentFailure(t *testing.T) {
	content := &fakeContent{err: errors.New("model unavailable")}
	router := newTestRouter(t, content, &fakeSchedule{}, &fakeHistory{})

	w := do(router, http.MethodPost, "/api/content/generate")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["error"], "model unavailable")
}

func TestPublishContentPassesPathID(t *testing.T) {
	content := &fakeContent{outcome: types.PublishOutcome{
		ContentID: "abc-123",
		PublishResult: types.PublishResult{
			ID:       "vid_sim_000001",
			Status:   "published",
			Platform: "simulated",
		},
	}}
	router := newTestRouter(t, content, &fakeSchedule{}, &fakeHistory{})

	w := do(router, http.MethodPost, "/api/content/publish/abc-123")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "abc-123", content.publishedID)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	result := body["result"].(map[string]any)
	require.Equal(t, "abc-123", result["contentId"])
}

func TestPublishContentUnknownID(t *testing.T) {
	content := &fakeContent{err: errors.New("content nope not found")}
	router := newTestRouter(t, content, &fakeSchedule{}, &fakeHistory{})

	w := do(router, http.MethodPost, "/api/content/publish/nope")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestCreateAndPublish(t *testing.T) {
	content := &fakeContent{outcome: types.PublishOutcome{ContentID: "c9"}}
	router := newTestRouter(t, content, &fakeSchedule{}, &fakeHistory{})

	w := do(router, http.MethodPost, "/api/content/create-and-publish")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "c9", body["result"].(map[string]any)["contentId"])
}

func TestGetHistoryEmptyDocument(t *testing.T) {
	router := newTestRouter(t, &fakeContent{}, &fakeSchedule{}, &fakeHistory{
		doc: types.HistoryDocument{History: []types.HistoryEntry{}},
	})

	w := do(router, http.MethodGet, "/api/history")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Nil(t, body["lastPublish"])
	require.Empty(t, body["history"])
}

func TestGetHistoryReadFailure(t *testing.T) {
	router := newTestRouter(t, &fakeContent{}, &fakeSchedule{}, &fakeHistory{
		err: errors.New("corrupt document"),
	})

	w := do(router, http.MethodGet, "/api/history")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestContentStaticServing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c1_metadata.json"), []byte(`{"id":"c1"}`), 0o644))

	h := NewHandlers(logging.NewLogger(), &fakeContent{}, &fakeSchedule{}, &fakeHistory{}, nil, "development", dir)
	router := gin.New()
	h.Register(router)

	w := do(router, http.MethodGet, "/content/c1_metadata.json")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":"c1"}`, w.Body.String())
}
