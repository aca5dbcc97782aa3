package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/presentation"
	"github.com/ayusman/airdeck/internal/store"
)

type fakeSource struct {
	mu     sync.Mutex
	snap   *presentation.Snapshot
	paused bool
}

func (f *fakeSource) Snapshot() *presentation.Snapshot { return f.snap }

func (f *fakeSource) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *fakeSource) SetPaused(p bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = p
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sessionRouter(s *store.Store) *mux.Router {
	h := NewSessionHandler(s)
	r := mux.NewRouter()
	r.HandleFunc("/api/sessions", h.List)
	r.HandleFunc("/api/sessions/{id}", h.Get)
	r.HandleFunc("/api/sessions/{id}/events", h.Events)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStateHandler_Get(t *testing.T) {
	src := &fakeSource{}
	h := NewStateHandler(src)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	src.snap = &presentation.Snapshot{Frame: 7, Slide: 2, TotalSlides: 5, Stable: gesture.Next}
	src.paused = true

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.EqualValues(t, 7, body["frame"])
	assert.EqualValues(t, 2, body["slide"])
	assert.Equal(t, "next", body["stable"])
	assert.Equal(t, true, body["paused"])
}

func TestStateHandler_SetPause(t *testing.T) {
	src := &fakeSource{}
	h := NewStateHandler(src)

	tests := []struct {
		name     string
		body     string
		wantCode int
		want     bool
	}{
		{"pause", `{"paused":true}`, http.StatusOK, true},
		{"resume", `{"paused":false}`, http.StatusOK, false},
		{"missing field", `{}`, http.StatusBadRequest, false},
		{"bad json", `{`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.SetPause(rec, httptest.NewRequest(http.MethodPut, "/api/pause", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.want, src.Paused())
		})
	}
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Sessions().Start("/talks", 4)
		require.NoError(t, err)
	}
	r := sessionRouter(s)

	rec := get(t, r, "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)
	var all listSessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	assert.Len(t, all.Sessions, 3)

	rec = get(t, r, "/api/sessions?limit=1")
	var one listSessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&one))
	assert.Len(t, one.Sessions, 1)

	rec = get(t, r, "/api/sessions?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_ListEmpty(t *testing.T) {
	rec := get(t, sessionRouter(newTestStore(t)), "/api/sessions")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
}

func TestSessionHandler_GetAndEvents(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.Sessions().Start("/talks", 4)
	require.NoError(t, err)
	require.NoError(t, s.Events().Record(&store.Event{SessionID: sess.ID, Frame: 12, Action: "next", Slide: 1}))
	r := sessionRouter(s)

	rec := get(t, r, "/api/sessions/"+sess.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 1, got.Events)

	rec = get(t, r, "/api/sessions/"+sess.ID+"/events")
	require.Equal(t, http.StatusOK, rec.Code)
	var events listEventsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
	require.Len(t, events.Events, 1)
	assert.Equal(t, "next", events.Events[0].Action)
	assert.Equal(t, uint64(12), events.Events[0].Frame)
}

func TestSessionHandler_NotFound(t *testing.T) {
	r := sessionRouter(newTestStore(t))

	for _, path := range []string{"/api/sessions/missing", "/api/sessions/missing/events"} {
		rec := get(t, r, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
