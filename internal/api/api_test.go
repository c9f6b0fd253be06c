package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"LifeMarket/internal/model"
	"LifeMarket/internal/recorder"
	"LifeMarket/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apiNow = time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *recorder.SQLiteRecorder) {
	t.Helper()
	dir := t.TempDir()
	store, err := session.NewFileStore(filepath.Join(dir, "sessions.json"))
	require.NoError(t, err)
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	a := New(store, rec, 50, model.Timeframe1D)
	a.Now = func() time.Time { return apiNow }
	a.Collector.Now = a.Now
	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return srv, rec
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func eventsBody() []map[string]any {
	return []map[string]any{
		{"name": "Promotion", "date": "2024-10-10T14:20:00Z", "impact": 7, "intensity": 6, "stickiness": 0.6},
		{"name": "Injury", "date": "2024-10-14T08:00:00Z", "impact": -6, "intensity": 8, "stickiness": 0.3},
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGenerateHistory(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{
		"initialScore": 60, "events": eventsBody(), "timeframe": "4H",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[model.MarketHistory](t, resp)
	assert.Equal(t, "4-Hour", out.PeriodName)
	assert.Equal(t, 60.0, out.Summary.Open)
	assert.NotEmpty(t, out.History)
	assert.False(t, out.History[0].Time.IsDate())

	daily := decode[model.MarketHistory](t, do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{
		"initialScore": 60, "events": eventsBody(),
	}))
	assert.Equal(t, "Daily", daily.PeriodName, "default timeframe applies")
	assert.True(t, daily.History[0].Time.IsDate())
	assert.Equal(t, out.Summary, daily.Summary)
}

func TestGenerateHistory_BadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	bad := eventsBody()
	bad[0]["impact"] = 15
	resp := do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{"events": bad})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "impact")

	wide := []map[string]any{
		{"name": "Start", "date": "2000-01-01T00:00:00Z", "impact": 1, "intensity": 1, "stickiness": 0},
		{"name": "End", "date": "2300-01-01T00:00:00Z", "impact": 1, "intensity": 1, "stickiness": 0},
	}
	resp = do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{"events": wide})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "span")

	resp = do(t, http.MethodPost, srv.URL+"/v1/sessions", map[string]any{"name": "wide", "events": wide})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{"timeframe": "1W"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{"unknown": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeAndIndicators(t *testing.T) {
	srv, _ := newTestServer(t)
	hist := decode[model.MarketHistory](t, do(t, http.MethodPost, srv.URL+"/v1/history", map[string]any{
		"events": eventsBody(), "timeframe": "1H",
	}))

	resp := do(t, http.MethodPost, srv.URL+"/v1/analyze", map[string]any{"history": hist.History})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[model.AnalysisResult](t, resp)
	assert.NotEmpty(t, res.Sentiment)
	assert.NotEmpty(t, res.Description)

	resp = do(t, http.MethodPost, srv.URL+"/v1/indicators", map[string]any{"history": hist.History})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ind := decode[model.MarketIndicators](t, resp)
	assert.Len(t, ind.EMA7, len(hist.History))
	assert.Equal(t, hist.History[0].Time, ind.EMA7[0].Time)

	short := decode[model.AnalysisResult](t, do(t, http.MethodPost, srv.URL+"/v1/analyze", map[string]any{"history": hist.History[:3]}))
	assert.Equal(t, model.SentimentNeutral, short.Sentiment)
	assert.Equal(t, 0.0, short.Confidence)
}

func TestSessionsCRUD(t *testing.T) {
	srv, rec := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/sessions", map[string]any{"name": "Autumn", "events": eventsBody()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[model.Session](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 50.0, created.InitialScore, "default initial score")

	list := decode[[]model.Session](t, do(t, http.MethodGet, srv.URL+"/v1/sessions", nil))
	assert.Len(t, list, 1)

	got := decode[model.Session](t, do(t, http.MethodGet, srv.URL+"/v1/sessions/"+created.ID, nil))
	assert.Equal(t, "Autumn", got.Name)
	assert.Len(t, got.Events, 2)

	resp = do(t, http.MethodPut, srv.URL+"/v1/sessions/"+created.ID, map[string]any{"name": "Autumn v2", "initialScore": 70, "events": eventsBody()[:1]})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[model.Session](t, resp)
	assert.Equal(t, 70.0, updated.InitialScore)
	assert.Len(t, updated.Events, 1)

	resp = do(t, http.MethodGet, srv.URL+"/v1/sessions/"+created.ID+"/market?timeframe=4H", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[model.MarketReport](t, resp)
	assert.Equal(t, model.Timeframe4H, rep.Timeframe)
	assert.Equal(t, 70.0, rep.Market.Summary.Open)
	snaps, err := rec.Recent(created.ID, 5)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)

	resp = do(t, http.MethodDelete, srv.URL+"/v1/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/v1/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/v1/sessions/"+created.ID+"/market", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessions_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/sessions", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bad := eventsBody()
	bad[1]["stickiness"] = 2
	resp = do(t, http.MethodPost, srv.URL+"/v1/sessions", map[string]any{"name": "x", "events": bad})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/v1/sessions/nope", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/v1/sessions/nope/market?timeframe=bad", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
