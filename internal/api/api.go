// Package api exposes history synthesis, analysis and saved sessions over
// HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/collector"
	"LifeMarket/internal/model"
	"LifeMarket/internal/recorder"
	"LifeMarket/internal/session"
	"LifeMarket/internal/strategy"
	"LifeMarket/internal/synth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// API holds the handlers' collaborators.
type API struct {
	Store               session.Store
	Collector           *collector.Collector
	Recorder            recorder.Recorder
	DefaultInitialScore float64
	DefaultTimeframe    model.Timeframe
	Now                 func() time.Time
}

// New wires an API around store. rec may be a no-op recorder.
func New(store session.Store, rec recorder.Recorder, initialScore float64, tf model.Timeframe) *API {
	col := collector.NewCollector(store)
	return &API{
		Store:               store,
		Collector:           col,
		Recorder:            rec,
		DefaultInitialScore: initialScore,
		DefaultTimeframe:    tf,
		Now:                 time.Now,
	}
}

// Router returns the HTTP handler for all routes.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/history", a.HandleGenerateHistory)
		r.Post("/analyze", a.HandleAnalyze)
		r.Post("/indicators", a.HandleIndicators)

		r.Get("/sessions", a.HandleListSessions)
		r.Post("/sessions", a.HandleCreateSession)
		r.Get("/sessions/{id}", a.HandleGetSession)
		r.Put("/sessions/{id}", a.HandleUpdateSession)
		r.Delete("/sessions/{id}", a.HandleDeleteSession)
		r.Get("/sessions/{id}/market", a.HandleSessionMarket)
	})
	return r
}

type historyRequest struct {
	InitialScore *float64          `json:"initialScore"`
	Events       []model.LifeEvent `json:"events"`
	Timeframe    string            `json:"timeframe"`
}

type seriesRequest struct {
	History []model.Candle `json:"history"`
}

type sessionRequest struct {
	Name         string            `json:"name"`
	InitialScore *float64          `json:"initialScore"`
	Events       []model.LifeEvent `json:"events"`
}

func (a *API) HandleGenerateHistory(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tf, err := a.timeframe(req.Timeframe)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := model.ValidateEvents(req.Events); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	score := a.DefaultInitialScore
	if req.InitialScore != nil {
		score = *req.InitialScore
	}
	WriteJSON(w, http.StatusOK, synth.GenerateMarketHistory(score, req.Events, tf, synth.WithNow(a.Now())))
}

func (a *API) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, strategy.Analyze(req.History))
}

func (a *API) HandleIndicators(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, calculator.Indicators(req.History))
}

func (a *API) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.Store.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sessions)
}

func (a *API) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess := a.sessionFrom(req)
	if err := a.Store.Create(r.Context(), sess); err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, sess)
}

func (a *API) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}

func (a *API) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess := a.sessionFrom(req)
	sess.ID = chi.URLParam(r, "id")
	if err := a.Store.Update(r.Context(), sess); err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}

func (a *API) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSessionMarket builds the full report for a saved session and records
// a snapshot of it.
func (a *API) HandleSessionMarket(w http.ResponseWriter, r *http.Request) {
	tf, err := a.timeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := a.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rep := a.Collector.Build(sess, tf)
	if a.Recorder != nil {
		if err := a.Recorder.RecordSnapshot(rep.Snapshot()); err != nil {
			log.Printf("[ERROR] record snapshot for %s: %v", sess.ID, err)
		}
	}
	WriteJSON(w, http.StatusOK, rep)
}

func (a *API) timeframe(raw string) (model.Timeframe, error) {
	if raw == "" {
		return a.DefaultTimeframe, nil
	}
	return model.ParseTimeframe(raw)
}

func (a *API) sessionFrom(req sessionRequest) *model.Session {
	score := a.DefaultInitialScore
	if req.InitialScore != nil {
		score = *req.InitialScore
	}
	return &model.Session{Name: req.Name, InitialScore: score, Events: req.Events}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidSession), errors.Is(err, model.ErrInvalidEvent):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] session store: %v", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
