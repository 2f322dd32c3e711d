package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/generator"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/lang"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/spec"
)

// generateTranslationRequest is the request body for POST /translations.
type generateTranslationRequest struct {
	URN   string `json:"urn"`
	Lang  string `json:"lang"`
	Store *bool  `json:"store,omitempty"`
}

// translationSummary is the list representation of a stored translation.
// The serialized document is omitted; fetch a single URN for the content.
type translationSummary struct {
	URN       string    `json:"urn"`
	Lang      string    `json:"lang"`
	KeyCount  int       `json:"key_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// translationEntry is the full representation of a stored translation.
type translationEntry struct {
	translationSummary
	Document json.RawMessage `json:"document"`
}

// handleGenerateTranslation runs a generation and returns the document.
//
// POST /api/v1/translations
// Body: {"urn": "...", "lang": "ru", "store": true}
func (s *Server) handleGenerateTranslation(w http.ResponseWriter, r *http.Request) {
	var req generateTranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.URN == "" {
		writeBadRequest(w, "urn is required")
		return
	}

	store := true
	if req.Store != nil {
		store = *req.Store
	}

	result, err := s.generator.Generate(r.Context(), generator.Request{
		URN:       req.URN,
		Lang:      req.Lang,
		SkipFile:  true,
		SkipStore: !store,
	})
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrEmptyURN):
			writeBadRequest(w, "urn is required")
		case errors.Is(err, generator.ErrLoadFailed):
			writeError(w, http.StatusBadGateway, ErrCodeUpstream, "specification load failed")
		default:
			s.logger.Error("generation failed", "urn", req.URN, "error", err)
			writeInternalError(w, "generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListTranslations lists all stored translations without documents.
//
// GET /api/v1/translations
func (s *Server) handleListTranslations(w http.ResponseWriter, r *http.Request) {
	records, err := s.catalog.List(r.Context())
	if err != nil {
		s.logger.Error("listing translations", "error", err)
		writeInternalError(w, "listing translations failed")
		return
	}

	summaries := make([]translationSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summarize(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"translations": summaries,
		"count":        len(summaries),
	})
}

// handleGetTranslations returns stored translations for a URN, all
// languages or a single one via the lang query parameter.
//
// GET /api/v1/translations/{urn}?lang=ru
func (s *Server) handleGetTranslations(w http.ResponseWriter, r *http.Request) {
	urn := spec.NormalizeURN(chi.URLParam(r, "urn"))

	if langTag := r.URL.Query().Get("lang"); langTag != "" {
		rec, err := s.catalog.Get(r.Context(), urn, langTag)
		if err != nil {
			if errors.Is(err, lang.ErrNotFound) {
				writeNotFound(w, "translation not found")
				return
			}
			s.logger.Error("fetching translation", "urn", urn, "error", err)
			writeInternalError(w, "fetching translation failed")
			return
		}
		writeJSON(w, http.StatusOK, entry(*rec))
		return
	}

	records, err := s.catalog.ListByURN(r.Context(), urn)
	if err != nil {
		if errors.Is(err, lang.ErrNotFound) {
			writeNotFound(w, "no translations for urn")
			return
		}
		s.logger.Error("fetching translations", "urn", urn, "error", err)
		writeInternalError(w, "fetching translations failed")
		return
	}

	entries := make([]translationEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, entry(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"urn":          urn,
		"translations": entries,
	})
}

// handleDeleteTranslations removes all stored translations for a URN.
//
// DELETE /api/v1/translations/{urn}
func (s *Server) handleDeleteTranslations(w http.ResponseWriter, r *http.Request) {
	urn := spec.NormalizeURN(chi.URLParam(r, "urn"))

	if err := s.catalog.DeleteByURN(r.Context(), urn); err != nil {
		if errors.Is(err, lang.ErrNotFound) {
			writeNotFound(w, "no translations for urn")
			return
		}
		s.logger.Error("deleting translations", "urn", urn, "error", err)
		writeInternalError(w, "deleting translations failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"urn":     urn,
		"deleted": true,
	})
}

func summarize(rec lang.Record) translationSummary {
	return translationSummary{
		URN:       rec.URN,
		Lang:      rec.Lang,
		KeyCount:  rec.KeyCount,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func entry(rec lang.Record) translationEntry {
	return translationEntry{
		translationSummary: summarize(rec),
		Document:           json.RawMessage(rec.Document),
	}
}
