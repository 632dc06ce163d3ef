package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/history"
	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/observability"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// drawResponse is the payload of a completed draw.
type drawResponse struct {
	DrawID   string      `json:"draw_id"`
	Language string      `json:"language"`
	DrawnAt  time.Time   `json:"drawn_at"`
	Sign     sign.Record `json:"sign"`
}

// handleDraw picks a random sign and records the draw.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	lang, err := i18n.Parse(r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.draw(lang)
	if err != nil {
		writeError(w, err)
		return
	}

	draw := history.NewDraw(rec.ID, lang, "", time.Now())
	if err := s.history.Record(r.Context(), draw); err != nil {
		s.logger.Warn("recording draw", "err", err)
	}
	observability.Draw().OnDraw(rec.ID, string(lang))

	writeJSON(w, http.StatusOK, drawResponse{
		DrawID:   draw.ID,
		Language: string(lang),
		DrawnAt:  draw.DrawnAt,
		Sign:     rec,
	})
}

// handleGetSign returns one sign record by ID.
func (s *Server) handleGetSign(w http.ResponseWriter, r *http.Request) {
	lang, err := i18n.Parse(r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.Get(lang, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// cardRequest is the POST /api/card body.
type cardRequest struct {
	SignID  string `json:"sign_id"`
	Lang    string `json:"lang"`
	Request string `json:"request"`
}

// cardResponse is the JSON form of a rendered card.
type cardResponse struct {
	SignID  string `json:"sign_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	DataURI string `json:"data_uri"`
}

// handleCard renders a card for a sign. Clients that accept image/png get
// raw PNG bytes; everyone else gets JSON with a data URI.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}

	lang, err := i18n.Parse(req.Lang)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateUserRequest(req.Request); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.Get(lang, req.SignID)
	if err != nil {
		writeError(w, err)
		return
	}

	png, width, height, err := s.renderCard(r.Context(), rec, lang, req.Request)
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "image/png") {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
		return
	}

	writeJSON(w, http.StatusOK, cardResponse{
		SignID:  rec.ID,
		Width:   width,
		Height:  height,
		DataURI: card.PNGDataURI(png),
	})
}

// renderCard returns the cached PNG for this render or composes and caches
// a fresh one. Cache failures degrade to rendering; they never fail the
// request.
func (s *Server) renderCard(ctx context.Context, rec sign.Record, lang i18n.Language, request string) ([]byte, int, int, error) {
	key := s.keyer.CardKey(rec.ID, string(lang), request)
	if png, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		if w, h, ok := card.PNGSize(png); ok {
			return png, w, h, nil
		}
	} else if err != nil {
		s.logger.Warn("cache get", "err", err)
	}

	c, err := s.renderer.Compose(card.RenderRequest{
		Sign:        rec,
		UserRequest: request,
		Language:    lang,
	})
	if err != nil {
		return nil, 0, 0, err
	}

	if err := s.cache.Set(ctx, key, c.PNG, s.cacheTTL); err != nil {
		s.logger.Warn("cache set", "err", err)
	}
	return c.PNG, c.Width, c.Height, nil
}

// handleHistory lists recent draws, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	draws, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "reading history"))
		return
	}
	if draws == nil {
		draws = []history.Draw{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"draws": draws})
}
