package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"play_comments/internal/app"
	"play_comments/internal/domain"
	"play_comments/internal/shared"
)

type Handlers struct {
	Svc domain.CommentService
	Cfg shared.Config
}

const (
	defaultLimit      = 50
	statsDefaultLimit = 100
	maxLimit          = 200

	batchDefaultLimit = 20
	batchMaxLimit     = 100
	maxBatchApps      = 10
)

// Response envelope shared by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, errTag, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: errTag, Message: message}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Route("/api/comments", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/batch", h.batch)
		r.Route("/{appID}", func(r chi.Router) {
			r.Use(ValidateAppID)
			r.Get("/", h.getComments)
			r.Get("/stats", h.getStats)
			r.Get("/info", h.getAppInfo)
		})
	})
}

// parseOptions validates limit/sort/locale query params. On failure it writes
// a 400 and returns ok=false; the orchestrator never sees invalid options.
func (h *Handlers) parseOptions(w http.ResponseWriter, r *http.Request, defLimit, max int) (domain.FetchOptions, bool) {
	opts := domain.FetchOptions{
		Limit:    defLimit,
		Sort:     domain.SortRecent,
		Language: h.Cfg.DefaultLanguage,
		Country:  h.Cfg.DefaultCountry,
	}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 1 || n > max {
			writeError(w, http.StatusBadRequest, "Invalid limit",
				fmt.Sprintf("limit must be an integer between 1 and %d", max))
			return opts, false
		}
		opts.Limit = n
	}
	if sort := r.URL.Query().Get("sort"); sort != "" {
		if !domain.ValidSort(sort) {
			writeError(w, http.StatusBadRequest, "Invalid sort option",
				"sort must be one of recent, rating, helpfulness")
			return opts, false
		}
		opts.Sort = sort
	}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		opts.Language = lang
	}
	if country := r.URL.Query().Get("country"); country != "" {
		opts.Country = country
	}
	return opts, true
}

func metadata(opts domain.FetchOptions) map[string]any {
	return map[string]any{
		"fetchedAt": time.Now().UTC().Format(time.RFC3339),
		"limit":     opts.Limit,
		"sort":      opts.Sort,
	}
}

func (h *Handlers) getComments(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")
	opts, ok := h.parseOptions(w, r, defaultLimit, maxLimit)
	if !ok {
		return
	}
	comments := h.Svc.FetchComments(r.Context(), appID, opts)
	writeJSON(w, http.StatusOK, map[string]any{
		"appId":         appID,
		"totalComments": len(comments),
		"comments":      comments,
		"metadata":      metadata(opts),
	})
}

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")
	opts, ok := h.parseOptions(w, r, statsDefaultLimit, maxLimit)
	if !ok {
		return
	}
	comments := h.Svc.FetchComments(r.Context(), appID, opts)
	writeJSON(w, http.StatusOK, map[string]any{
		"appId":    appID,
		"stats":    app.ComputeStats(comments),
		"metadata": metadata(opts),
	})
}

func (h *Handlers) getAppInfo(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")
	opts := domain.FetchOptions{
		Limit:    1,
		Sort:     domain.SortRecent,
		Language: h.Cfg.DefaultLanguage,
		Country:  h.Cfg.DefaultCountry,
	}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		opts.Language = lang
	}
	if country := r.URL.Query().Get("country"); country != "" {
		opts.Country = country
	}
	info := h.Svc.FetchAppInfo(r.Context(), appID, opts)
	writeJSON(w, http.StatusOK, map[string]any{
		"appId":   appID,
		"appInfo": info,
		"metadata": map[string]any{
			"fetchedAt": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

type batchRequest struct {
	AppIDs []string `json:"appIds"`
	Limit  *int     `json:"limit"`
	Sort   string   `json:"sort"`
}

type batchItemResult struct {
	AppID         string          `json:"appId"`
	TotalComments int             `json:"totalComments"`
	Comments      []domain.Review `json:"comments"`
}

type batchItemError struct {
	AppID string `json:"appId"`
	Error string `json:"error"`
}

// batch fans out one fetch per identifier, at most maxBatchApps in flight,
// and joins before responding. Per-item failures are isolated into errors[];
// only structural body problems yield a 400.
func (h *Handlers) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body",
			"body must be a JSON object with an appIds array")
		return
	}
	if len(req.AppIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing appIds",
			"appIds must be a non-empty array")
		return
	}
	if len(req.AppIDs) > maxBatchApps {
		writeError(w, http.StatusBadRequest, "Too many apps",
			fmt.Sprintf("maximum %d apps per batch request", maxBatchApps))
		return
	}

	opts := domain.FetchOptions{
		Limit:    batchDefaultLimit,
		Sort:     domain.SortRecent,
		Language: h.Cfg.DefaultLanguage,
		Country:  h.Cfg.DefaultCountry,
	}
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > batchMaxLimit {
			writeError(w, http.StatusBadRequest, "Invalid limit",
				fmt.Sprintf("limit must be an integer between 1 and %d", batchMaxLimit))
			return
		}
		opts.Limit = *req.Limit
	}
	if req.Sort != "" {
		if !domain.ValidSort(req.Sort) {
			writeError(w, http.StatusBadRequest, "Invalid sort option",
				"sort must be one of recent, rating, helpfulness")
			return
		}
		opts.Sort = req.Sort
	}

	var (
		mu      sync.Mutex
		results = make([]batchItemResult, 0, len(req.AppIDs))
		errs    = make([]batchItemError, 0)
	)
	fail := func(id, reason string) {
		mu.Lock()
		errs = append(errs, batchItemError{AppID: id, Error: reason})
		mu.Unlock()
	}

	ctx := r.Context()
	sem := semaphore.NewWeighted(maxBatchApps)
	var wg sync.WaitGroup
	for _, appID := range req.AppIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			fail(appID, "request canceled")
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().Interface("panic", rec).Str("app_id", id).Msg("batch item panicked")
					fail(id, "internal error")
				}
			}()
			if !validAppID(id) {
				fail(id, "Invalid app ID format")
				return
			}
			comments := h.Svc.FetchComments(ctx, id, opts)
			mu.Lock()
			results = append(results, batchItemResult{AppID: id, TotalComments: len(comments), Comments: comments})
			mu.Unlock()
		}(appID)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]any{
		"totalApps":  len(req.AppIDs),
		"successful": len(results),
		"failed":     len(errs),
		"results":    results,
		"errors":     errs,
		"metadata":   metadata(opts),
	})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "play-comments-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
