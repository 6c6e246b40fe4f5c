package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/locale"
	"github.com/dmitrymomot/intldomain/pkg/logger"
)

type localesResponse struct {
	Cached    []string `json:"cached"`
	Available []string `json:"available"`
	Domains   []string `json:"domains"`
}

type messageResponse struct {
	Message any    `json:"message"`
	Locale  string `json:"locale"`
	Domain  string `json:"domain"`
	ID      string `json:"id"`
}

type preloadResponse struct {
	Locale  string   `json:"locale"`
	Domains []string `json:"domains"`
}

func (s *Server) handleLocales(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, localesResponse{
		Cached:    nonNil(s.db.Locales()),
		Available: nonNil(s.locales),
		Domains:   nonNil(s.db.NeededDomains()),
	})
}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	tag := requestLocale(r)
	domain := chi.URLParam(r, "domain")
	ctx := logger.WithDomain(r.Context(), domain)

	messages, err := s.db.LoadMessages(ctx, tag, domain)
	if err != nil {
		s.writeError(w, r.WithContext(ctx), err)
		return
	}

	w.Header().Set("Content-Language", tag)
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	s.serveMessage(w, r, requestLocale(r))
}

func (s *Server) handleNegotiatedMessage(w http.ResponseWriter, r *http.Request) {
	available := s.locales
	if len(available) == 0 {
		available = s.db.Locales()
	}

	tag := locale.Match(r.Header.Get("Accept-Language"), available)
	if tag == "" {
		s.writeError(w, r, domaindb.ErrUnknownDomain)
		return
	}

	w.Header().Add("Vary", "Accept-Language")
	s.serveMessage(w, r.WithContext(logger.WithLocale(r.Context(), tag)), tag)
}

func (s *Server) serveMessage(w http.ResponseWriter, r *http.Request, tag string) {
	domain := chi.URLParam(r, "domain")
	id := chi.URLParam(r, "id")
	ctx := logger.WithDomain(r.Context(), domain)
	r = r.WithContext(ctx)

	if _, err := s.db.LoadMessages(ctx, tag, domain); err != nil {
		s.writeError(w, r, err)
		return
	}

	message, err := s.db.MessageByID(tag, domain, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if template, ok := message.(string); ok {
		if query := r.URL.Query(); len(query) > 0 {
			placeholders := make(domaindb.M, len(query))
			for key := range query {
				placeholders[key] = query.Get(key)
			}
			message = domaindb.ReplacePlaceholders(template, placeholders)
		}
	}

	w.Header().Set("Content-Language", tag)
	writeJSON(w, http.StatusOK, messageResponse{
		Message: message,
		Locale:  tag,
		Domain:  domain,
		ID:      id,
	})
}

func (s *Server) handlePreload(w http.ResponseWriter, r *http.Request) {
	tag := requestLocale(r)

	if _, err := s.db.LoadDomains(r.Context(), tag); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "locale preloaded")
	writeJSON(w, http.StatusOK, preloadResponse{Locale: tag, Domains: nonNil(s.db.NeededDomains())})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.db.ClearMessages()

	var errs []error
	for _, fn := range s.onClear {
		if err := fn(r.Context()); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.WarnContext(r.Context(), "clear hook failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:     "cache cleared, secondary cache purge failed",
			RequestID: logger.RequestID(r.Context()),
		})
		return
	}

	s.logger.InfoContext(r.Context(), "messages cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
