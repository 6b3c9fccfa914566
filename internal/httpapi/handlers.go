package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"upwatch/internal/auth"
	"upwatch/internal/domain"
	apimw "upwatch/internal/httpapi/middleware"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.Logger.Error("hash_password_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not sign up")
		return
	}

	id, err := s.Store.SignUp(r.Context(), in.Username, hash)
	if err != nil {
		s.Logger.Warn("sign_up_error", zap.String("username", in.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not sign up")
		return
	}

	s.Logger.Info("signed_up", zap.String("user_id", string(id)))
	writeJSON(w, http.StatusOK, idOutput{ID: string(id)})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}

	uid, err := s.Store.SignIn(r.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.Logger.Error("sign_in_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	token, err := s.Tokens.Issue(uid)
	if err != nil {
		s.Logger.Error("issue_token_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not sign in")
		return
	}
	writeJSON(w, http.StatusOK, signInOutput{JWT: token})
}

func (s *Server) handleCreateWebsite(w http.ResponseWriter, r *http.Request) {
	var in websiteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	if !domain.ValidWebsiteURL(in.URL) {
		writeError(w, http.StatusBadRequest, "url must start with http:// or https://")
		return
	}

	uid := apimw.UserID(r.Context())
	site, err := s.Store.CreateWebsite(r.Context(), uid, strings.TrimSpace(in.URL))
	if err != nil {
		s.Logger.Error("create_website_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create website")
		return
	}

	s.Logger.Info("website_added",
		zap.String("website_id", string(site.ID)),
		zap.String("user_id", string(uid)),
	)
	writeJSON(w, http.StatusOK, idOutput{ID: string(site.ID)})
}

func (s *Server) handleListWebsites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.Store.ListWebsites(r.Context(), apimw.UserID(r.Context()))
	if err != nil {
		s.Logger.Error("list_websites_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list websites")
		return
	}
	items := make([]websiteItem, 0, len(sites))
	for _, site := range sites {
		items = append(items, toWebsiteItem(site))
	}
	writeJSON(w, http.StatusOK, websiteListOutput{Items: items})
}

// loadOwned fetches a website and applies the ownership rule for reads:
// absent id is a 404, another tenant's website a 403. Returns nil after
// writing the error response.
func (s *Server) loadOwned(w http.ResponseWriter, r *http.Request) *domain.Website {
	id := domain.WebsiteID(chi.URLParam(r, "id"))
	site, err := s.Store.GetWebsite(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "website not found")
		} else {
			s.Logger.Error("get_website_error", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load website")
		}
		return nil
	}
	if site.UserID != apimw.UserID(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return nil
	}
	return site
}

func (s *Server) handleGetWebsite(w http.ResponseWriter, r *http.Request) {
	site := s.loadOwned(w, r)
	if site == nil {
		return
	}
	writeJSON(w, http.StatusOK, websiteURLOutput{URL: site.URL})
}

func (s *Server) handleUpdateWebsite(w http.ResponseWriter, r *http.Request) {
	var in websiteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	if !domain.ValidWebsiteURL(in.URL) {
		writeError(w, http.StatusBadRequest, "url must start with http:// or https://")
		return
	}

	id := domain.WebsiteID(chi.URLParam(r, "id"))
	site, err := s.Store.UpdateWebsite(r.Context(), id, apimw.UserID(r.Context()), strings.TrimSpace(in.URL))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "website not found")
			return
		}
		s.Logger.Error("update_website_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update website")
		return
	}
	writeJSON(w, http.StatusOK, idOutput{ID: string(site.ID)})
}

func (s *Server) handleDeleteWebsite(w http.ResponseWriter, r *http.Request) {
	id := domain.WebsiteID(chi.URLParam(r, "id"))
	err := s.Store.DeleteWebsite(r.Context(), id, apimw.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "website not found")
			return
		}
		s.Logger.Error("delete_website_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete website")
		return
	}
	writeJSON(w, http.StatusOK, deleteOutput{Success: true, Message: "website deleted"})
}

// handleCheckWebsite is the on-demand probe: same write path as the
// engine, triggered for one website. The probe runs between the ownership
// read and the two writes, never inside either, and is detached from the
// request context so a client disconnect cannot abort the writes.
func (s *Server) handleCheckWebsite(w http.ResponseWriter, r *http.Request) {
	site := s.loadOwned(w, r)
	if site == nil {
		return
	}

	ctx := context.WithoutCancel(r.Context())
	out := s.Checker.Check(ctx, site.URL)

	if _, err := s.Store.RecordCheck(ctx, site.ID, out); err != nil {
		s.Logger.Error("record_check_error", zap.String("website_id", string(site.ID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not record check")
		return
	}
	if err := s.Store.UpdateWebsiteStatus(ctx, site.ID, out.IsUp, out.ResponseTimeMS); err != nil {
		s.Logger.Error("update_status_error", zap.String("website_id", string(site.ID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update status")
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWebsiteStatus(w http.ResponseWriter, r *http.Request) {
	site := s.loadOwned(w, r)
	if site == nil {
		return
	}
	writeJSON(w, http.StatusOK, toStatusOutput(site))
}

func (s *Server) handleWebsiteHistory(w http.ResponseWriter, r *http.Request) {
	site := s.loadOwned(w, r)
	if site == nil {
		return
	}

	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.Store.GetWebsiteHistory(r.Context(), site.ID, limit, offset)
	if err != nil {
		s.Logger.Error("history_error", zap.String("website_id", string(site.ID)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	items := make([]historyItem, 0, len(rows))
	for _, h := range rows {
		items = append(items, toHistoryItem(h))
	}
	writeJSON(w, http.StatusOK, historyOutput{Items: items})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
