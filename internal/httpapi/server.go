package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"upwatch/internal/auth"
	apimw "upwatch/internal/httpapi/middleware"
	"upwatch/internal/probe"
	"upwatch/internal/repo"
)

type Server struct {
	Logger  *zap.Logger
	Store   repo.Store
	Checker probe.Checker
	Tokens  *auth.TokenIssuer
}

func NewServer(l *zap.Logger, store repo.Store, checker probe.Checker, tokens *auth.TokenIssuer) *Server {
	return &Server{Logger: l, Store: store, Checker: checker, Tokens: tokens}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/sign-up", s.handleSignUp)
	r.Post("/sign-in", s.handleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(apimw.RequireUser(s.Tokens))

		r.Post("/website", s.handleCreateWebsite)
		r.Get("/websites", s.handleListWebsites)
		r.Get("/website/{id}", s.handleGetWebsite)
		r.Put("/website/{id}", s.handleUpdateWebsite)
		r.Delete("/website/{id}", s.handleDeleteWebsite)
		r.Get("/website/{id}/check", s.handleCheckWebsite)
		r.Get("/website/{id}/status", s.handleWebsiteStatus)
		r.Get("/website/{id}/history", s.handleWebsiteHistory)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
