package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/hostprobe/internal/httpapi/middleware"
	"github.com/hamed0406/hostprobe/internal/probe"
	"github.com/hamed0406/hostprobe/internal/registry"
)

type Server struct {
	Logger  *zap.Logger
	Reg     *registry.Registry
	Roles   *probe.RoleProber
	APIKeys []string
}

func NewServer(l *zap.Logger, reg *registry.Registry, roles *probe.RoleProber, apiKeys []string) *Server {
	return &Server{Logger: l, Reg: reg, Roles: roles, APIKeys: apiKeys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(s.APIKeys))
		r.Get("/api/facts", s.handleFacts)
		r.Get("/api/role", s.handleRole)
	})

	return r
}

func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Reg.Collect(r.Context())
	if err != nil {
		// partial snapshots still go out; the gaps mean "unknown"
		s.Logger.Warn("facts_partial", zap.Error(err))
	}

	s.Logger.Info("facts_served",
		zap.Int("count", len(snap.Facts)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleRole(w http.ResponseWriter, r *http.Request) {
	role := s.Roles.Classify()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"role": string(role)})
}
