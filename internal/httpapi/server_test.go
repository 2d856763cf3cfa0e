package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/hostprobe/internal/domain"
	"github.com/hamed0406/hostprobe/internal/probe"
	"github.com/hamed0406/hostprobe/internal/registry"
)

func newTestServer(t *testing.T, apiKeys []string) *Server {
	t.Helper()

	reg := registry.New(zap.NewNop())
	reg.Register("role", func(ctx context.Context) (any, error) { return "replica", nil })

	root := t.TempDir()
	roles := &probe.RoleProber{
		Facts: probe.StaticFacts{probe.FactOSFamily: "Debian"},
		Root:  root,
	}
	dir := filepath.Join(root, "etc", "default")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, m := range []string{"pe-puppetserver", "pe-console-services", "pe-puppetdb"} {
		if err := os.WriteFile(filepath.Join(dir, m), nil, 0o644); err != nil {
			t.Fatalf("marker: %v", err)
		}
	}

	return NewServer(zap.NewNop(), reg, roles, apiKeys)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestFactsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/facts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Facts["role"] != "replica" {
		t.Fatalf("facts wrong: %+v", snap.Facts)
	}
}

func TestRoleEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/role", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["role"] != string(probe.RoleReplica) {
		t.Fatalf("want replica (markers: server+console+db), got %q", body["role"])
	}
}

func TestAPIKeyRequired(t *testing.T) {
	s := newTestServer(t, []string{"sekret"})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/facts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: want 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/facts", nil)
	req.Header.Set("X-API-Key", "sekret")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid key: want 200, got %d", rec.Code)
	}

	// healthz stays open
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz must not require a key, got %d", rec.Code)
	}
}
