// Package registry composes the individual host probes into named facts
// and collects them in one pass. It is the in-process stand-in for the
// fact-gathering framework the probes were written for.
package registry

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/hostprobe/internal/domain"
	"github.com/hamed0406/hostprobe/internal/probe"
)

// Collector produces a single fact value.
type Collector func(ctx context.Context) (any, error)

type Registry struct {
	logger     *zap.Logger
	names      []string // registration order
	collectors map[string]Collector
}

func New(logger *zap.Logger) *Registry {
	return &Registry{
		logger:     logger,
		collectors: make(map[string]Collector),
	}
}

// Register adds a named collector. Re-registering a name replaces the
// collector but keeps its original position.
func (r *Registry) Register(name string, c Collector) {
	if _, ok := r.collectors[name]; !ok {
		r.names = append(r.names, name)
	}
	r.collectors[name] = c
}

// Collect runs every collector once, in registration order. A failing
// collector is logged at debug level and omitted from the snapshot; its
// error joins the aggregate return so callers can distinguish "false"
// from "unknown". The snapshot is always returned.
func (r *Registry) Collect(ctx context.Context) (domain.Snapshot, error) {
	facts := make(map[string]any, len(r.names))
	var errs error

	for _, name := range r.names {
		v, err := r.collectors[name](ctx)
		if err != nil {
			r.logger.Debug("fact_failed",
				zap.String("fact", name),
				zap.Error(err),
			)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		facts[name] = v
	}

	hostname, _ := os.Hostname()
	return domain.Snapshot{
		Hostname:    hostname,
		CollectedAt: time.Now().UTC(),
		Facts:       facts,
	}, errs
}

// Options names the probe surface RegisterHostFacts wires up.
type Options struct {
	Query      *probe.ServiceQuery
	Roles      *probe.RoleProber
	Status     *probe.StatusClient
	StatusPort int
	// Endpoints to probe on the status API, e.g. "pe-puppetdb".
	StatusEndpoints []string
	// Filesystem paths to report free-space percentages for.
	Paths []string
}

// RegisterHostFacts registers the standard fact set: node role, postgres
// service state, status endpoint payloads, and filesystem headroom.
func RegisterHostFacts(r *Registry, opts Options) {
	if opts.Roles != nil {
		r.Register("role", func(ctx context.Context) (any, error) {
			return string(opts.Roles.Classify()), nil
		})
	}

	if opts.Query != nil && opts.Roles != nil {
		name := opts.Roles.PostgresServiceName()
		r.Register("postgres_service_running_enabled", func(ctx context.Context) (any, error) {
			return opts.Query.ServiceRunningEnabled(ctx, name), nil
		})
	}

	if opts.Status != nil {
		for _, endpoint := range opts.StatusEndpoints {
			ep := endpoint
			r.Register("status_"+ep, func(ctx context.Context) (any, error) {
				return opts.Status.Check(ctx, opts.StatusPort, ep)
			})
		}
	}

	for _, path := range opts.Paths {
		p := path
		r.Register("filesystem_free_"+p, func(ctx context.Context) (any, error) {
			return probe.FilesystemFree(ctx, p)
		})
	}
}
