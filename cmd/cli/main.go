package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/hostprobe/internal/config"
	"github.com/hamed0406/hostprobe/internal/probe"
	"github.com/hamed0406/hostprobe/internal/registry"
)

// One-shot fact collection: run every probe once and print the snapshot
// as JSON on stdout. Probe failures go to stderr, not into the snapshot.
func main() {
	cfgPath := flag.String("config", "", "optional TOML config file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall collection timeout")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	facts := probe.Detect()
	facts[probe.FactCertname] = cfg.Certname

	query := probe.NewServiceQuery(probe.NewSystemdIndex())
	roles := probe.NewRoleProber(facts)
	status := probe.NewStatusClient(cfg.Certname, nil, logger)

	reg := registry.New(logger)
	registry.RegisterHostFacts(reg, registry.Options{
		Query:           query,
		Roles:           roles,
		Status:          status,
		StatusPort:      cfg.StatusPort,
		StatusEndpoints: cfg.StatusEndpoints,
		Paths:           cfg.Paths,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	snap, err := reg.Collect(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "some facts unavailable:", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		log.Fatal(err)
	}
}
