package main

import (
	"flag"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/hostprobe/internal/config"
	"github.com/hamed0406/hostprobe/internal/httpapi"
	"github.com/hamed0406/hostprobe/internal/logging"
	"github.com/hamed0406/hostprobe/internal/probe"
	"github.com/hamed0406/hostprobe/internal/registry"
)

func main() {
	cfgPath := flag.String("config", "", "optional TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.Debug)
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

	api := httpapi.NewServer(logger, reg, roles, cfg.APIKeys)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
