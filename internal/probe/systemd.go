package probe

import (
	"context"
	"os/exec"
	"strings"
)

// SystemdIndex resolves "service/{unit}" keys against the local systemd
// instance via `systemctl show`. Other resource types are reported as
// absent.
type SystemdIndex struct {
	// run is swappable in tests; defaults to exec.CommandContext.
	run func(ctx context.Context, args ...string) ([]byte, error)
}

func NewSystemdIndex() *SystemdIndex {
	return &SystemdIndex{
		run: func(ctx context.Context, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, "systemctl", args...).Output()
		},
	}
}

func (s *SystemdIndex) Find(ctx context.Context, key string) (*Resource, error) {
	typ, unit, ok := strings.Cut(key, "/")
	if !ok || typ != "service" || unit == "" {
		return nil, nil
	}

	out, err := s.run(ctx, "show", unit, "--property=LoadState,ActiveState,UnitFileState")
	if err != nil {
		return nil, err
	}

	props := parseUnitProperties(string(out))
	if props["LoadState"] == "not-found" {
		return nil, nil
	}

	ensure := "stopped"
	if props["ActiveState"] == "active" {
		ensure = "running"
	}
	enable := "false"
	switch props["UnitFileState"] {
	case "enabled", "enabled-runtime", "static":
		enable = "true"
	}

	return &Resource{
		Type: typ,
		Name: unit,
		Attributes: map[string]string{
			"ensure": ensure,
			"enable": enable,
		},
	}, nil
}

// parseUnitProperties parses `systemctl show` KEY=VALUE lines.
func parseUnitProperties(out string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if k, v, ok := strings.Cut(strings.TrimSpace(line), "="); ok {
			props[k] = v
		}
	}
	return props
}
