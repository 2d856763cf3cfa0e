package probe

import (
	"os"
	"path/filepath"
	"strings"
)

// Role is the deployment-tier classification of a node, derived from
// which service marker files are present on disk.
type Role string

const (
	RolePrimary        Role = "primary"
	RoleReplica        Role = "replica"
	RoleCompiler       Role = "compiler"
	RoleLegacyCompiler Role = "legacy_compiler"
	RolePostgres       Role = "postgres"
	RoleUnknown        Role = "unknown"
)

// Marker file names probed for role classification.
const (
	markerPuppetserver  = "pe-puppetserver"
	markerOrchestration = "pe-orchestration-services"
	markerConsole       = "pe-console-services"
	markerPuppetDB      = "pe-puppetdb"
	markerPgsql         = "pe-pgsql"
	markerPostgresql    = "pe-postgresql"
)

// RoleProber classifies a host by probing for service marker files under
// the OS-appropriate config directory.
type RoleProber struct {
	Facts Facts
	// Root is prepended to probe paths; "" means the real filesystem
	// root. Tests point it at a temp dir.
	Root string
}

func NewRoleProber(facts Facts) *RoleProber {
	return &RoleProber{Facts: facts}
}

// confDir is /etc/sysconfig on RedHat and Suse families, /etc/default
// everywhere else.
func (p *RoleProber) confDir() string {
	family := p.Facts.Value(FactOSFamily)
	if strings.EqualFold(family, "RedHat") || strings.EqualFold(family, "Suse") {
		return "/etc/sysconfig"
	}
	return "/etc/default"
}

// ServiceFileExists reports whether the named service config file is
// present under the OS config directory. Presence only; content is never
// read.
func (p *RoleProber) ServiceFileExists(name string) bool {
	_, err := os.Stat(filepath.Join(p.Root, p.confDir(), name))
	return err == nil
}

func (p *RoleProber) IsPrimary() bool {
	return p.ServiceFileExists(markerPuppetserver) &&
		p.ServiceFileExists(markerOrchestration) &&
		p.ServiceFileExists(markerConsole) &&
		p.ServiceFileExists(markerPuppetDB)
}

func (p *RoleProber) IsReplica() bool {
	return p.ServiceFileExists(markerPuppetserver) &&
		!p.ServiceFileExists(markerOrchestration) &&
		p.ServiceFileExists(markerConsole) &&
		p.ServiceFileExists(markerPuppetDB)
}

func (p *RoleProber) IsCompiler() bool {
	return p.ServiceFileExists(markerPuppetserver) &&
		!p.ServiceFileExists(markerOrchestration) &&
		!p.ServiceFileExists(markerConsole) &&
		p.ServiceFileExists(markerPuppetDB)
}

func (p *RoleProber) IsLegacyCompiler() bool {
	return p.ServiceFileExists(markerPuppetserver) &&
		!p.ServiceFileExists(markerOrchestration) &&
		!p.ServiceFileExists(markerConsole) &&
		!p.ServiceFileExists(markerPuppetDB)
}

// IsPostgres is a standalone probe, not the fallthrough of the other
// four: all four service markers absent plus a postgres marker present.
func (p *RoleProber) IsPostgres() bool {
	return !p.ServiceFileExists(markerPuppetserver) &&
		!p.ServiceFileExists(markerOrchestration) &&
		!p.ServiceFileExists(markerConsole) &&
		!p.ServiceFileExists(markerPuppetDB) &&
		(p.ServiceFileExists(markerPgsql) || p.ServiceFileExists(markerPostgresql))
}

// Classify returns the single role the marker table yields, or
// RoleUnknown when no row matches.
func (p *RoleProber) Classify() Role {
	switch {
	case p.IsPrimary():
		return RolePrimary
	case p.IsReplica():
		return RoleReplica
	case p.IsCompiler():
		return RoleCompiler
	case p.IsLegacyCompiler():
		return RoleLegacyCompiler
	case p.IsPostgres():
		return RolePostgres
	}
	return RoleUnknown
}

// PostgresServiceName is "pe-postgresql{version}" on Debian-family hosts,
// with the version taken from the installed-server-version fact, and the
// bare "pe-postgresql" everywhere else.
func (p *RoleProber) PostgresServiceName() string {
	if strings.EqualFold(p.Facts.Value(FactOSFamily), "Debian") {
		return markerPostgresql + p.Facts.Value(FactPostgresVersion)
	}
	return markerPostgresql
}
