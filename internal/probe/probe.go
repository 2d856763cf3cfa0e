// Package probe implements stateless host-introspection queries: service
// run/enable state, deployment-role classification from marker files, a
// local HTTPS status endpoint probe, filesystem free space, and log phrase
// search. Every function is an independent read against the OS or a local
// API; nothing here caches or retries.
package probe

import "context"

// Resource is the current state of an OS-level manageable entity, as
// reported by a ResourceIndex. Attribute values are plain strings; the
// keys used by this package are "ensure" and "enable".
type Resource struct {
	Type       string
	Name       string
	Attributes map[string]string
}

// Attribute returns the named attribute, or "" when absent.
func (r *Resource) Attribute(key string) string {
	if r == nil {
		return ""
	}
	return r.Attributes[key]
}

// ResourceIndex looks up a resource by its "{type}/{name}" key.
// A nil resource with a nil error means the resource does not exist.
type ResourceIndex interface {
	Find(ctx context.Context, key string) (*Resource, error)
}

// Facts supplies host facts by dotted name (e.g. "os.family"). Lookups
// for unknown facts return "".
type Facts interface {
	Value(name string) string
}

// Fact names this package consumes.
const (
	FactOSFamily        = "os.family"
	FactCertname        = "certname"
	FactPostgresVersion = "pe_postgresql_info.installed_server_version"
)

// StaticFacts is a fixed fact table, handy for tests and config-driven
// deployments.
type StaticFacts map[string]string

func (f StaticFacts) Value(name string) string { return f[name] }
