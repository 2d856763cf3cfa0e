package probe

import (
	"context"
	"strings"
)

// ServiceQuery answers service state questions through a ResourceIndex.
type ServiceQuery struct {
	Index ResourceIndex
}

func NewServiceQuery(idx ResourceIndex) *ServiceQuery {
	return &ServiceQuery{Index: idx}
}

// GetResource looks up "{resourceType}/{name}". Service names without a
// dot get a ".service" suffix so short names resolve to systemd units.
// Returns nil when the resource does not exist or the lookup fails.
func (q *ServiceQuery) GetResource(ctx context.Context, resourceType, name string) *Resource {
	if resourceType == "service" && !strings.Contains(name, ".") {
		name += ".service"
	}
	res, err := q.Index.Find(ctx, resourceType+"/"+name)
	if err != nil {
		return nil
	}
	return res
}

// ServiceRunning reports whether the named service resolves and its
// ensure state is exactly "running".
func (q *ServiceQuery) ServiceRunning(ctx context.Context, name string) bool {
	return resourceRunning(q.GetResource(ctx, "service", name))
}

// ServiceEnabled reports whether the named service resolves and its
// enable attribute equals "true", compared case-insensitively.
func (q *ServiceQuery) ServiceEnabled(ctx context.Context, name string) bool {
	return resourceEnabled(q.GetResource(ctx, "service", name))
}

// ServiceRunningEnabled is ServiceRunning && ServiceEnabled with a single
// resource lookup shared between the two checks.
func (q *ServiceQuery) ServiceRunningEnabled(ctx context.Context, name string) bool {
	res := q.GetResource(ctx, "service", name)
	return resourceRunning(res) && resourceEnabled(res)
}

func resourceRunning(res *Resource) bool {
	return res != nil && res.Attribute("ensure") == "running"
}

func resourceEnabled(res *Resource) bool {
	return res != nil && strings.EqualFold(res.Attribute("enable"), "true")
}
