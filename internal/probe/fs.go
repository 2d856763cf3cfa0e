package probe

import (
	"context"
	"fmt"

	godisk "github.com/shirou/gopsutil/v4/disk"
)

// Syscall seam for tests.
var diskUsage = godisk.UsageWithContext

// FilesystemFree returns the free percentage of the filesystem backing
// path, floored to an integer. Free is the space available to unprivileged
// callers, matching statfs blocks_available. A zero-capacity filesystem is
// an explicit error rather than a division by zero.
func FilesystemFree(ctx context.Context, path string) (int, error) {
	stat, err := diskUsage(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("stat filesystem %s: %w", path, err)
	}
	if stat.Total == 0 {
		return 0, fmt.Errorf("filesystem %s reports zero total capacity", path)
	}
	return int(stat.Free * 100 / stat.Total), nil
}
