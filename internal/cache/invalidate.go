// Package cache carries the stale-view signal: after a successful write the
// services name the presentation paths whose cached renderings are stale.
package cache

import "log/slog"

// DashboardPath is invalidated by every transaction create.
const DashboardPath = "/dashboard"

// AccountPath returns the detail-view path key for an account.
func AccountPath(accountID string) string { return "/account/" + accountID }

type Invalidator interface {
	Invalidate(paths ...string)
}

// LogInvalidator publishes stale paths to the log stream, where the
// presentation tier picks them up.
type LogInvalidator struct {
	Log *slog.Logger
}

func (l *LogInvalidator) Invalidate(paths ...string) {
	if l.Log == nil {
		return
	}
	l.Log.Info("cache invalidate", "paths", paths)
}
