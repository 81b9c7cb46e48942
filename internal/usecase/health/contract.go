package health

import "context"

// SourcePinger checks product source availability.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// SnapshotChecker reports whether a catalog snapshot is being served.
type SnapshotChecker interface {
	Loaded() bool
}
