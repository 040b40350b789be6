package repositories

import "context"

// OriginRepository reads the remote configuration of a local checkout.
type OriginRepository interface {
	// OriginURL returns the first URL of the "origin" remote of the
	// repository containing dir.
	OriginURL(ctx context.Context, dir string) (string, error)
}
