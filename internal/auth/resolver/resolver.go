package resolver

import (
	"context"

	"github.com/Certs365/auth-service/internal/auth"
)

// Resolver decides which local account an external identity belongs to.
// It is the ONLY place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		identity *auth.Identity,
		sourceApp string,
	) (*auth.ResolvedUser, error)
}
