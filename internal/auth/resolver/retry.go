package resolver

import (
	"context"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Certs365/auth-service/internal/auth"
	"github.com/Certs365/auth-service/internal/logger"
)

const (
	resolveAttempts = 3
	resolveDelay    = time.Second
)

// ResolveWithRetry runs the resolver with bounded retry for transient
// failures: up to 3 attempts with a fixed 1s delay. Client-data errors
// (missing email, bad profile) are terminal immediately; store faults
// and duplicate-key conflicts are worth another pass, since the loser
// of a create race resolves as a link on retry.
func ResolveWithRetry(
	ctx context.Context,
	r Resolver,
	identity *auth.Identity,
	sourceApp string,
) (*auth.ResolvedUser, error) {

	backoff := retry.WithMaxRetries(resolveAttempts-1, retry.NewConstant(resolveDelay))

	var resolved *auth.ResolvedUser
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		u, err := r.Resolve(ctx, identity, sourceApp)
		if err != nil {
			if auth.CodeOf(err) == http.StatusBadRequest {
				return err // validation failure, no retry
			}
			logger.Warn("account resolution failed, retrying", map[string]any{
				"provider": identity.Provider,
				"error":    err.Error(),
			})
			return retry.RetryableError(err)
		}
		resolved = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
