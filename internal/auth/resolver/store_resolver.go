package resolver

import (
	"context"
	"errors"
	"net/http"

	"github.com/Certs365/auth-service/internal/auth"
	"github.com/Certs365/auth-service/internal/store"
)

// StoreResolver resolves identities against the user store.
type StoreResolver struct {
	users store.Users
	auth  store.AuthRecords
}

func NewStoreResolver(users store.Users, auth store.AuthRecords) *StoreResolver {
	return &StoreResolver{users: users, auth: auth}
}

// Resolve runs the ordered account-matching algorithm:
//
//  1. lookup by third-party id; hit -> refresh sourceApp and return
//  2. lookup by email; hit -> attach third-party id (silent linking,
//     email equality is the only ownership proof) and refresh sourceApp
//  3. create a new passwordless account from the profile
//
// The most recent login's sourceApp always wins; the unconditional
// overwrite in step 1 is intentional. All failures come back as
// *auth.Error so the OAuth callback chain gets a definite outcome.
func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
	sourceApp string,
) (*auth.ResolvedUser, error) {

	if identity == nil || identity.ProviderUserID == "" {
		return nil, auth.E(http.StatusBadRequest, "Invalid provider profile")
	}

	email := identity.ResolvedEmail()
	if email == "" {
		return nil, auth.E(http.StatusBadRequest, "Email is required")
	}

	// 1. Existing linked account.
	user, err := r.users.FindByThirdPartyID(ctx, identity.ProviderUserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, auth.Wrap(http.StatusInternalServerError, "Error while creating user", err)
	}

	if user == nil {
		// 2. Local account with the same email: link the provider id.
		user, err = r.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, auth.Wrap(http.StatusInternalServerError, "Error while creating user", err)
		}
		if user != nil {
			user.ThirdPartyID = identity.ProviderUserID
		}
	}

	if user != nil {
		user.SourceApp = sourceApp
		if err := r.users.Update(ctx, user); err != nil {
			return nil, auth.Wrap(http.StatusInternalServerError, "Error while creating user", err)
		}
		return projection(user, identity.AccessToken), nil
	}

	// 3. Brand-new account, no password.
	user = &store.User{
		ThirdPartyID: identity.ProviderUserID,
		Username:     identity.DisplayName,
		Email:        email,
		SourceApp:    sourceApp,
	}
	if err := r.users.Create(ctx, user); err != nil {
		// A concurrent callback for the same email can win the race;
		// the caller retries and resolves as a link on the next pass.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, auth.Wrap(http.StatusConflict, "Account creation conflicted", err)
		}
		return nil, auth.Wrap(http.StatusInternalServerError, "Error while creating user", err)
	}

	return projection(user, identity.AccessToken), nil
}

func projection(u *store.User, accessToken string) *auth.ResolvedUser {
	return &auth.ResolvedUser{
		ID:           u.ID.Hex(),
		ThirdPartyID: u.ThirdPartyID,
		Email:        u.Email,
		Username:     u.Username,
		Token:        accessToken,
	}
}
