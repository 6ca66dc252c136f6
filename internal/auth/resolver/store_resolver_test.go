package resolver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Certs365/auth-service/internal/auth"
	"github.com/Certs365/auth-service/internal/store"
)

func newResolver() (*StoreResolver, *store.MemoryUsers, *store.MemoryAuthRecords) {
	users := store.NewMemoryUsers()
	auths := store.NewMemoryAuthRecords()
	return NewStoreResolver(users, auths), users, auths
}

func googleIdentity() *auth.Identity {
	return &auth.Identity{
		Provider:       "google",
		ProviderUserID: "google-sub-1",
		DisplayName:    "Jordan Miles",
		Email:          "jordan@example.com",
		AccessToken:    "provider-token",
	}
}

func TestResolve_CreatesNewAccountWithoutPassword(t *testing.T) {
	r, users, _ := newResolver()

	resolved, err := r.Resolve(context.Background(), googleIdentity(), "certs365")
	require.NoError(t, err)

	assert.Equal(t, "google-sub-1", resolved.ThirdPartyID)
	assert.Equal(t, "jordan@example.com", resolved.Email)
	assert.Equal(t, "Jordan Miles", resolved.Username)
	assert.Equal(t, "provider-token", resolved.Token)

	user, err := users.FindByThirdPartyID(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "certs365", user.SourceApp)
	assert.Equal(t, 1, users.Count())
}

func TestResolve_IsIdempotentForSameSubject(t *testing.T) {
	r, users, _ := newResolver()
	ctx := context.Background()

	first, err := r.Resolve(ctx, googleIdentity(), "certs365")
	require.NoError(t, err)

	second, err := r.Resolve(ctx, googleIdentity(), "certs365")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, users.Count())
}

func TestResolve_MostRecentSourceAppWins(t *testing.T) {
	r, users, _ := newResolver()
	ctx := context.Background()

	_, err := r.Resolve(ctx, googleIdentity(), "certs365")
	require.NoError(t, err)

	_, err = r.Resolve(ctx, googleIdentity(), "proofkit")
	require.NoError(t, err)

	user, err := users.FindByThirdPartyID(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "proofkit", user.SourceApp)
}

func TestResolve_LinksLocalAccountByEmail(t *testing.T) {
	r, users, _ := newResolver()
	ctx := context.Background()

	local := &store.User{
		Username:     "jordan",
		Email:        "jordan@example.com",
		PasswordHash: "$2a$10$existinghash",
		SourceApp:    "portal",
	}
	require.NoError(t, users.Create(ctx, local))

	resolved, err := r.Resolve(ctx, googleIdentity(), "certs365")
	require.NoError(t, err)

	assert.Equal(t, local.ID.Hex(), resolved.ID)
	assert.Equal(t, 1, users.Count())

	linked, err := users.FindByID(ctx, local.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", linked.ThirdPartyID)
	assert.Equal(t, "$2a$10$existinghash", linked.PasswordHash, "linking must not erase the local credential")
	assert.Equal(t, "certs365", linked.SourceApp)
}

func TestResolve_FallsBackToEmailsList(t *testing.T) {
	r, _, _ := newResolver()

	identity := googleIdentity()
	identity.Email = ""
	identity.Emails = []string{"alt@example.com", "other@example.com"}

	resolved, err := r.Resolve(context.Background(), identity, "certs365")
	require.NoError(t, err)
	assert.Equal(t, "alt@example.com", resolved.Email)
}

func TestResolve_MissingEmailIsClientError(t *testing.T) {
	r, users, _ := newResolver()

	identity := googleIdentity()
	identity.Email = ""
	identity.Emails = nil

	_, err := r.Resolve(context.Background(), identity, "certs365")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, auth.CodeOf(err))
	assert.Equal(t, 0, users.Count(), "no record may be created on a data error")
}

func TestResolve_NilIdentityIsClientError(t *testing.T) {
	r, _, _ := newResolver()

	_, err := r.Resolve(context.Background(), nil, "certs365")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, auth.CodeOf(err))
}

// flakyUsers injects failures into selected operations.
type flakyUsers struct {
	store.Users
	createErrs []error
}

func (f *flakyUsers) Create(ctx context.Context, u *store.User) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	return f.Users.Create(ctx, u)
}

func TestResolveWithRetry_RetriesTransientFailures(t *testing.T) {
	users := store.NewMemoryUsers()
	flaky := &flakyUsers{
		Users:      users,
		createErrs: []error{errors.New("connection reset"), errors.New("connection reset")},
	}
	r := NewStoreResolver(flaky, store.NewMemoryAuthRecords())

	resolved, err := ResolveWithRetry(context.Background(), r, googleIdentity(), "certs365")
	require.NoError(t, err)
	assert.NotEmpty(t, resolved.ID)
	assert.Equal(t, 1, users.Count())
}

func TestResolveWithRetry_GivesUpAfterThreeAttempts(t *testing.T) {
	users := store.NewMemoryUsers()
	flaky := &flakyUsers{
		Users: users,
		createErrs: []error{
			errors.New("down"), errors.New("down"),
			errors.New("down"), errors.New("down"),
		},
	}
	r := NewStoreResolver(flaky, store.NewMemoryAuthRecords())

	_, err := ResolveWithRetry(context.Background(), r, googleIdentity(), "certs365")
	require.Error(t, err)
	assert.Len(t, flaky.createErrs, 1, "exactly three attempts expected")
}

// countingResolver counts Resolve invocations.
type countingResolver struct {
	inner Resolver
	calls int
}

func (c *countingResolver) Resolve(ctx context.Context, id *auth.Identity, sourceApp string) (*auth.ResolvedUser, error) {
	c.calls++
	return c.inner.Resolve(ctx, id, sourceApp)
}

func TestResolveWithRetry_ValidationFailureIsTerminal(t *testing.T) {
	r, _, _ := newResolver()
	counting := &countingResolver{inner: r}

	identity := googleIdentity()
	identity.Email = ""
	identity.Emails = nil

	_, err := ResolveWithRetry(context.Background(), counting, identity, "certs365")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, auth.CodeOf(err))
	assert.Equal(t, 1, counting.calls, "missing email must not be retried")
}

func TestResolveWithRetry_DuplicateRaceResolvesAsLink(t *testing.T) {
	users := store.NewMemoryUsers()
	ctx := context.Background()

	// Simulate the race loser: the winner's row lands between the
	// not-found checks and the insert.
	winner := &store.User{
		Username:  "Jordan Miles",
		Email:     "jordan@example.com",
		SourceApp: "other-app",
	}
	require.NoError(t, users.Create(ctx, winner))

	flaky := &flakyUsers{Users: users, createErrs: []error{store.ErrDuplicate}}
	r := NewStoreResolver(&hideUntilRetry{Users: flaky, hidden: winner.Email}, store.NewMemoryAuthRecords())

	resolved, err := ResolveWithRetry(ctx, r, googleIdentity(), "certs365")
	require.NoError(t, err)
	assert.Equal(t, winner.ID.Hex(), resolved.ID)
	assert.Equal(t, 1, users.Count(), "retry must not create a second row")
}

// hideUntilRetry makes an email invisible on the first lookup so the
// resolver walks the create branch once before finding the winner.
type hideUntilRetry struct {
	store.Users
	hidden string
	seen   bool
}

func (h *hideUntilRetry) FindByEmail(ctx context.Context, email string) (*store.User, error) {
	if email == h.hidden && !h.seen {
		h.seen = true
		return nil, store.ErrNotFound
	}
	return h.Users.FindByEmail(ctx, email)
}

func TestResolveWithRetry_ConcurrentCallsForNewEmail(t *testing.T) {
	users := store.NewMemoryUsers()
	r := NewStoreResolver(users, store.NewMemoryAuthRecords())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ResolveWithRetry(context.Background(), r, googleIdentity(), "certs365")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err, "race losers must recover via retry, not crash")
	}
	assert.Equal(t, 1, users.Count(), "exactly one row for the new email")
}
