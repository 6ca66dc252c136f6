package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string   // e.g. "google", "linkedin"
	ProviderUserID string   // provider-scoped unique user identifier (sub)
	DisplayName    string   // human-readable name from the profile
	Email          string   // primary email returned by provider, may be empty
	Emails         []string // additional candidate emails, in provider order
	EmailVerified  bool     // whether provider asserts email ownership
	AccessToken    string   // provider access token, passed through verbatim
}

// ResolvedEmail returns the usable email for this identity: the explicit
// Email field, or the first entry of Emails. Empty string means the
// profile carries no usable email at all.
func (i *Identity) ResolvedEmail() string {
	if i.Email != "" {
		return i.Email
	}
	if len(i.Emails) > 0 {
		return i.Emails[0]
	}
	return ""
}

// ResolvedUser is the compact projection returned after a third-party
// identity has been matched, linked, or created.
type ResolvedUser struct {
	ID           string `json:"id"`
	ThirdPartyID string `json:"userId"`
	Email        string `json:"email"`
	Username     string `json:"userName"`
	Token        string `json:"token"`
}
