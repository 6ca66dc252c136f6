package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryUsers is an in-memory Users implementation with the same
// uniqueness semantics as the Mongo indexes. It backs the test suites;
// nothing about it is Mongo-specific beyond the ObjectID ids.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]*User // keyed by hex id
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*User)}
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = normalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) FindByThirdPartyID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ThirdPartyID != "" && u.ThirdPartyID == id {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return clone(u), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
		if u.ThirdPartyID != "" && existing.ThirdPartyID == u.ThirdPartyID {
			return ErrDuplicate
		}
	}

	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users[u.ID.Hex()] = clone(u)
	return nil
}

func (m *MemoryUsers) Update(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[u.ID.Hex()]
	if !ok {
		return ErrNotFound
	}

	existing.Username = u.Username
	existing.SourceApp = u.SourceApp
	if u.ThirdPartyID != "" {
		existing.ThirdPartyID = u.ThirdPartyID
	}
	if u.PasswordHash != "" {
		existing.PasswordHash = u.PasswordHash
	}
	return nil
}

// Count reports the number of stored users.
func (m *MemoryUsers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func clone(u *User) *User {
	c := *u
	return &c
}

// MemoryAuthRecords is the in-memory AuthRecords counterpart.
type MemoryAuthRecords struct {
	mu   sync.Mutex
	recs map[string]*AuthRecord // keyed by email
}

func NewMemoryAuthRecords() *MemoryAuthRecords {
	return &MemoryAuthRecords{recs: make(map[string]*AuthRecord)}
}

func (m *MemoryAuthRecords) FindByEmail(_ context.Context, email string) (*AuthRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[normalizeEmail(email)]; ok {
		c := *rec
		return &c, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryAuthRecords) Create(_ context.Context, rec *AuthRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(rec.Email)
	if _, ok := m.recs[email]; ok {
		return ErrDuplicate
	}

	rec.Email = email
	if rec.ID.IsZero() {
		rec.ID = bson.NewObjectID()
	}
	if rec.Status == "" {
		rec.Status = statusActive
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	c := *rec
	m.recs[email] = &c
	return nil
}

func (m *MemoryAuthRecords) SetOTP(_ context.Context, email string, otp int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = normalizeEmail(email)
	if rec, ok := m.recs[email]; ok {
		rec.OTP = otp
		return nil
	}
	m.recs[email] = &AuthRecord{
		ID:        bson.NewObjectID(),
		Email:     email,
		OTP:       otp,
		Status:    statusActive,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}
