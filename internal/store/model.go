package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a unique identity record. Exactly one of PasswordHash or
// ThirdPartyID is set at creation; a local account that later logs in
// through a provider with the same email ends up with both.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ThirdPartyID string        `bson:"third_party_id,omitempty" json:"thirdPartyId,omitempty"`
	Username     string        `bson:"username" json:"username"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`
	SourceApp    string        `bson:"source_app" json:"sourceApp"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
}

// AuthRecord holds side-channel verification state, keyed by email.
// It may exist before or independently of the User row and is never
// deleted by the password flows.
type AuthRecord struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	OTP       int           `bson:"otp"`
	Status    string        `bson:"status"`
	CreatedAt time.Time     `bson:"created_at"`
}
