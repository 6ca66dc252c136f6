package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection           = "users"
	authenticationsCollection = "authentications"

	statusActive = "Active"
)

// EnsureIndexes creates the unique indexes the data model relies on:
// users.email (unique), users.third_party_id (unique, sparse) and
// authentications.email (unique). Races on first-time creates surface
// as duplicate-key errors through these.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "third_party_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(authenticationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// MongoUsers implements Users on the users collection.
type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection(usersCollection)}
}

func (s *MongoUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.find(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoUsers) FindByThirdPartyID(ctx context.Context, id string) (*User, error) {
	return s.find(ctx, bson.M{"third_party_id": id})
}

func (s *MongoUsers) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.find(ctx, bson.M{"_id": oid})
}

func (s *MongoUsers) find(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUsers) Create(ctx context.Context, u *User) error {
	u.Email = normalizeEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		return mapWriteErr(err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *MongoUsers) Update(ctx context.Context, u *User) error {
	set := bson.M{
		"username":   u.Username,
		"source_app": u.SourceApp,
	}
	// created_at is immutable; optional fields only written when set so
	// linking never erases an existing hash or provider id.
	if u.ThirdPartyID != "" {
		set["third_party_id"] = u.ThirdPartyID
	}
	if u.PasswordHash != "" {
		set["password_hash"] = u.PasswordHash
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": set})
	if err != nil {
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoAuthRecords implements AuthRecords on the authentications collection.
type MongoAuthRecords struct {
	coll *mongo.Collection
}

func NewMongoAuthRecords(db *mongo.Database) *MongoAuthRecords {
	return &MongoAuthRecords{coll: db.Collection(authenticationsCollection)}
}

func (s *MongoAuthRecords) FindByEmail(ctx context.Context, email string) (*AuthRecord, error) {
	var rec AuthRecord
	err := s.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoAuthRecords) Create(ctx context.Context, rec *AuthRecord) error {
	rec.Email = normalizeEmail(rec.Email)
	if rec.Status == "" {
		rec.Status = statusActive
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return mapWriteErr(err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

func (s *MongoAuthRecords) SetOTP(ctx context.Context, email string, otp int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{
			"$set": bson.M{"otp": otp},
			"$setOnInsert": bson.M{
				"status":     statusActive,
				"created_at": time.Now().UTC(),
			},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return mapWriteErr(err)
}
