package core

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound is returned by lookups when no user matches the filter.
var ErrNotFound = errors.New("user not found")

// UserRecord is the user document as stored in the collection. Timestamps
// are epoch seconds; Password always holds the bcrypt hash, never the
// plaintext. The wire shape mirrors the stored one.
type UserRecord struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	DisplayName string        `bson:"displayName" json:"displayName"`
	Email       string        `bson:"email" json:"email"`
	Password    string        `bson:"password" json:"password"`
	SignupDate  int64         `bson:"signupDate" json:"signupDate"`
	LastLogin   int64         `bson:"lastLogin" json:"lastLogin"`
}

// DirectoryEntry is the public projection of a user (no id, no hash).
type DirectoryEntry struct {
	DisplayName string `bson:"displayName" json:"displayName"`
	Email       string `bson:"email" json:"email"`
}

// UserRepository defines persistence operations for users. Find/insert/
// update/remove all address documents by filter; the raw variants back the
// pass-through CRUD routes that accept arbitrary document bodies.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	Insert(ctx context.Context, u *UserRecord) error
	UpdateLastLogin(ctx context.Context, id string, ts int64) error
	ListDirectory(ctx context.Context) ([]DirectoryEntry, error)

	FindAll(ctx context.Context) ([]UserRecord, error)
	InsertRaw(ctx context.Context, doc map[string]any) (map[string]any, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	Remove(ctx context.Context, id string) (int64, error)
}

// MongoUserRepository implements UserRepository on a mongo collection.
type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection("user")}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var u UserRecord
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*UserRecord, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var u UserRecord
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Insert stores a new user and fills in the assigned id.
func (r *MongoUserRepository) Insert(ctx context.Context, u *UserRecord) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	_, err := r.users.InsertOne(ctx, u)
	return err
}

func (r *MongoUserRepository) UpdateLastLogin(ctx context.Context, id string, ts int64) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLogin": ts}})
	return err
}

func (r *MongoUserRepository) ListDirectory(ctx context.Context) ([]DirectoryEntry, error) {
	projection := options.Find().SetProjection(bson.M{"_id": 0, "displayName": 1, "email": 1})
	cur, err := r.users.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, err
	}
	entries := make([]DirectoryEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]UserRecord, error) {
	cur, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]UserRecord, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// InsertRaw stores an arbitrary document and returns it with the assigned id.
func (r *MongoUserRepository) InsertRaw(ctx context.Context, doc map[string]any) (map[string]any, error) {
	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc["_id"] = res.InsertedID
	return doc, nil
}

// UpdateFields applies a $set of the given fields to one document and
// returns the number of modified documents.
func (r *MongoUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Remove deletes one document by id and returns the number removed.
func (r *MongoUserRepository) Remove(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
