package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	mongox "github.com/dmitrymomot/lightsave/pkg/mongo"
)

// AccountsCollection is the MongoDB collection holding accounts.
const AccountsCollection = "users"

type accountDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName string        `bson:"firstname"`
	LastName  string        `bson:"lastname"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Role      string        `bson:"role"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d accountDocument) toAccount() *Account {
	return &Account{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         Role(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

// MongoStore is a CredentialStore backed by MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store on db's accounts collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(AccountsCollection)}
}

// EnsureIndexes creates the unique email index. Call it once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	return mongox.EnsureUniqueIndex(ctx, s.coll, "email")
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var doc accountDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return doc.toAccount(), nil
}

func (s *MongoStore) Create(ctx context.Context, account *Account) (*Account, error) {
	doc := accountDocument{
		ID:        bson.NewObjectID(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Password:  account.PasswordHash,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, insertError(err)
	}

	return doc.toAccount(), nil
}

// insertError maps a unique email index violation to ErrEmailTaken.
func insertError(err error) error {
	if mongox.IsDuplicateKey(err) {
		return ErrEmailTaken
	}
	return fmt.Errorf("insert account: %w", err)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrAccountNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
