package finance

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/dmitrymomot/lightsave/pkg/mongo"
)

const (
	TransactionsCollection = "transactions"
	GoalsCollection        = "goals"
)

type transactionDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"userId"`
	Kind      string        `bson:"kind"`
	Amount    float64       `bson:"amount"`
	Category  string        `bson:"category"`
	Note      string        `bson:"note,omitempty"`
	Date      time.Time     `bson:"date"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d transactionDocument) toTransaction() Transaction {
	return Transaction{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Kind:      Kind(d.Kind),
		Amount:    d.Amount,
		Category:  d.Category,
		Note:      d.Note,
		Date:      d.Date.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type goalDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	UserID       string        `bson:"userId"`
	Title        string        `bson:"title"`
	TargetAmount float64       `bson:"targetAmount"`
	SavedAmount  float64       `bson:"savedAmount"`
	Deadline     *time.Time    `bson:"deadline,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d goalDocument) toGoal() Goal {
	g := Goal{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		Title:        d.Title,
		TargetAmount: d.TargetAmount,
		SavedAmount:  d.SavedAmount,
		CreatedAt:    d.CreatedAt.UTC(),
	}
	if d.Deadline != nil {
		deadline := d.Deadline.UTC()
		g.Deadline = &deadline
	}
	return g
}

// MongoStore is a Store backed by MongoDB.
type MongoStore struct {
	transactions *mongo.Collection
	goals        *mongo.Collection
}

// NewMongoStore creates a store on db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		transactions: db.Collection(TransactionsCollection),
		goals:        db.Collection(GoalsCollection),
	}
}

// EnsureIndexes creates the per-owner listing indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if err := mongox.EnsureIndex(ctx, s.transactions, "owner_kind_date",
		bson.D{{Key: "userId", Value: 1}, {Key: "kind", Value: 1}, {Key: "date", Value: -1}},
	); err != nil {
		return err
	}
	return mongox.EnsureIndex(ctx, s.goals, "owner_created",
		bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	)
}

func (s *MongoStore) InsertTransaction(ctx context.Context, tx *Transaction) (*Transaction, error) {
	doc := transactionDocument{
		ID:        bson.NewObjectID(),
		UserID:    tx.UserID,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount,
		Category:  tx.Category,
		Note:      tx.Note,
		Date:      tx.Date,
		CreatedAt: tx.CreatedAt,
	}
	if _, err := s.transactions.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	out := doc.toTransaction()
	return &out, nil
}

func (s *MongoStore) ListTransactions(ctx context.Context, userID string, kind Kind) ([]Transaction, error) {
	filter := bson.D{{Key: "userId", Value: userID}, {Key: "kind", Value: string(kind)}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.transactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]Transaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toTransaction())
	}
	return out, nil
}

func (s *MongoStore) InsertGoal(ctx context.Context, goal *Goal) (*Goal, error) {
	doc := goalDocument{
		ID:           bson.NewObjectID(),
		UserID:       goal.UserID,
		Title:        goal.Title,
		TargetAmount: goal.TargetAmount,
		SavedAmount:  goal.SavedAmount,
		Deadline:     goal.Deadline,
		CreatedAt:    goal.CreatedAt,
	}
	if _, err := s.goals.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	out := doc.toGoal()
	return &out, nil
}

func (s *MongoStore) ListGoals(ctx context.Context, userID string) ([]Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.goals.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find goals: %w", err)
	}

	var docs []goalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}

	out := make([]Goal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toGoal())
	}
	return out, nil
}
