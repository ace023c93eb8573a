package finance

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"
)

// Store persists finance records. List methods return newest first.
type Store interface {
	InsertTransaction(ctx context.Context, tx *Transaction) (*Transaction, error)
	ListTransactions(ctx context.Context, userID string, kind Kind) ([]Transaction, error)
	InsertGoal(ctx context.Context, goal *Goal) (*Goal, error)
	ListGoals(ctx context.Context, userID string) ([]Goal, error)
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu           sync.RWMutex
	seq          int
	transactions []Transaction
	goals        []Goal
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) nextID() string {
	s.seq++
	return strconv.Itoa(s.seq)
}

func (s *MemoryStore) InsertTransaction(_ context.Context, tx *Transaction) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *tx
	stored.ID = s.nextID()
	s.transactions = append(s.transactions, stored)
	return &stored, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, userID string, kind Kind) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, 0)
	for _, tx := range s.transactions {
		if tx.UserID == userID && tx.Kind == kind {
			out = append(out, tx)
		}
	}
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func (s *MemoryStore) InsertGoal(_ context.Context, goal *Goal) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *goal
	if goal.Deadline != nil {
		d := *goal.Deadline
		stored.Deadline = &d
	}
	stored.ID = s.nextID()
	s.goals = append(s.goals, stored)
	return &stored, nil
}

func (s *MemoryStore) ListGoals(_ context.Context, userID string) ([]Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Goal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	slices.SortStableFunc(out, func(a, b Goal) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return out, nil
}
