package auth

import (
	"context"
	"strconv"
	"sync"
)

// CredentialStore persists accounts.
//
// FindByEmail returns ErrAccountNotFound when no account matches. Create
// assigns the identifier and returns ErrEmailTaken if the email is already
// used, even when the caller checked beforehand.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a CredentialStore kept in process memory. Emails are unique
// under a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	seq     int
	byEmail map[string]*Account
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]*Account)}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *MemoryStore) Create(_ context.Context, account *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[account.Email]; exists {
		return nil, ErrEmailTaken
	}

	s.seq++
	stored := *account
	stored.ID = strconv.Itoa(s.seq)
	s.byEmail[stored.Email] = &stored

	cp := stored
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, acc := range s.byEmail {
		if acc.ID == id {
			delete(s.byEmail, email)
			return nil
		}
	}
	return ErrAccountNotFound
}

// Len returns the number of stored accounts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
