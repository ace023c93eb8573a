package finance

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/pkg/validator"
)

const (
	maxCategoryLength = 64
	maxNoteLength     = 500
	maxTitleLength    = 120
)

// Service validates and records finance entries.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for defaults and deadline checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service on store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransaction records an income or expense for userID.
func (s *Service) CreateTransaction(ctx context.Context, userID string, kind Kind, in TransactionInput) (*Transaction, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	category := strings.TrimSpace(in.Category)
	note := strings.TrimSpace(in.Note)
	if err := validator.Apply(
		validator.PositiveAmount("amount", in.Amount),
		validator.RequiredString("category", category),
		validator.MaxLenString("category", category, maxCategoryLength),
		validator.MaxLenString("note", note, maxNoteLength),
	); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	tx, err := s.store.InsertTransaction(ctx, &Transaction{
		UserID:    userID,
		Kind:      kind,
		Amount:    in.Amount,
		Category:  category,
		Note:      note,
		Date:      date,
		CreatedAt: now,
	})
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	s.logger.DebugContext(ctx, "transaction recorded",
		logger.UserID(userID),
		slog.String("kind", string(kind)),
		logger.Component("finance"),
	)
	return tx, nil
}

// ListTransactions returns userID's transactions of kind, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string, kind Kind) ([]Transaction, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	items, err := s.store.ListTransactions(ctx, userID, kind)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return items, nil
}

// CreateGoal records a savings goal for userID. A deadline, when given, must
// lie in the future.
func (s *Service) CreateGoal(ctx context.Context, userID string, in GoalInput) (*Goal, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}

	now := s.now().UTC()
	title := strings.TrimSpace(in.Title)
	hasDeadline := in.Deadline != nil && !in.Deadline.IsZero()

	rules := []validator.Rule{
		validator.RequiredString("title", title),
		validator.MaxLenString("title", title, maxTitleLength),
		validator.PositiveAmount("targetAmount", in.TargetAmount),
		validator.NonNegativeAmount("savedAmount", in.SavedAmount),
		validator.MaxNum("savedAmount", in.SavedAmount, in.TargetAmount),
	}
	if hasDeadline {
		rules = append(rules, validator.DateAfter("deadline", *in.Deadline, now))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	goal := &Goal{
		UserID:       userID,
		Title:        title,
		TargetAmount: in.TargetAmount,
		SavedAmount:  in.SavedAmount,
		CreatedAt:    now,
	}
	if hasDeadline {
		deadline := in.Deadline.UTC()
		goal.Deadline = &deadline
	}

	stored, err := s.store.InsertGoal(ctx, goal)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	s.logger.DebugContext(ctx, "goal recorded", logger.UserID(userID), logger.Component("finance"))
	return stored, nil
}

// ListGoals returns userID's goals, newest first.
func (s *Service) ListGoals(ctx context.Context, userID string) ([]Goal, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}

	items, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return items, nil
}
