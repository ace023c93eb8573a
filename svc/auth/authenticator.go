package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/pkg/sanitizer"
	"github.com/dmitrymomot/lightsave/pkg/validator"
)

const (
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes and x/crypto refuses such input.
	maxPasswordBytes = 72
	// decoyPassword is hashed once to give unknown-email logins a digest to
	// verify against.
	decoyPassword = "lightsave-decoy-password"
)

// TokenIssuer signs bearer tokens for an account.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// Authenticator registers and logs in accounts.
type Authenticator struct {
	store  CredentialStore
	hasher Hasher
	tokens TokenIssuer
	logger *slog.Logger
	now    func() time.Time

	decoyOnce   sync.Once
	decoyDigest string
	decoyErr    error
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock replaces time.Now for account timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAuthenticator wires the collaborators. All three are required.
func NewAuthenticator(store CredentialStore, hasher Hasher, tokens TokenIssuer, opts ...Option) *Authenticator {
	if store == nil || hasher == nil || tokens == nil {
		panic("auth: NewAuthenticator requires store, hasher and token issuer")
	}

	a := &Authenticator{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register creates an account and returns it with a fresh token.
//
// Either the account is created and a token returned, or nothing is
// persisted: if signing fails after the insert, the account is removed again.
func (a *Authenticator) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := validator.Apply(
		validator.RequiredString("firstname", in.FirstName),
		validator.RequiredString("lastname", in.LastName),
		validator.RequiredString("email", in.Email),
		validator.RequiredString("password", in.Password),
	); err != nil {
		return nil, validationError(MsgAllFieldsRequired, err)
	}

	email := sanitizer.NormalizeEmail(in.Email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return nil, validationError(MsgInvalidEmail, err)
	}

	if err := validator.Apply(validator.MinLenString("password", in.Password, minPasswordLength)); err != nil {
		return nil, validationError(MsgPasswordTooShort, err)
	}
	if err := validator.Apply(validator.MaxBytesString("password", in.Password, maxPasswordBytes)); err != nil {
		return nil, validationError(MsgPasswordTooLong, err)
	}

	if err := validator.Apply(
		validator.When(in.ConfirmPassword != "", validator.EqualString("confirmPassword", in.ConfirmPassword, in.Password)),
	); err != nil {
		return nil, validationError(MsgPasswordsMismatch, err)
	}

	// Advisory only: the store's unique constraint is authoritative.
	if _, err := a.store.FindByEmail(ctx, email); err == nil {
		return nil, &ConflictError{Message: MsgEmailInUse}
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, serverError("check existing account", err)
	}

	digest, err := a.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, serverError("hash password", err)
	}

	account, err := a.store.Create(ctx, &Account{
		FirstName:    sanitizer.Trim(in.FirstName),
		LastName:     sanitizer.Trim(in.LastName),
		Email:        email,
		PasswordHash: digest,
		Role:         RoleUser,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, &ConflictError{Message: MsgEmailInUse}
		}
		return nil, serverError("create account", err)
	}

	token, err := a.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		if delErr := a.store.Delete(context.WithoutCancel(ctx), account.ID); delErr != nil {
			a.logger.ErrorContext(ctx, "failed to remove account after token failure",
				logger.UserID(account.ID),
				logger.Error(delErr),
				logger.Component("auth"),
			)
		}
		return nil, serverError("issue token", err)
	}

	a.logger.InfoContext(ctx, "account registered",
		logger.UserID(account.ID),
		logger.Role(string(account.Role)),
		logger.Component("auth"),
	)

	return &Session{Account: account.Summary(), Token: token}, nil
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown emails and wrong passwords fail with the same *AuthError.
func (a *Authenticator) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := validator.Apply(
		validator.RequiredString("email", in.Email),
		validator.RequiredString("password", in.Password),
	); err != nil {
		return nil, validationError(MsgCredentialsRequired, err)
	}

	account, err := a.store.FindByEmail(ctx, sanitizer.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// Pay the same hashing cost as a wrong password.
			a.verifyDecoy(ctx, in.Password)
			a.logger.DebugContext(ctx, "login rejected", logger.Component("auth"))
			return nil, invalidCredentials()
		}
		return nil, serverError("find account", err)
	}

	ok, err := a.hasher.Verify(ctx, in.Password, account.PasswordHash)
	if err != nil {
		return nil, serverError("verify password", err)
	}
	if !ok {
		a.logger.DebugContext(ctx, "login rejected", logger.UserID(account.ID), logger.Component("auth"))
		return nil, invalidCredentials()
	}

	token, err := a.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		return nil, serverError("issue token", err)
	}

	return &Session{Account: account.Summary(), Token: token}, nil
}

// verifyDecoy runs a verification whose result is discarded. The decoy digest
// is produced with the configured hasher on first use so its cost matches
// stored digests.
func (a *Authenticator) verifyDecoy(ctx context.Context, password string) {
	a.decoyOnce.Do(func() {
		a.decoyDigest, a.decoyErr = a.hasher.Hash(context.WithoutCancel(ctx), decoyPassword)
	})
	if a.decoyErr != nil {
		a.logger.WarnContext(ctx, "decoy digest unavailable", logger.Error(a.decoyErr), logger.Component("auth"))
		return
	}
	_, _ = a.hasher.Verify(ctx, password, a.decoyDigest)
}
