package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/lightsave/pkg/jwt"
)

const testSecret = "test-secret-32-chars-long-12345"

func validRegister() RegisterInput {
	return RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "secret1",
	}
}

// newRealAuthenticator wires the in-memory store, a fast bcrypt hasher and a
// real token service.
func newRealAuthenticator(t *testing.T) (*Authenticator, *MemoryStore, *jwt.Service) {
	t.Helper()

	store := NewMemoryStore()
	hasher, err := NewBcryptHasher(WithCost(bcrypt.MinCost), WithWorkers(4))
	require.NoError(t, err)
	tokens, err := jwt.New(testSecret)
	require.NoError(t, err)

	return NewAuthenticator(store, hasher, tokens), store, tokens
}

func TestNewAuthenticator(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewAuthenticator(nil, &MockHasher{}, &MockTokenIssuer{}) })
	assert.Panics(t, func() { NewAuthenticator(&MockCredentialStore{}, nil, &MockTokenIssuer{}) })
	assert.Panics(t, func() { NewAuthenticator(&MockCredentialStore{}, &MockHasher{}, nil) })

	a := NewAuthenticator(&MockCredentialStore{}, &MockHasher{}, &MockTokenIssuer{})
	assert.NotNil(t, a.logger)
	assert.NotNil(t, a.now)
}

func TestAuthenticator_RegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
		field   string
	}{
		{"missing firstname", func(in *RegisterInput) { in.FirstName = "" }, MsgAllFieldsRequired, "firstname"},
		{"blank lastname", func(in *RegisterInput) { in.LastName = "   " }, MsgAllFieldsRequired, "lastname"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, MsgAllFieldsRequired, "email"},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, MsgAllFieldsRequired, "password"},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }, MsgInvalidEmail, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }, MsgPasswordTooShort, "password"},
		{"password over 72 bytes", func(in *RegisterInput) { in.Password = string(make([]byte, 73)) + "x" }, MsgPasswordTooLong, "password"},
		{"confirmation mismatch", func(in *RegisterInput) { in.ConfirmPassword = "secret2" }, MsgPasswordsMismatch, "confirmPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// No store, hasher or issuer call may happen before validation passes.
			store := &MockCredentialStore{}
			hasher := &MockHasher{}
			tokens := &MockTokenIssuer{}
			a := NewAuthenticator(store, hasher, tokens)

			in := validRegister()
			tt.mutate(&in)

			session, err := a.Register(context.Background(), in)
			require.Nil(t, session)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			assert.True(t, verr.Fields.Has(tt.field))

			store.AssertExpectations(t)
			hasher.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthenticator_RegisterValidationOrder(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(&MockCredentialStore{}, &MockHasher{}, &MockTokenIssuer{})

	// Missing fields win over a bad email and a short password.
	_, err := a.Register(context.Background(), RegisterInput{Email: "bad", Password: "x"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgAllFieldsRequired, verr.Message)

	// A bad email wins over a short password.
	in := validRegister()
	in.Email, in.Password = "bad", "x"
	_, err = a.Register(context.Background(), in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgInvalidEmail, verr.Message)

	// Length is checked before the confirmation.
	in = validRegister()
	in.Password, in.ConfirmPassword = "abc", "abd"
	_, err = a.Register(context.Background(), in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgPasswordTooShort, verr.Message)
}

func TestAuthenticator_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates account with normalized email and USER role", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		tokens := &MockTokenIssuer{}
		now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		a := NewAuthenticator(store, hasher, tokens, WithClock(func() time.Time { return now }))

		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, "secret1").Return("$2a$10$digest", nil)
		store.On("Create", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.Email == "jane@example.com" &&
				acc.FirstName == "Jane" &&
				acc.LastName == "Doe" &&
				acc.PasswordHash == "$2a$10$digest" &&
				acc.Role == RoleUser &&
				acc.CreatedAt.Equal(now)
		})).Return(&Account{
			ID:           "acc-1",
			FirstName:    "Jane",
			LastName:     "Doe",
			Email:        "jane@example.com",
			PasswordHash: "$2a$10$digest",
			Role:         RoleUser,
		}, nil)
		tokens.On("Issue", "acc-1", "USER").Return("signed.token.value", nil)

		in := validRegister()
		in.Email = "  Jane@Example.COM "
		in.ConfirmPassword = "secret1"

		session, err := a.Register(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "signed.token.value", session.Token)
		assert.Equal(t, Summary{
			ID:        "acc-1",
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Role:      RoleUser,
		}, session.Account)

		store.AssertExpectations(t)
		hasher.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("existing email is a conflict", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(&Account{ID: "acc-1"}, nil)

		_, err := a.Register(context.Background(), validRegister())
		var cerr *ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, MsgEmailInUse, cerr.Message)
		hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	})

	t.Run("store race is a conflict", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, mock.Anything).Return("digest", nil)
		store.On("Create", mock.Anything, mock.Anything).Return(nil, ErrEmailTaken)

		_, err := a.Register(context.Background(), validRegister())
		var cerr *ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, MsgEmailInUse, cerr.Message)
	})

	t.Run("lookup failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		a := NewAuthenticator(store, &MockHasher{}, &MockTokenIssuer{})

		dbErr := errors.New("connection reset")
		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, err := a.Register(context.Background(), validRegister())
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, MsgServerError, serr.Message)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("hash failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, mock.Anything).Return("", context.Canceled)

		_, err := a.Register(context.Background(), validRegister())
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
		assert.ErrorIs(t, err, context.Canceled)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, mock.Anything).Return("digest", nil)
		store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("write concern"))

		_, err := a.Register(context.Background(), validRegister())
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "create account", serr.Op)
	})

	t.Run("token failure removes the account", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		tokens := &MockTokenIssuer{}
		a := NewAuthenticator(store, hasher, tokens)

		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, mock.Anything).Return("digest", nil)
		store.On("Create", mock.Anything, mock.Anything).Return(&Account{ID: "acc-9", Role: RoleUser}, nil)
		tokens.On("Issue", "acc-9", "USER").Return("", errors.New("signing failed"))
		store.On("Delete", mock.Anything, "acc-9").Return(nil)

		session, err := a.Register(context.Background(), validRegister())
		require.Nil(t, session)
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "issue token", serr.Op)
		store.AssertCalled(t, "Delete", mock.Anything, "acc-9")
	})
}

func TestAuthenticator_Login(t *testing.T) {
	t.Parallel()

	stored := &Account{
		ID:           "acc-1",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		PasswordHash: "digest",
		Role:         RoleUser,
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		tokens := &MockTokenIssuer{}
		a := NewAuthenticator(store, hasher, tokens)

		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		hasher.On("Verify", mock.Anything, "secret1", "digest").Return(true, nil)
		tokens.On("Issue", "acc-1", "USER").Return("tok", nil)

		session, err := a.Login(context.Background(), LoginInput{Email: "JANE@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok", session.Token)
		assert.Equal(t, stored.Summary(), session.Account)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		a := NewAuthenticator(&MockCredentialStore{}, &MockHasher{}, &MockTokenIssuer{})

		for _, in := range []LoginInput{{}, {Email: "jane@example.com"}, {Password: "secret1"}, {Email: " ", Password: "secret1"}} {
			_, err := a.Login(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, MsgCredentialsRequired, verr.Message)
		}
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrAccountNotFound)
		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		hasher.On("Hash", mock.Anything, decoyPassword).Return("decoy-digest", nil)
		hasher.On("Verify", mock.Anything, "whatever", "decoy-digest").Return(false, nil)
		hasher.On("Verify", mock.Anything, "wrong-pass", "digest").Return(false, nil)

		_, unknownErr := a.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
		_, wrongErr := a.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong-pass"})

		var a1, a2 *AuthError
		require.ErrorAs(t, unknownErr, &a1)
		require.ErrorAs(t, wrongErr, &a2)
		assert.Equal(t, MsgInvalidCredentials, a1.Message)
		assert.Equal(t, a1.Message, a2.Message)
		hasher.AssertExpectations(t)
	})

	t.Run("unknown email still verifies a password", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, decoyPassword).Return("decoy-digest", nil).Once()
		hasher.On("Verify", mock.Anything, mock.Anything, "decoy-digest").Return(false, nil)

		for _, pw := range []string{"first-try", "second-try"} {
			_, err := a.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: pw})
			var aerr *AuthError
			require.ErrorAs(t, err, &aerr)
		}

		hasher.AssertNumberOfCalls(t, "Hash", 1)
		hasher.AssertCalled(t, "Verify", mock.Anything, "first-try", "decoy-digest")
		hasher.AssertCalled(t, "Verify", mock.Anything, "second-try", "decoy-digest")
	})

	t.Run("decoy hashing failure still rejects", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})

		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrAccountNotFound)
		hasher.On("Hash", mock.Anything, decoyPassword).Return("", errors.New("pool closed")).Once()

		_, err := a.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})
		var aerr *AuthError
		require.ErrorAs(t, err, &aerr)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		a := NewAuthenticator(store, &MockHasher{}, &MockTokenIssuer{})
		store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := a.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret1"})
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
	})

	t.Run("verification failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		a := NewAuthenticator(store, hasher, &MockTokenIssuer{})
		store.On("FindByEmail", mock.Anything, mock.Anything).Return(stored, nil)
		hasher.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(false, context.DeadlineExceeded)

		_, err := a.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret1"})
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("token failure is a server error", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		hasher := &MockHasher{}
		tokens := &MockTokenIssuer{}
		a := NewAuthenticator(store, hasher, tokens)
		store.On("FindByEmail", mock.Anything, mock.Anything).Return(stored, nil)
		hasher.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		tokens.On("Issue", mock.Anything, mock.Anything).Return("", errors.New("no key"))

		_, err := a.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret1"})
		var serr *ServerError
		require.ErrorAs(t, err, &serr)
	})
}

func TestAuthenticator_EndToEnd(t *testing.T) {
	t.Parallel()

	a, store, tokens := newRealAuthenticator(t)
	ctx := context.Background()

	session, err := a.Register(ctx, validRegister())
	require.NoError(t, err)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, claims.UserID)
	assert.Equal(t, "USER", claims.Role)

	stored, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	body, err := json.Marshal(session.Account)
	require.NoError(t, err)
	assert.NotContains(t, string(body), stored.PasswordHash)
	assert.NotContains(t, string(body), "password")

	_, err = a.Register(ctx, validRegister())
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, store.Len())

	login, err := a.Login(ctx, LoginInput{Email: "Jane@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, session.Account, login.Account)

	_, err = a.Login(ctx, LoginInput{Email: "jane@example.com", Password: "secret2"})
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
}

func TestAuthenticator_ConcurrentRegisterSameEmail(t *testing.T) {
	t.Parallel()

	a, store, _ := newRealAuthenticator(t)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Register(context.Background(), validRegister())

			mu.Lock()
			defer mu.Unlock()
			var cerr *ConflictError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &cerr):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, store.Len())
}
