package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lightsave/handler"
	"github.com/dmitrymomot/lightsave/pkg/binder"
	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/svc/auth"
)

// maxBodySize bounds auth request bodies.
const maxBodySize = 16 << 10

// Authenticator is the subset of *auth.Authenticator the handlers use.
type Authenticator interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error)
	Login(ctx context.Context, in auth.LoginInput) (*auth.Session, error)
}

type PasswordService struct {
	auth   Authenticator
	logger *slog.Logger
}

func NewPasswordService(authenticator Authenticator, log *slog.Logger) *PasswordService {
	if log == nil {
		log = logger.Discard()
	}
	return &PasswordService{auth: authenticator, logger: log}
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()
	bind := binder.Body(binder.MaxSize(maxBodySize))

	r.Post("/register", handler.Wrap(s.register,
		handler.WithBinder[handler.Context, RegisterRequest](s.tolerant(bind)),
	))
	r.Post("/login", handler.Wrap(s.login,
		handler.WithBinder[handler.Context, LoginRequest](s.tolerant(bind)),
	))

	return r
}

// tolerant turns undecodable bodies into zero-valued requests so that field
// validation produces the client-facing message.
func (s *PasswordService) tolerant(bind handler.Bind) handler.Bind {
	return func(r *http.Request, v any) error {
		if err := bind(r, v); err != nil {
			s.logger.DebugContext(r.Context(), "unreadable auth request body", logger.Error(err))
			reflect.ValueOf(v).Elem().SetZero()
		}
		return nil
	}
}

type RegisterRequest struct {
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type registeredUser struct {
	auth.Summary
	Token string `json:"token"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    registeredUser `json:"user"`
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type serverErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (s *PasswordService) register(ctx handler.Context, req RegisterRequest) handler.Response {
	session, err := s.auth.Register(ctx, auth.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var (
			verr *auth.ValidationError
			cerr *auth.ConflictError
		)
		switch {
		case errors.As(err, &verr):
			return handler.JSON(errorResponse{Error: true, Message: verr.Message}, handler.WithJSONStatus(http.StatusBadRequest))
		case errors.As(err, &cerr):
			return handler.JSON(errorResponse{Error: true, Message: cerr.Message}, handler.WithJSONStatus(http.StatusConflict))
		default:
			s.logServerError(ctx, "register", err)
			return handler.JSON(serverErrorResponse{
				Message: auth.MsgServerError,
				Error:   "registration could not be completed",
			}, handler.WithJSONStatus(http.StatusInternalServerError))
		}
	}

	return handler.JSON(registerResponse{
		Message: "User registered successfully",
		User:    registeredUser{Summary: session.Account, Token: session.Token},
	}, handler.WithJSONStatus(http.StatusCreated))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    auth.Summary `json:"user"`
}

func (s *PasswordService) login(ctx handler.Context, req LoginRequest) handler.Response {
	session, err := s.auth.Login(ctx, auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		var (
			verr *auth.ValidationError
			aerr *auth.AuthError
		)
		switch {
		case errors.As(err, &verr):
			return handler.Message(http.StatusBadRequest, verr.Message)
		case errors.As(err, &aerr):
			return handler.Message(http.StatusUnauthorized, aerr.Message)
		default:
			s.logServerError(ctx, "login", err)
			return handler.Message(http.StatusInternalServerError, auth.MsgServerError)
		}
	}

	return handler.JSON(loginResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.Account,
	})
}

func (s *PasswordService) logServerError(ctx handler.Context, op string, err error) {
	r := ctx.Request()
	s.logger.ErrorContext(ctx, "auth request failed",
		logger.Operation(op),
		logger.Error(err),
		logger.HTTPRequest(r.Method, r.URL.Path, http.StatusInternalServerError),
	)
}
