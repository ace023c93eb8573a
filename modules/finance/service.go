package finance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/lightsave/handler"
	"github.com/dmitrymomot/lightsave/pkg/binder"
	"github.com/dmitrymomot/lightsave/pkg/jwt"
	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/pkg/validator"
	financesvc "github.com/dmitrymomot/lightsave/svc/finance"
)

const maxBodySize = 64 << 10

// Kinds re-exported for wiring.
const (
	KindIncome  = financesvc.KindIncome
	KindExpense = financesvc.KindExpense
)

// Records is the subset of *finance.Service the handlers use.
type Records interface {
	CreateTransaction(ctx context.Context, userID string, kind financesvc.Kind, in financesvc.TransactionInput) (*financesvc.Transaction, error)
	ListTransactions(ctx context.Context, userID string, kind financesvc.Kind) ([]financesvc.Transaction, error)
	CreateGoal(ctx context.Context, userID string, in financesvc.GoalInput) (*financesvc.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]financesvc.Goal, error)
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type validationResponse struct {
	Error   bool                `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// bodyBinder decodes JSON bodies and reports any failure as a 400.
func bodyBinder() handler.Bind {
	decode := binder.JSON(binder.MaxSize(maxBodySize))
	return func(r *http.Request, v any) error {
		if err := decode(r, v); err != nil {
			return errors.Join(handler.NewHTTPError(http.StatusBadRequest, "Invalid request body"), err)
		}
		return nil
	}
}

// failure maps a service error to its HTTP response. Anything that is not a
// validation or ownership problem is logged and reported as a bare 500.
func failure(ctx handler.Context, log *slog.Logger, op string, err error) handler.Response {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return handler.JSON(validationResponse{
			Error:   true,
			Message: "Validation failed",
			Fields:  verrs.Map(),
		}, handler.WithJSONStatus(http.StatusBadRequest))
	}

	if errors.Is(err, financesvc.ErrMissingOwner) {
		return handler.Message(handler.ErrUnauthorized.Code, handler.ErrUnauthorized.Message)
	}

	r := ctx.Request()
	log.ErrorContext(ctx, "finance request failed",
		logger.Operation(op),
		logger.UserID(jwt.UserID(ctx)),
		logger.Error(err),
		logger.HTTPRequest(r.Method, r.URL.Path, http.StatusInternalServerError),
	)
	return handler.Message(handler.ErrInternalServerError.Code, handler.ErrInternalServerError.Message)
}
