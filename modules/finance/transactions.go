package finance

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lightsave/handler"
	"github.com/dmitrymomot/lightsave/pkg/jwt"
	"github.com/dmitrymomot/lightsave/pkg/logger"
	financesvc "github.com/dmitrymomot/lightsave/svc/finance"
)

// TransactionService serves one kind of transaction, income or expense.
type TransactionService struct {
	records Records
	kind    financesvc.Kind
	logger  *slog.Logger
}

func NewTransactionService(records Records, kind financesvc.Kind, log *slog.Logger) *TransactionService {
	if !kind.Valid() {
		panic("finance: invalid transaction kind " + string(kind))
	}
	if log == nil {
		log = logger.Discard()
	}
	return &TransactionService{records: records, kind: kind, logger: log}
}

func (s *TransactionService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.list))
	r.Post("/", handler.Wrap(s.create,
		handler.WithBinder[handler.Context, TransactionRequest](bodyBinder()),
		handler.WithErrorHandler[handler.Context, TransactionRequest](handler.NewErrorHandler[handler.Context](s.logger)),
	))

	return r
}

type TransactionRequest struct {
	Amount   float64    `json:"amount"`
	Category string     `json:"category"`
	Note     string     `json:"note"`
	Date     *time.Time `json:"date"`
}

func (s *TransactionService) create(ctx handler.Context, req TransactionRequest) handler.Response {
	tx, err := s.records.CreateTransaction(ctx, jwt.UserID(ctx), s.kind, financesvc.TransactionInput{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		Date:     req.Date,
	})
	if err != nil {
		return failure(ctx, s.logger, "create "+string(s.kind), err)
	}

	message := "Income added"
	if s.kind == financesvc.KindExpense {
		message = "Expense added"
	}
	return handler.JSON(map[string]any{
		"message":      message,
		string(s.kind): tx,
	}, handler.WithJSONStatus(http.StatusCreated))
}

func (s *TransactionService) list(ctx handler.Context, _ struct{}) handler.Response {
	items, err := s.records.ListTransactions(ctx, jwt.UserID(ctx), s.kind)
	if err != nil {
		return failure(ctx, s.logger, "list "+string(s.kind), err)
	}
	return handler.JSON(listResponse[financesvc.Transaction]{Items: items})
}
