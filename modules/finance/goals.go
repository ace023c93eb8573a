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

type GoalService struct {
	records Records
	logger  *slog.Logger
}

func NewGoalService(records Records, log *slog.Logger) *GoalService {
	if log == nil {
		log = logger.Discard()
	}
	return &GoalService{records: records, logger: log}
}

func (s *GoalService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.list))
	r.Post("/", handler.Wrap(s.create,
		handler.WithBinder[handler.Context, GoalRequest](bodyBinder()),
		handler.WithErrorHandler[handler.Context, GoalRequest](handler.NewErrorHandler[handler.Context](s.logger)),
	))

	return r
}

type GoalRequest struct {
	Title        string     `json:"title"`
	TargetAmount float64    `json:"targetAmount"`
	SavedAmount  float64    `json:"savedAmount"`
	Deadline     *time.Time `json:"deadline"`
}

func (s *GoalService) create(ctx handler.Context, req GoalRequest) handler.Response {
	goal, err := s.records.CreateGoal(ctx, jwt.UserID(ctx), financesvc.GoalInput{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return failure(ctx, s.logger, "create goal", err)
	}

	return handler.JSON(map[string]any{
		"message": "Goal created",
		"goal":    goal,
	}, handler.WithJSONStatus(http.StatusCreated))
}

func (s *GoalService) list(ctx handler.Context, _ struct{}) handler.Response {
	items, err := s.records.ListGoals(ctx, jwt.UserID(ctx))
	if err != nil {
		return failure(ctx, s.logger, "list goals", err)
	}
	return handler.JSON(listResponse[financesvc.Goal]{Items: items})
}
