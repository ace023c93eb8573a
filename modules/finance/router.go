package finance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lightsave/pkg/jwt"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the finance module.
type RouterOptions struct {
	// Tokens verifies bearer tokens. Required when any service is set.
	Tokens  *jwt.Service
	Income  Mountable
	Expense Mountable
	Goals   Mountable
}

// Router creates the finance module router.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	mounts := map[string]Mountable{
		"/income":  opts.Income,
		"/expense": opts.Expense,
		"/goals":   opts.Goals,
	}

	for pattern, svc := range mounts {
		if svc == nil {
			continue
		}
		if opts.Tokens == nil {
			panic("finance: token service is required")
		}
		// Inline middleware keeps unknown paths a 404 rather than a 401.
		r.With(jwt.Middleware(opts.Tokens)).Mount(pattern, svc.Handle())
	}

	return r
}
