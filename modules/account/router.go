package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
type RouterOptions struct {
	Password Mountable
}

// Router creates the account module router. It is meant to be mounted under
// /auth:
//
//	r.Mount("/auth", account.Router(account.RouterOptions{
//	    Password: account.NewPasswordService(authenticator, log),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Password != nil {
		r.Mount("/", opts.Password.Handle())
	}

	return r
}
