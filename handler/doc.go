// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request value that has already been
// decoded by the configured binder, and returns a Response:
//
//	type loginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func login(ctx handler.Context, req loginRequest) handler.Response {
//		return handler.JSON(map[string]string{"token": token}, handler.WithJSONStatus(http.StatusOK))
//	}
//
//	r.Post("/login", handler.Wrap(login, handler.WithBinder[handler.Context, loginRequest](binder.JSON())))
//
// Binding and rendering failures go to the ErrorHandler. The default one
// answers with {"message": "..."} and the status of an HTTPError, or 500 for
// anything else. NewErrorHandler additionally logs failures.
package handler
