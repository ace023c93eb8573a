// Package validator provides small declarative validation rules.
//
// A Rule couples a Check function with the ValidationError reported when the
// check fails. Apply evaluates rules in order and aggregates every failure
// into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.RequiredString("email", email),
//	    validator.ValidEmail("email", email),
//	    validator.MinLenString("password", password, 6),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Fields(), verrs.Get("email") ...
//	}
//
// Rules are plain values with no shared state and are safe for concurrent use.
package validator
