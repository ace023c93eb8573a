// Package account exposes registration and login over HTTP.
//
//	POST /auth/register  {firstname, lastname, email, password[, confirmPassword]}
//	POST /auth/login     {email, password}
//
// Bodies may be JSON or application/x-www-form-urlencoded with the same
// field names. Bodies that cannot be decoded are treated as empty input, so clients get
// the same 400 message as for missing fields.
package account
