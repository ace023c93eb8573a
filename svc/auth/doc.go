// Package auth implements account registration and login.
//
// The Authenticator composes three collaborators, all passed in at
// construction:
//
//   - CredentialStore persists accounts keyed by email. Implementations must
//     enforce email uniqueness themselves and report violations as
//     ErrEmailTaken; the Authenticator's pre-check is only an optimization.
//   - Hasher turns passwords into salted bcrypt digests and verifies attempts.
//     BcryptHasher runs both on a bounded worker pool.
//   - TokenIssuer signs bearer tokens carrying the account id and role.
//
// Emails are compared case-insensitively: they are trimmed and lowercased
// before every lookup and write.
//
// Failures are reported with four error types that map directly onto HTTP
// statuses: *ValidationError (400), *ConflictError (409), *AuthError (401)
// and *ServerError (500). Use errors.As to tell them apart.
package auth
