// Package jwt issues and verifies HMAC-SHA256 signed access tokens.
//
// Tokens carry the account identifier and role next to the registered claims
// (iat, exp, iss, sub, jti). Parsing accepts HS256 only and requires an
// expiration claim.
//
//	svc, err := jwt.New(cfg.Secret, jwt.WithTTL(24*time.Hour))
//	token, err := svc.Issue(userID, "USER")
//	claims, err := svc.Parse(token)
//
// Middleware extracts a bearer token from the Authorization header, verifies
// it and stores the claims in the request context. Requests without a valid
// token receive 401 with {"message":"Unauthorized"}.
package jwt
