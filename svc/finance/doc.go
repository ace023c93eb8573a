// Package finance stores a user's income and expense transactions and
// savings goals.
//
// Every record belongs to exactly one user; reads never cross owners. Input
// is validated with pkg/validator and rejected as validator.ValidationErrors.
package finance
