// Package finance mounts the income, expense and goal endpoints.
//
// Every route sits behind bearer-token authentication. Records are always
// read and written for the account named by the token's userId claim.
//
//	r.Mount("/", finance.Router(finance.RouterOptions{
//	    Tokens:  tokens,
//	    Income:  finance.NewTransactionService(records, finance.KindIncome, log),
//	    Expense: finance.NewTransactionService(records, finance.KindExpense, log),
//	    Goals:   finance.NewGoalService(records, log),
//	}))
//
// Endpoints:
//
//	GET|POST /income
//	GET|POST /expense
//	GET|POST /goals
package finance
