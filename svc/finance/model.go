package finance

import "time"

// Kind separates income from expenses.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      Kind      `json:"kind"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Goal is a savings target.
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	TargetAmount float64    `json:"targetAmount"`
	SavedAmount  float64    `json:"savedAmount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TransactionInput is the client-supplied part of a transaction. A nil Date
// means now.
type TransactionInput struct {
	Amount   float64
	Category string
	Note     string
	Date     *time.Time
}

// GoalInput is the client-supplied part of a goal.
type GoalInput struct {
	Title        string
	TargetAmount float64
	SavedAmount  float64
	Deadline     *time.Time
}
