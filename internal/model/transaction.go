// Package model defines the core entity types shared across the application.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents a single recorded income or expense event.
// Date is stored as epoch milliseconds, matching both the database column
// and the backup wire format.
type Transaction struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Date      int64   `json:"date"`
	IsExpense bool    `json:"isExpense"`
}

// NewTransaction creates a transaction with a fresh id.
func NewTransaction(title string, amount float64, category string, date time.Time, isExpense bool) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Title:     title,
		Amount:    amount,
		Category:  category,
		Date:      date.UnixMilli(),
		IsExpense: isExpense,
	}
}

// Time returns the transaction date as a time.Time in the local zone.
func (t *Transaction) Time() time.Time {
	return time.UnixMilli(t.Date)
}
