// Package payments holds the club's side of the external payment
// collaborator: something that can move value to an account and either
// lands the full amount or fails.
package payments

import (
	"context"
	"errors"
	"sync"
)

var ErrNegativeAmount = errors.New("transfer amount must not be negative")

// Ledger is an in-memory account book. It backs refunds when no external
// payment processor is wired in, and lets tests assert exact balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]int64)}
}

// Transfer credits the full amount to the account or fails without effect.
func (l *Ledger) Transfer(_ context.Context, to string, amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[to] += amount
	return nil
}

// Balance returns the credited total for an account.
func (l *Ledger) Balance(account string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}
