package engine

import (
	"sort"

	"github.com/jbradford55/StockTradeProj/models"
)

// TransactionLog is the append-only, insertion-ordered history of every
// transaction, synthetic fills included. Entries are immutable once appended.
type TransactionLog struct {
	entries []*models.Transaction
}

// NewTransactionLog creates an empty log
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{
		entries: make([]*models.Transaction, 0),
	}
}

// Append records a transaction at the end of the log
func (tl *TransactionLog) Append(tx *models.Transaction) {
	tl.entries = append(tl.entries, tx)
}

// Len returns the number of recorded transactions
func (tl *TransactionLog) Len() int {
	return len(tl.entries)
}

// All returns a copy of the full log in insertion order
func (tl *TransactionLog) All() []models.Transaction {
	out := make([]models.Transaction, 0, len(tl.entries))
	for _, tx := range tl.entries {
		out = append(out, *tx)
	}
	return out
}

// Recent returns at most n transactions ordered by OccurredAt descending.
// Clock-resolution ties are broken by insertion order, most recent first:
// the slice starts in reverse insertion order and the sort is stable.
func (tl *TransactionLog) Recent(n int) []models.Transaction {
	if n < 0 {
		n = 0
	}

	out := make([]models.Transaction, 0, len(tl.entries))
	for i := len(tl.entries) - 1; i >= 0; i-- {
		out = append(out, *tl.entries[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
