package types

import "fmt"

// Transaction is a proposed exchange: From gives GoodFrom to To, and To
// gives GoodTo back to From. Transactions are ephemeral; they are
// consumed by the apply pipeline and never retained.
type Transaction struct {
	From       string // Entity giving GoodFrom.
	To         string // Entity giving GoodTo.
	GoodFrom   Good
	GoodTo     Good
	Section754 bool // Section 754 election in effect for this exchange.
}

// Validate checks that the transaction is structurally well-formed.
// Entity and asset existence is checked against the network during the
// viability step, not here.
func (t Transaction) Validate() error {
	if t.From == "" || t.To == "" {
		return fmt.Errorf("transaction entities must be named: %w", ErrInvalidGood)
	}
	if t.From == t.To {
		return fmt.Errorf("entity %q cannot transact with itself: %w", t.From, ErrInvalidGood)
	}
	if err := t.GoodFrom.Validate(); err != nil {
		return fmt.Errorf("good from %s: %w", t.From, err)
	}
	if err := t.GoodTo.Validate(); err != nil {
		return fmt.Errorf("good from %s: %w", t.To, err)
	}
	return nil
}

// String returns a one-line description of the exchange.
func (t Transaction) String() string {
	return fmt.Sprintf("%s gives %s to %s for %s", t.From, t.GoodFrom, t.To, t.GoodTo)
}
