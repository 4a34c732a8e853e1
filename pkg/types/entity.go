package types

import "fmt"

// Entity owns direct assets, fractional partnership interests, and cash.
// DirectAssets holds asset IDs; Holdings maps a downstream entity name to
// the ordered ledger of partnership assets visible through that edge.
//
// Entities expose only the mutation primitives used by the network
// engines; the Network aggregate owns all entities and keeps the ledgers
// consistent with the edge set.
type Entity struct {
	Name         string
	CashBalance  float64
	DirectAssets []string
	Holdings     map[string][]PartnershipAsset
}

// NewEntity creates an entity with the given name and starting cash.
func NewEntity(name string, cash float64) *Entity {
	return &Entity{
		Name:        name,
		CashBalance: cash,
		Holdings:    make(map[string][]PartnershipAsset),
	}
}

// HoldsAsset reports whether the entity directly owns the asset.
func (e *Entity) HoldsAsset(assetID string) bool {
	for _, id := range e.DirectAssets {
		if id == assetID {
			return true
		}
	}
	return false
}

// AddDirectAsset records direct ownership of an asset.
func (e *Entity) AddDirectAsset(assetID string) {
	e.DirectAssets = append(e.DirectAssets, assetID)
}

// RemoveDirectAsset removes direct ownership of an asset.
// Returns ErrInsufficientGood if the entity does not hold it.
func (e *Entity) RemoveDirectAsset(assetID string) error {
	for i, id := range e.DirectAssets {
		if id == assetID {
			e.DirectAssets = append(e.DirectAssets[:i], e.DirectAssets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: asset %s: %w", e.Name, assetID, ErrInsufficientGood)
}

// Credit adds the amount to the entity's cash balance.
func (e *Entity) Credit(amount float64) {
	e.CashBalance += amount
}

// Debit subtracts the amount from the entity's cash balance.
// Returns ErrInsufficientCash if the balance would go negative.
func (e *Entity) Debit(amount float64) error {
	if e.CashBalance < amount {
		return fmt.Errorf("%s: need %v, have %v: %w", e.Name, amount, e.CashBalance, ErrInsufficientCash)
	}
	e.CashBalance -= amount
	return nil
}

// Ledger returns the partnership-asset ledger for the given downstream
// entity, or nil if no tier exists.
func (e *Entity) Ledger(downstream string) []PartnershipAsset {
	return e.Holdings[downstream]
}

// SetLedger replaces the ledger for the given downstream entity.
func (e *Entity) SetLedger(downstream string, ledger []PartnershipAsset) {
	e.Holdings[downstream] = ledger
}

// AppendHoldings appends partnership assets to the ledger for the given
// downstream entity.
func (e *Entity) AppendHoldings(downstream string, assets ...PartnershipAsset) {
	e.Holdings[downstream] = append(e.Holdings[downstream], assets...)
}

// DropLedger removes the entire tier for the given downstream entity.
func (e *Entity) DropLedger(downstream string) {
	delete(e.Holdings, downstream)
}

// RemoveHoldings removes mirrored partnership assets from the ledger for
// the given downstream entity, matched by underlying asset identity. At
// most counts[id] entries are removed per asset ID, so a second interest
// in the same underlying asset held through another path survives.
// Returns the per-asset counts actually removed.
func (e *Entity) RemoveHoldings(downstream string, counts map[string]int) map[string]int {
	ledger := e.Holdings[downstream]
	if len(ledger) == 0 {
		return nil
	}
	remaining := make(map[string]int, len(counts))
	for id, n := range counts {
		remaining[id] = n
	}
	removed := make(map[string]int)
	kept := ledger[:0]
	for _, pa := range ledger {
		if remaining[pa.AssetID] > 0 {
			remaining[pa.AssetID]--
			removed[pa.AssetID]++
			continue
		}
		kept = append(kept, pa)
	}
	e.Holdings[downstream] = kept
	return removed
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		Name:        e.Name,
		CashBalance: e.CashBalance,
		Holdings:    make(map[string][]PartnershipAsset, len(e.Holdings)),
	}
	if len(e.DirectAssets) > 0 {
		clone.DirectAssets = append([]string(nil), e.DirectAssets...)
	}
	for downstream, ledger := range e.Holdings {
		clone.Holdings[downstream] = append([]PartnershipAsset(nil), ledger...)
	}
	return clone
}
