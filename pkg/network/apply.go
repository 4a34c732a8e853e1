package network

import (
	"fmt"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// ApplyTransaction runs the full pipeline for one exchange: viability,
// basis adjustment, tax liability, then ownership transfer. The input
// network is never mutated; on success the returned network is a new
// state, on failure the input is returned unchanged alongside the
// typed error.
func ApplyTransaction(n *Network, tx types.Transaction) (*Network, error) {
	if err := tx.Validate(); err != nil {
		return n, err
	}
	if err := n.checkViable(tx.From, tx.GoodFrom); err != nil {
		return n, err
	}
	if err := n.checkViable(tx.To, tx.GoodTo); err != nil {
		return n, err
	}
	if err := n.checkReceivable(tx.To, tx.GoodFrom); err != nil {
		return n, err
	}
	if err := n.checkReceivable(tx.From, tx.GoodTo); err != nil {
		return n, err
	}

	// Tax and basis must see the pre-transfer state, and a failure at
	// any point must leave the caller's network untouched, so the whole
	// pipeline runs on a clone.
	next := n.Clone()

	if err := next.maybeAdjustBasis(tx); err != nil {
		return n, err
	}
	if _, err := next.ComputeTax(tx.From, tx.GoodFrom); err != nil {
		return n, err
	}
	if _, err := next.ComputeTax(tx.To, tx.GoodTo); err != nil {
		return n, err
	}
	if err := next.adjustOwnership(tx.From, tx.To, tx.GoodFrom); err != nil {
		return n, err
	}
	if err := next.adjustOwnership(tx.To, tx.From, tx.GoodTo); err != nil {
		return n, err
	}
	return next, nil
}

// checkViable verifies that the entity actually holds the good it is
// giving: the asset among its direct assets, the partnership interest as
// an outgoing edge, or a sufficient cash balance. Checked before any
// mutation.
func (n *Network) checkViable(name string, good types.Good) error {
	entity, err := n.Entity(name)
	if err != nil {
		return err
	}

	switch good.Kind {
	case types.GoodAsset:
		asset, err := n.AssetByName(good.Asset)
		if err != nil {
			return err
		}
		if !entity.HoldsAsset(asset.AssetID) {
			return fmt.Errorf("%s does not own %s: %w", name, good, types.ErrInsufficientGood)
		}
	case types.GoodPartnership:
		if _, err := n.Entity(good.Partner); err != nil {
			return err
		}
		if _, ok := n.edgeBetween(name, good.Partner); !ok {
			return fmt.Errorf("%s does not hold %s: %w", name, good, types.ErrInsufficientGood)
		}
	case types.GoodCash:
		if entity.CashBalance < good.Cash {
			return fmt.Errorf("%s cannot pay %s: %w", name, good, types.ErrInsufficientCash)
		}
	}
	return nil
}

// checkReceivable rejects transfers that would violate graph invariants
// on the receiving side: at most one edge per ordered entity pair, and
// no entity holding an interest in itself.
func (n *Network) checkReceivable(receiver string, good types.Good) error {
	if good.Kind != types.GoodPartnership {
		return nil
	}
	if receiver == good.Partner {
		return fmt.Errorf("%s receiving %s: %w", receiver, good, types.ErrSelfPartnership)
	}
	if _, ok := n.edgeBetween(receiver, good.Partner); ok {
		return fmt.Errorf("%s already holds %s: %w", receiver, good, types.ErrDuplicateEdge)
	}
	return nil
}
