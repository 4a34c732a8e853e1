package network

import (
	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// SubstantialLossThreshold is the statutory built-in-loss threshold.
// A loss must strictly exceed it to mandate a basis adjustment.
const SubstantialLossThreshold = 250_000.0

// maybeAdjustBasis applies the Section 754 / substantial built-in loss
// inside-basis adjustment when the transaction triggers it. For each
// transferred partnership interest, every asset's inside basis is
// stepped to the basis of the good given in exchange, and the changed
// tier is re-mirrored through all upstream owners. FMV never changes
// here.
func (n *Network) maybeAdjustBasis(tx types.Transaction) error {
	elected := tx.Section754 &&
		(tx.GoodFrom.Kind == types.GoodPartnership || tx.GoodTo.Kind == types.GoodPartnership)
	if !elected &&
		!n.substantialBuiltInLoss(tx.From, tx.GoodFrom) &&
		!n.substantialBuiltInLoss(tx.To, tx.GoodTo) {
		return nil
	}

	if tx.GoodFrom.Kind == types.GoodPartnership {
		if err := n.adjustTier(tx.From, tx.GoodFrom.Partner, n.exchangedBasis(tx.To, tx.GoodTo)); err != nil {
			return err
		}
	}
	if tx.GoodTo.Kind == types.GoodPartnership {
		if err := n.adjustTier(tx.To, tx.GoodTo.Partner, n.exchangedBasis(tx.From, tx.GoodFrom)); err != nil {
			return err
		}
	}
	return nil
}

// substantialBuiltInLoss reports whether transferring the good carries a
// built-in loss strictly greater than the threshold. For a direct asset
// the loss is basis minus FMV; for a partnership interest it aggregates
// inside basis minus FMV over the non-annuity assets of the tier.
func (n *Network) substantialBuiltInLoss(holder string, good types.Good) bool {
	var loss float64
	switch good.Kind {
	case types.GoodAsset:
		asset, err := n.AssetByName(good.Asset)
		if err != nil {
			return false
		}
		loss = asset.BuiltInLoss()
	case types.GoodPartnership:
		entity, err := n.Entity(holder)
		if err != nil {
			return false
		}
		for _, pa := range entity.Ledger(good.Partner) {
			if n.assetType(pa.AssetID) == types.AssetAnnuity {
				continue
			}
			loss += pa.InsideBasis - n.partnershipFMV(pa)
		}
	}
	return loss > SubstantialLossThreshold
}

// exchangedBasis returns the basis of the good given in exchange: the
// asset's basis, the cash amount, or the aggregate inside basis of an
// exchanged partnership interest.
func (n *Network) exchangedBasis(holder string, good types.Good) float64 {
	switch good.Kind {
	case types.GoodAsset:
		asset, err := n.AssetByName(good.Asset)
		if err != nil {
			return 0
		}
		return asset.Basis
	case types.GoodCash:
		return good.Cash
	case types.GoodPartnership:
		entity, err := n.Entity(holder)
		if err != nil {
			return 0
		}
		var sum float64
		for _, pa := range entity.Ledger(good.Partner) {
			sum += pa.InsideBasis
		}
		return sum
	}
	return 0
}

// adjustTier steps the inside basis of every asset in the holder's
// ledger for the given downstream entity to newBasis, one correction
// per asset, then re-propagates the tier upstream so every ancestor
// sees the adjusted values.
func (n *Network) adjustTier(holder, downstream string, newBasis float64) error {
	entity := n.entities[holder]
	ledger := entity.Ledger(downstream)
	if len(ledger) == 0 {
		return nil
	}

	old := append([]types.PartnershipAsset(nil), ledger...)
	for i := range ledger {
		ledger[i].InsideBasis += newBasis - ledger[i].InsideBasis
	}

	if err := n.removeMirrors(holder, countByAsset(old), map[string]bool{}); err != nil {
		return err
	}
	return n.addMirrors(holder, entity.Ledger(downstream), map[string]bool{})
}
