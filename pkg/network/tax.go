package network

import (
	"fmt"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// ComputeTax computes the tax liability arising from the given entity
// selling the given good, attributes it recursively to every upstream
// partner, and accumulates the amounts into the network's tax records.
// The returned map holds this event's contribution per entity.
//
// Annuity assets are excluded at every tier. A cash good has no tax
// consequence.
func (n *Network) ComputeTax(seller string, good types.Good) (map[string]float64, error) {
	entity, err := n.Entity(seller)
	if err != nil {
		return nil, err
	}

	liability := make(map[string]float64)

	switch good.Kind {
	case types.GoodCash:
		// No tax consequence.

	case types.GoodAsset:
		asset, err := n.AssetByName(good.Asset)
		if err != nil {
			return nil, err
		}
		if asset.Type == types.AssetAnnuity {
			break
		}
		gain := asset.FMV - asset.Basis
		liability[seller] += n.retainedShare(seller) * gain
		path := map[string]bool{seller: true}
		if err := n.attributeAssetTax(seller, asset.AssetID, liability, path); err != nil {
			return nil, err
		}

	case types.GoodPartnership:
		fmvSum, basisSum, portfolio := n.portfolioTotals(entity.Ledger(good.Partner))
		liability[seller] += n.retainedShare(seller) * (fmvSum - basisSum)
		path := map[string]bool{seller: true}
		if err := n.attributePortfolioTax(seller, portfolio, liability, path); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("kind %q: %w", good.Kind, types.ErrInvalidGood)
	}

	for name, amount := range liability {
		n.recordTax(name, amount)
	}
	return liability, nil
}

// attributeAssetTax walks the upstream owners of the selling entity and
// adds each one's share-weighted slice of the gain, taken from its own
// mirrored view of the asset (inside basis, not the underlying basis, so
// prior Section 754 adjustments are honored). Each upstream path is
// independent and additive; a path revisiting an entity is a cycle.
func (n *Network) attributeAssetTax(entity, assetID string, liability map[string]float64, path map[string]bool) error {
	for _, e := range n.upstreamEdges(entity) {
		if path[e.Upstream] {
			return fmt.Errorf("at entity %q: %w", e.Upstream, types.ErrCyclicOwnership)
		}
		matched := false
		for _, pa := range n.entities[e.Upstream].Ledger(entity) {
			if pa.AssetID != assetID {
				continue
			}
			matched = true
			liability[e.Upstream] += n.retainedShare(e.Upstream) * (n.partnershipFMV(pa) - pa.InsideBasis)
		}
		if !matched {
			continue
		}
		path[e.Upstream] = true
		if err := n.attributeAssetTax(e.Upstream, assetID, liability, path); err != nil {
			return err
		}
		delete(path, e.Upstream)
	}
	return nil
}

// attributePortfolioTax is the portfolio analogue of attributeAssetTax:
// at each upstream tier the gain is aggregated over that tier's mirrors
// of the sold interest's assets, then attribution recurses further up.
func (n *Network) attributePortfolioTax(entity string, portfolio map[string]bool, liability map[string]float64, path map[string]bool) error {
	for _, e := range n.upstreamEdges(entity) {
		if path[e.Upstream] {
			return fmt.Errorf("at entity %q: %w", e.Upstream, types.ErrCyclicOwnership)
		}
		var fmvSum, basisSum float64
		matched := false
		for _, pa := range n.entities[e.Upstream].Ledger(entity) {
			if !portfolio[pa.AssetID] {
				continue
			}
			matched = true
			fmvSum += n.partnershipFMV(pa)
			basisSum += pa.InsideBasis
		}
		if !matched {
			continue
		}
		liability[e.Upstream] += n.retainedShare(e.Upstream) * (fmvSum - basisSum)
		path[e.Upstream] = true
		if err := n.attributePortfolioTax(e.Upstream, portfolio, liability, path); err != nil {
			return err
		}
		delete(path, e.Upstream)
	}
	return nil
}

// portfolioTotals sums internal FMV and inside basis over the
// non-annuity assets of a ledger and returns the set of underlying
// asset IDs considered.
func (n *Network) portfolioTotals(ledger []types.PartnershipAsset) (fmvSum, basisSum float64, portfolio map[string]bool) {
	portfolio = make(map[string]bool, len(ledger))
	for _, pa := range ledger {
		if n.assetType(pa.AssetID) == types.AssetAnnuity {
			continue
		}
		portfolio[pa.AssetID] = true
		fmvSum += n.partnershipFMV(pa)
		basisSum += pa.InsideBasis
	}
	return fmvSum, basisSum, portfolio
}
