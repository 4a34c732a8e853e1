package network

import (
	"fmt"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// adjustOwnership transfers a good from one entity to another and
// propagates the change through every upstream tier. It runs after the
// basis and tax steps so those see the pre-transfer state.
func (n *Network) adjustOwnership(from, to string, good types.Good) error {
	switch good.Kind {
	case types.GoodCash:
		giver := n.entities[from]
		if err := giver.Debit(good.Cash); err != nil {
			return err
		}
		n.entities[to].Credit(good.Cash)
		// Cash is not itself partnered; no propagation.
		return nil

	case types.GoodAsset:
		asset, err := n.AssetByName(good.Asset)
		if err != nil {
			return err
		}
		// Gain is realized at transfer: basis steps up to FMV before the
		// receiver's tiers mirror the asset.
		asset.Basis = asset.FMV

		n.entities[to].AddDirectAsset(asset.AssetID)
		seed := types.PartnershipAsset{AssetID: asset.AssetID, Share: 1, InsideBasis: asset.Basis}
		if err := n.addMirrors(to, []types.PartnershipAsset{seed}, map[string]bool{}); err != nil {
			return err
		}

		if err := n.entities[from].RemoveDirectAsset(asset.AssetID); err != nil {
			return err
		}
		return n.removeMirrors(from, map[string]int{asset.AssetID: 1}, map[string]bool{})

	case types.GoodPartnership:
		giver := n.entities[from]
		ledger := append([]types.PartnershipAsset(nil), giver.Ledger(good.Partner)...)

		if err := n.moveEdge(from, to, good.Partner); err != nil {
			return err
		}
		n.entities[to].SetLedger(good.Partner, ledger)
		if err := n.addMirrors(to, ledger, map[string]bool{}); err != nil {
			return err
		}

		if err := n.removeMirrors(from, countByAsset(ledger), map[string]bool{}); err != nil {
			return err
		}
		giver.DropLedger(good.Partner)
		return nil

	default:
		return fmt.Errorf("kind %q: %w", good.Kind, types.ErrInvalidGood)
	}
}

// moveEdge reassigns the partnership edge into downstream from one
// upstream owner to another, preserving the share.
func (n *Network) moveEdge(from, to, downstream string) error {
	for i, e := range n.edges {
		if e.Upstream == from && e.Downstream == downstream {
			n.edges[i].Upstream = to
			return nil
		}
	}
	return fmt.Errorf("%s: partnership interest in %q: %w", from, downstream, types.ErrInsufficientGood)
}

// addMirrors propagates newly held assets to every upstream owner of the
// given entity: each owner appends the assets scaled by its edge share to
// its ledger for this entity, then the same happens one tier further up.
// An entity revisited on the same path means the edge set has a cycle.
func (n *Network) addMirrors(entity string, assets []types.PartnershipAsset, path map[string]bool) error {
	if len(assets) == 0 {
		return nil
	}
	if path[entity] {
		return fmt.Errorf("at entity %q: %w", entity, types.ErrCyclicOwnership)
	}
	path[entity] = true
	defer delete(path, entity)

	for _, e := range n.upstreamEdges(entity) {
		scaled := make([]types.PartnershipAsset, len(assets))
		for i, pa := range assets {
			scaled[i] = pa.Scaled(e.Share)
		}
		n.entities[e.Upstream].AppendHoldings(entity, scaled...)
		if err := n.addMirrors(e.Upstream, scaled, path); err != nil {
			return err
		}
	}
	return nil
}

// removeMirrors deletes the upstream images of removed assets, matched
// by underlying asset identity. Counts bound how many mirrors may be
// deleted per asset at each tier, so an interest in the same underlying
// asset held through an unrelated path survives. Recursion continues
// with what was actually removed at each owner.
func (n *Network) removeMirrors(entity string, counts map[string]int, path map[string]bool) error {
	if len(counts) == 0 {
		return nil
	}
	if path[entity] {
		return fmt.Errorf("at entity %q: %w", entity, types.ErrCyclicOwnership)
	}
	path[entity] = true
	defer delete(path, entity)

	for _, e := range n.upstreamEdges(entity) {
		removed := n.entities[e.Upstream].RemoveHoldings(entity, counts)
		if len(removed) == 0 {
			continue
		}
		if err := n.removeMirrors(e.Upstream, removed, path); err != nil {
			return err
		}
	}
	return nil
}

// countByAsset tallies ledger entries by underlying asset identity.
func countByAsset(ledger []types.PartnershipAsset) map[string]int {
	counts := make(map[string]int, len(ledger))
	for _, pa := range ledger {
		counts[pa.AssetID]++
	}
	return counts
}
