package network

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// Network is the root aggregate: it owns every entity and asset, the
// partnership edge set, and the cumulative per-entity tax records.
// Assets are keyed by opaque AssetID; display names resolve through a
// separate index.
type Network struct {
	entities   map[string]*types.Entity
	assets     map[string]*types.Asset
	assetNames map[string]string
	edges      []types.PartnershipEdge
	taxRecords map[string]float64
}

// InitializeNetwork builds a network from the seed configuration:
// entities with starting cash, directly owned assets (FMV defaulting to
// basis), and partnership edges. Every partnership-asset ledger is then
// derived tier by tier; a cycle in the edge set fails initialization
// with ErrCyclicOwnership.
func InitializeNetwork(cfg types.Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := &Network{
		entities:   make(map[string]*types.Entity, len(cfg.Entities)),
		assets:     make(map[string]*types.Asset, len(cfg.Assets)),
		assetNames: make(map[string]string, len(cfg.Assets)),
		taxRecords: make(map[string]float64, len(cfg.Entities)),
	}

	for _, ec := range cfg.Entities {
		n.entities[ec.Name] = types.NewEntity(ec.Name, ec.Cash)
		n.taxRecords[ec.Name] = 0
	}

	for _, ac := range cfg.Assets {
		fmv := ac.Basis
		if ac.FMV != nil {
			fmv = *ac.FMV
		}
		asset := &types.Asset{
			AssetID: newAssetID(),
			Name:    ac.Name,
			Type:    ac.Type,
			Basis:   ac.Basis,
			FMV:     fmv,
		}
		n.assets[asset.AssetID] = asset
		n.assetNames[asset.Name] = asset.AssetID
		n.entities[ac.Owner].AddDirectAsset(asset.AssetID)
	}

	n.edges = make([]types.PartnershipEdge, 0, len(cfg.Partnerships))
	for _, pc := range cfg.Partnerships {
		n.edges = append(n.edges, types.PartnershipEdge{
			Upstream:   pc.Upstream,
			Downstream: pc.Downstream,
			Share:      pc.Share,
		})
	}

	if err := n.seedLedgers(); err != nil {
		return nil, err
	}
	return n, nil
}

// newAssetID generates a UUID v7 asset identifier, falling back to v4 if
// v7 generation fails.
func newAssetID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// DFS colors for ledger seeding.
const (
	colorWhite = iota
	colorGray
	colorBlack
)

// seedLedgers derives every upstream ledger from the downstream state,
// deepest tiers first. An edge back into an entity still on the DFS path
// is a cycle and aborts with ErrCyclicOwnership.
func (n *Network) seedLedgers() error {
	state := make(map[string]int, len(n.entities))
	names := n.entityNames()
	for _, name := range names {
		if err := n.buildLedgers(name, state); err != nil {
			return err
		}
	}
	return nil
}

// buildLedgers fills in the given entity's ledgers for each of its
// downstream edges, recursing so downstream ledgers exist first.
func (n *Network) buildLedgers(name string, state map[string]int) error {
	switch state[name] {
	case colorBlack:
		return nil
	case colorGray:
		return fmt.Errorf("at entity %q: %w", name, types.ErrCyclicOwnership)
	}
	state[name] = colorGray

	owner := n.entities[name]
	for _, e := range n.downstreamEdges(name) {
		if err := n.buildLedgers(e.Downstream, state); err != nil {
			return err
		}
		owner.SetLedger(e.Downstream, n.visibleAssets(e.Downstream, e.Share))
	}

	state[name] = colorBlack
	return nil
}

// visibleAssets returns the partnership assets an owner with the given
// share sees in the downstream entity: its direct assets plus everything
// in its own ledgers, scaled.
func (n *Network) visibleAssets(downstream string, share float64) []types.PartnershipAsset {
	d := n.entities[downstream]
	ledger := make([]types.PartnershipAsset, 0, len(d.DirectAssets))
	for _, id := range d.DirectAssets {
		asset := n.assets[id]
		ledger = append(ledger, types.PartnershipAsset{
			AssetID:     id,
			Share:       share,
			InsideBasis: asset.Basis * share,
		})
	}
	for _, tier := range sortedKeys(d.Holdings) {
		for _, pa := range d.Holdings[tier] {
			ledger = append(ledger, pa.Scaled(share))
		}
	}
	return ledger
}

// Entity returns the entity with the given name.
// Returns ErrUnknownEntity if no such entity exists.
func (n *Network) Entity(name string) (*types.Entity, error) {
	e, ok := n.entities[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, types.ErrUnknownEntity)
	}
	return e, nil
}

// AssetByName returns the asset with the given display name.
// Returns ErrUnknownAsset if no such asset exists.
func (n *Network) AssetByName(name string) (*types.Asset, error) {
	id, ok := n.assetNames[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, types.ErrUnknownAsset)
	}
	return n.assets[id], nil
}

// AssetByID returns the asset with the given identity.
// Returns ErrUnknownAsset if no such asset exists.
func (n *Network) AssetByID(id string) (*types.Asset, error) {
	a, ok := n.assets[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, types.ErrUnknownAsset)
	}
	return a, nil
}

// EntityNames returns all entity names in sorted order.
func (n *Network) EntityNames() []string {
	return n.entityNames()
}

// Edges returns a copy of the partnership edge set.
func (n *Network) Edges() []types.PartnershipEdge {
	return append([]types.PartnershipEdge(nil), n.edges...)
}

// TaxRecords returns a copy of the cumulative per-entity tax records.
func (n *Network) TaxRecords() map[string]float64 {
	records := make(map[string]float64, len(n.taxRecords))
	for name, amount := range n.taxRecords {
		records[name] = amount
	}
	return records
}

// Clone returns a deep copy of the network. External drivers evaluating
// sequences in parallel clone once per goroutine.
func (n *Network) Clone() *Network {
	clone := &Network{
		entities:   make(map[string]*types.Entity, len(n.entities)),
		assets:     make(map[string]*types.Asset, len(n.assets)),
		assetNames: make(map[string]string, len(n.assetNames)),
		edges:      append([]types.PartnershipEdge(nil), n.edges...),
		taxRecords: make(map[string]float64, len(n.taxRecords)),
	}
	for name, e := range n.entities {
		clone.entities[name] = e.Clone()
	}
	for id, a := range n.assets {
		copied := *a
		clone.assets[id] = &copied
	}
	for name, id := range n.assetNames {
		clone.assetNames[name] = id
	}
	for name, amount := range n.taxRecords {
		clone.taxRecords[name] = amount
	}
	return clone
}

// upstreamEdges returns the edges whose downstream end is the given
// entity, i.e. its direct upstream owners.
func (n *Network) upstreamEdges(name string) []types.PartnershipEdge {
	var edges []types.PartnershipEdge
	for _, e := range n.edges {
		if e.Downstream == name {
			edges = append(edges, e)
		}
	}
	return edges
}

// downstreamEdges returns the edges whose upstream end is the given
// entity, i.e. the interests it holds.
func (n *Network) downstreamEdges(name string) []types.PartnershipEdge {
	var edges []types.PartnershipEdge
	for _, e := range n.edges {
		if e.Upstream == name {
			edges = append(edges, e)
		}
	}
	return edges
}

// edgeBetween returns the edge from upstream to downstream, if any.
func (n *Network) edgeBetween(upstream, downstream string) (types.PartnershipEdge, bool) {
	for _, e := range n.edges {
		if e.Upstream == upstream && e.Downstream == downstream {
			return e, true
		}
	}
	return types.PartnershipEdge{}, false
}

// retainedShare returns the fraction of the entity not owned by any
// upstream partner.
func (n *Network) retainedShare(name string) float64 {
	retained := 1.0
	for _, e := range n.upstreamEdges(name) {
		retained -= e.Share
	}
	return retained
}

// partnershipFMV derives a partnership asset's fair market value from
// the underlying asset.
func (n *Network) partnershipFMV(pa types.PartnershipAsset) float64 {
	return n.assets[pa.AssetID].FMV * pa.Share
}

// assetType returns the type of the underlying asset.
func (n *Network) assetType(assetID string) string {
	return n.assets[assetID].Type
}

// recordTax accumulates liability into the entity's tax record. Records
// are monotonic; there is no reset.
func (n *Network) recordTax(name string, amount float64) {
	n.taxRecords[name] += amount
}

func (n *Network) entityNames() []string {
	names := make([]string, 0, len(n.entities))
	for name := range n.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string][]types.PartnershipAsset) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
