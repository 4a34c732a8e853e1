package types

// Asset types. Annuity assets are excluded from tax computation at
// every tier.
const (
	AssetMaterial = "material"
	AssetAnnuity  = "annuity"
)

// validAssetTypes is the set of recognized asset type values.
var validAssetTypes = map[string]bool{
	AssetMaterial: true,
	AssetAnnuity:  true,
}

// IsValidAssetType reports whether the given string is a recognized
// asset type.
func IsValidAssetType(t string) bool {
	return validAssetTypes[t]
}

// Asset is a directly owned asset. AssetID is an opaque UUID v7 assigned
// at network initialization and is the identity key for all upstream
// matching; Name is display-only but unique across the network.
//
// Assets are immutable after creation except for the basis step-up
// recorded when the asset is sold.
type Asset struct {
	AssetID string  // UUID v7, generated on creation.
	Name    string  // Unique human-readable name (required, non-empty).
	Type    string  // One of the Asset type constants.
	Basis   float64 // Tax basis.
	FMV     float64 // Fair market value; defaults to Basis when unset.
}

// BuiltInLoss returns the asset's built-in loss (basis minus FMV).
// A negative result means the asset carries a gain.
func (a *Asset) BuiltInLoss() float64 {
	return a.Basis - a.FMV
}

// PartnershipAsset is a fractional view of an underlying asset held
// through a partnership tier. AssetID references the underlying Asset;
// Share is the cumulative fractional interest relative to that asset,
// so FMV derives as underlying FMV times Share. InsideBasis is tracked
// independently because Section 754/743 adjustments move it without
// touching the underlying asset.
type PartnershipAsset struct {
	AssetID     string  // Identity of the underlying asset.
	Share       float64 // Cumulative share in (0, 1].
	InsideBasis float64 // Inside basis for this tier.
}

// Scaled returns a copy of the partnership asset as seen one tier up
// through an edge with the given share.
func (pa PartnershipAsset) Scaled(share float64) PartnershipAsset {
	return PartnershipAsset{
		AssetID:     pa.AssetID,
		Share:       pa.Share * share,
		InsideBasis: pa.InsideBasis * share,
	}
}

// PartnershipEdge is a directed ownership edge: Upstream owns Share of
// Downstream. The network owns the edge set; entities hold only their
// per-downstream asset ledgers.
type PartnershipEdge struct {
	Upstream   string
	Downstream string
	Share      float64
}
