package types

import "fmt"

// Good kinds. A transaction side is a direct asset, a partnership
// interest, or a cash amount.
const (
	GoodAsset       = "asset"
	GoodPartnership = "partnership"
	GoodCash        = "cash"
)

// validGoodKinds is the set of recognized good kinds.
var validGoodKinds = map[string]bool{
	GoodAsset:       true,
	GoodPartnership: true,
	GoodCash:        true,
}

// Good names one side of an exchange. Exactly one of the kind-specific
// fields is meaningful: Asset holds an asset name, Partner holds the
// downstream entity name of a partnership interest, Cash holds an amount.
type Good struct {
	Kind    string
	Asset   string
	Partner string
	Cash    float64
}

// AssetGood returns a good naming a direct asset.
func AssetGood(name string) Good {
	return Good{Kind: GoodAsset, Asset: name}
}

// PartnershipGood returns a good naming a partnership interest in the
// given downstream entity.
func PartnershipGood(downstream string) Good {
	return Good{Kind: GoodPartnership, Partner: downstream}
}

// CashGood returns a good for a cash amount.
func CashGood(amount float64) Good {
	return Good{Kind: GoodCash, Cash: amount}
}

// Validate checks that the good is well-formed.
// Returns ErrInvalidGood describing the violation.
func (g Good) Validate() error {
	if !validGoodKinds[g.Kind] {
		return fmt.Errorf("kind %q: %w", g.Kind, ErrInvalidGood)
	}
	switch g.Kind {
	case GoodAsset:
		if g.Asset == "" {
			return fmt.Errorf("asset good has no asset name: %w", ErrInvalidGood)
		}
	case GoodPartnership:
		if g.Partner == "" {
			return fmt.Errorf("partnership good has no partner name: %w", ErrInvalidGood)
		}
	case GoodCash:
		if g.Cash < 0 {
			return fmt.Errorf("cash amount %v is negative: %w", g.Cash, ErrInvalidGood)
		}
	}
	return nil
}

// String returns a short human-readable description of the good for
// error messages and CLI output.
func (g Good) String() string {
	switch g.Kind {
	case GoodAsset:
		return fmt.Sprintf("asset %q", g.Asset)
	case GoodPartnership:
		return fmt.Sprintf("partnership interest in %q", g.Partner)
	case GoodCash:
		return fmt.Sprintf("cash %v", g.Cash)
	default:
		return fmt.Sprintf("good(%s)", g.Kind)
	}
}
