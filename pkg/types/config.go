package types

import "fmt"

// EntityConfig seeds one entity.
type EntityConfig struct {
	Name string  `json:"name" yaml:"name"`
	Cash float64 `json:"cash" yaml:"cash"`
}

// AssetConfig seeds one directly owned asset. FMV defaults to Basis
// when not explicitly set.
type AssetConfig struct {
	Owner string   `json:"owner" yaml:"owner"`
	Name  string   `json:"name" yaml:"name"`
	Type  string   `json:"type" yaml:"type"`
	Basis float64  `json:"basis" yaml:"basis"`
	FMV   *float64 `json:"fmv,omitempty" yaml:"fmv,omitempty"`
}

// EdgeConfig seeds one partnership edge: Upstream owns Share of
// Downstream.
type EdgeConfig struct {
	Upstream   string  `json:"upstream" yaml:"upstream"`
	Downstream string  `json:"downstream" yaml:"downstream"`
	Share      float64 `json:"share" yaml:"share"`
}

// Config enumerates the entities, assets, and partnership edges used to
// initialize a network. Entities, assets, and edges are created once;
// partnership-asset ledgers are derived from them.
type Config struct {
	Entities     []EntityConfig `json:"entities" yaml:"entities"`
	Assets       []AssetConfig  `json:"assets" yaml:"assets"`
	Partnerships []EdgeConfig   `json:"partnerships" yaml:"partnerships"`
}

// Validate checks the config invariants: unique entity names, globally
// unique asset names, known owners and edge endpoints, recognized asset
// types, shares in (0, 1], and at most one edge per ordered entity pair.
func (c Config) Validate() error {
	entities := make(map[string]bool, len(c.Entities))
	for _, e := range c.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity with empty name: %w", ErrInvalidName)
		}
		if entities[e.Name] {
			return fmt.Errorf("entity %q: %w", e.Name, ErrDuplicateEntityName)
		}
		entities[e.Name] = true
	}

	assets := make(map[string]bool, len(c.Assets))
	for _, a := range c.Assets {
		if a.Name == "" {
			return fmt.Errorf("asset with empty name: %w", ErrInvalidName)
		}
		if assets[a.Name] {
			return fmt.Errorf("asset %q: %w", a.Name, ErrDuplicateAssetName)
		}
		assets[a.Name] = true
		if !entities[a.Owner] {
			return fmt.Errorf("asset %q owner %q: %w", a.Name, a.Owner, ErrUnknownEntity)
		}
		if !IsValidAssetType(a.Type) {
			return fmt.Errorf("asset %q type %q: %w", a.Name, a.Type, ErrInvalidAssetType)
		}
	}

	edges := make(map[[2]string]bool, len(c.Partnerships))
	for _, p := range c.Partnerships {
		if !entities[p.Upstream] {
			return fmt.Errorf("edge upstream %q: %w", p.Upstream, ErrUnknownEntity)
		}
		if !entities[p.Downstream] {
			return fmt.Errorf("edge downstream %q: %w", p.Downstream, ErrUnknownEntity)
		}
		if p.Upstream == p.Downstream {
			return fmt.Errorf("entity %q: %w", p.Upstream, ErrSelfPartnership)
		}
		if p.Share <= 0 || p.Share > 1 {
			return fmt.Errorf("edge %s->%s share %v: %w", p.Upstream, p.Downstream, p.Share, ErrInvalidShare)
		}
		key := [2]string{p.Upstream, p.Downstream}
		if edges[key] {
			return fmt.Errorf("edge %s->%s: %w", p.Upstream, p.Downstream, ErrDuplicateEdge)
		}
		edges[key] = true
	}

	return nil
}
