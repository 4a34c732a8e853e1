// Package scenario loads YAML scenario documents: a network seed plus a
// proposed transaction sequence, as produced by an external search
// driver or written by hand.
package scenario

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// GoodDoc is the YAML form of one side of an exchange.
type GoodDoc struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Asset   string  `json:"asset,omitempty" yaml:"asset,omitempty"`
	Partner string  `json:"partner,omitempty" yaml:"partner,omitempty"`
	Cash    float64 `json:"cash,omitempty" yaml:"cash,omitempty"`
}

// Good converts the document form to the engine's good.
func (g GoodDoc) Good() types.Good {
	return types.Good{Kind: g.Kind, Asset: g.Asset, Partner: g.Partner, Cash: g.Cash}
}

// TransactionDoc is the YAML form of one proposed exchange.
type TransactionDoc struct {
	From       string  `json:"from" yaml:"from"`
	To         string  `json:"to" yaml:"to"`
	Give       GoodDoc `json:"give" yaml:"give"`
	Receive    GoodDoc `json:"receive" yaml:"receive"`
	Section754 bool    `json:"section754,omitempty" yaml:"section754,omitempty"`
}

// Transaction converts the document form to the engine's transaction.
func (t TransactionDoc) Transaction() types.Transaction {
	return types.Transaction{
		From:       t.From,
		To:         t.To,
		GoodFrom:   t.Give.Good(),
		GoodTo:     t.Receive.Good(),
		Section754: t.Section754,
	}
}

// Document is a complete scenario: the network seed and the transaction
// sequence to evaluate against it.
type Document struct {
	Name         string               `json:"name" yaml:"name"`
	Entities     []types.EntityConfig `json:"entities" yaml:"entities"`
	Assets       []types.AssetConfig  `json:"assets,omitempty" yaml:"assets,omitempty"`
	Partnerships []types.EdgeConfig   `json:"partnerships,omitempty" yaml:"partnerships,omitempty"`
	Transactions []TransactionDoc     `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

// Parse decodes and validates a scenario document payload.
func Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("scenario: document is empty")
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("scenario: decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadFile reads a YAML scenario file from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the seed invariants and the structural validity of
// every proposed transaction. Whether an entity actually holds a good is
// decided by the engine at apply time, not here.
func (d Document) Validate() error {
	if err := d.Config().Validate(); err != nil {
		return fmt.Errorf("scenario: seed: %w", err)
	}
	for i, td := range d.Transactions {
		if err := td.Transaction().Validate(); err != nil {
			return fmt.Errorf("scenario: transaction %d: %w", i+1, err)
		}
	}
	return nil
}

// Config returns the network seed configuration.
func (d Document) Config() types.Config {
	return types.Config{
		Entities:     d.Entities,
		Assets:       d.Assets,
		Partnerships: d.Partnerships,
	}
}

// Sequence returns the proposed transaction sequence.
func (d Document) Sequence() []types.Transaction {
	seq := make([]types.Transaction, len(d.Transactions))
	for i, td := range d.Transactions {
		seq[i] = td.Transaction()
	}
	return seq
}

// Digest returns a stable hex digest of the whole document, used as the
// run-store cache key: the same seed and sequence always digest to the
// same value.
func (d Document) Digest() string {
	data, err := json.Marshal(d)
	if err != nil {
		// Document is plain data; marshaling cannot fail in practice.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
