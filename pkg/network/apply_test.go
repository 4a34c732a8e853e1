package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiernet/pkg/types"
)

// saleConfig is the canonical two-tier sale setup: Mr. Jones owns 99%
// of JonesCo, JonesCo holds the Hotel at basis 100 and FMV 500, and
// Buyer LLC stands by with cash.
func saleConfig() types.Config {
	return types.Config{
		Entities: []types.EntityConfig{
			{Name: "Mr. Jones", Cash: 0},
			{Name: "JonesCo", Cash: 0},
			{Name: "Buyer LLC", Cash: 1000},
		},
		Assets: []types.AssetConfig{
			{Owner: "JonesCo", Name: "Hotel", Type: types.AssetMaterial, Basis: 100, FMV: fmvPtr(500)},
		},
		Partnerships: []types.EdgeConfig{
			{Upstream: "Mr. Jones", Downstream: "JonesCo", Share: 0.99},
		},
	}
}

func TestApplyTransactionAssetSale(t *testing.T) {
	n := mustNetwork(t, saleConfig())

	next, err := ApplyTransaction(n, types.Transaction{
		From:     "JonesCo",
		To:       "Buyer LLC",
		GoodFrom: types.AssetGood("Hotel"),
		GoodTo:   types.CashGood(500),
	})
	require.NoError(t, err)
	require.NotSame(t, n, next)

	// The seller is taxed only on its retained 1%, the 99% owner on the
	// gain visible through its mirror.
	records := next.TaxRecords()
	assert.InDelta(t, 4, records["JonesCo"], 1e-9)
	assert.InDelta(t, 396, records["Mr. Jones"], 1e-9)
	assert.InDelta(t, 0, records["Buyer LLC"], 1e-9)

	assert.InDelta(t, 500, mustEntity(t, next, "JonesCo").CashBalance, 1e-9)
	assert.InDelta(t, 500, mustEntity(t, next, "Buyer LLC").CashBalance, 1e-9)

	hotel := mustAsset(t, next, "Hotel")
	assert.Equal(t, 500.0, hotel.Basis, "basis steps up to FMV on sale")
	assert.True(t, mustEntity(t, next, "Buyer LLC").HoldsAsset(hotel.AssetID))
	assert.False(t, mustEntity(t, next, "JonesCo").HoldsAsset(hotel.AssetID))

	// The mirror disappears from the former owner's tier.
	assert.Empty(t, mustEntity(t, next, "Mr. Jones").Ledger("JonesCo"))

	// The input network is untouched.
	assert.InDelta(t, 0, mustEntity(t, n, "JonesCo").CashBalance, 1e-9)
	assert.Equal(t, 100.0, mustAsset(t, n, "Hotel").Basis)
	assert.Len(t, mustEntity(t, n, "Mr. Jones").Ledger("JonesCo"), 1)
}

func TestApplyTransactionCashForCashConserves(t *testing.T) {
	n := mustNetwork(t, saleConfig())
	before := n.TotalCash()

	next, err := ApplyTransaction(n, types.Transaction{
		From:     "Buyer LLC",
		To:       "JonesCo",
		GoodFrom: types.CashGood(100),
		GoodTo:   types.CashGood(40),
	})
	require.NoError(t, err)

	assert.InDelta(t, before, next.TotalCash(), 1e-9)
	assert.InDelta(t, 940, mustEntity(t, next, "Buyer LLC").CashBalance, 1e-9)
	assert.InDelta(t, 60, mustEntity(t, next, "JonesCo").CashBalance, 1e-9)
	assert.InDelta(t, 0, next.TotalTaxLiability(), 1e-9)
	assert.InDelta(t, next.TotalCash(), next.Fitness(), 1e-9)
}

func TestApplyTransactionRejections(t *testing.T) {
	tests := []struct {
		name    string
		tx      types.Transaction
		wantErr error
	}{
		{
			name: "unknown giving entity",
			tx: types.Transaction{
				From: "Ghost", To: "Buyer LLC",
				GoodFrom: types.CashGood(1), GoodTo: types.CashGood(1),
			},
			wantErr: types.ErrUnknownEntity,
		},
		{
			name: "unknown asset",
			tx: types.Transaction{
				From: "JonesCo", To: "Buyer LLC",
				GoodFrom: types.AssetGood("Castle"), GoodTo: types.CashGood(1),
			},
			wantErr: types.ErrUnknownAsset,
		},
		{
			name: "giver does not own the asset",
			tx: types.Transaction{
				From: "Buyer LLC", To: "JonesCo",
				GoodFrom: types.AssetGood("Hotel"), GoodTo: types.CashGood(0),
			},
			wantErr: types.ErrInsufficientGood,
		},
		{
			name: "giver does not hold the interest",
			tx: types.Transaction{
				From: "Buyer LLC", To: "Mr. Jones",
				GoodFrom: types.PartnershipGood("JonesCo"), GoodTo: types.CashGood(1),
			},
			wantErr: types.ErrInsufficientGood,
		},
		{
			name: "insufficient cash",
			tx: types.Transaction{
				From: "JonesCo", To: "Buyer LLC",
				GoodFrom: types.CashGood(1), GoodTo: types.CashGood(1),
			},
			wantErr: types.ErrInsufficientCash,
		},
		{
			name: "entity cannot receive interest in itself",
			tx: types.Transaction{
				From: "Mr. Jones", To: "JonesCo",
				GoodFrom: types.PartnershipGood("JonesCo"), GoodTo: types.CashGood(0),
			},
			wantErr: types.ErrSelfPartnership,
		},
		{
			name: "self transaction",
			tx: types.Transaction{
				From: "JonesCo", To: "JonesCo",
				GoodFrom: types.CashGood(0), GoodTo: types.CashGood(0),
			},
			wantErr: types.ErrInvalidGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNetwork(t, saleConfig())
			next, err := ApplyTransaction(n, tt.tx)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Same(t, n, next, "failed transaction must return the input network")
		})
	}
}

func TestApplyTransactionRejectsDuplicateEdge(t *testing.T) {
	cfg := saleConfig()
	cfg.Partnerships = append(cfg.Partnerships, types.EdgeConfig{
		Upstream: "Buyer LLC", Downstream: "JonesCo", Share: 0.005,
	})
	n := mustNetwork(t, cfg)

	next, err := ApplyTransaction(n, types.Transaction{
		From:     "Mr. Jones",
		To:       "Buyer LLC",
		GoodFrom: types.PartnershipGood("JonesCo"),
		GoodTo:   types.CashGood(100),
	})
	assert.ErrorIs(t, err, types.ErrDuplicateEdge)
	assert.Same(t, n, next)
}

func TestApplyTransactionSequence(t *testing.T) {
	// Sell the Hotel, then pass the sale proceeds up. Tax records are
	// cumulative across the sequence.
	n := mustNetwork(t, saleConfig())

	n1, err := ApplyTransaction(n, types.Transaction{
		From:     "JonesCo",
		To:       "Buyer LLC",
		GoodFrom: types.AssetGood("Hotel"),
		GoodTo:   types.CashGood(500),
	})
	require.NoError(t, err)

	n2, err := ApplyTransaction(n1, types.Transaction{
		From:     "JonesCo",
		To:       "Mr. Jones",
		GoodFrom: types.CashGood(300),
		GoodTo:   types.CashGood(0),
	})
	require.NoError(t, err)

	assert.InDelta(t, 200, mustEntity(t, n2, "JonesCo").CashBalance, 1e-9)
	assert.InDelta(t, 300, mustEntity(t, n2, "Mr. Jones").CashBalance, 1e-9)
	assert.InDelta(t, 400, n2.TotalTaxLiability(), 1e-9)
	assert.InDelta(t, 1000-400, n2.Fitness(), 1e-9)
}
