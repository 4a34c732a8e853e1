package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{
			name: "asset for cash",
			tx: Transaction{
				From:     "JonesCo",
				To:       "Buyer LLC",
				GoodFrom: AssetGood("Hotel"),
				GoodTo:   CashGood(500),
			},
		},
		{
			name: "partnership for asset with election",
			tx: Transaction{
				From:       "Mr. Jones",
				To:         "FamilyTrust",
				GoodFrom:   PartnershipGood("JonesCo"),
				GoodTo:     AssetGood("Note"),
				Section754: true,
			},
		},
		{
			name: "missing from entity",
			tx: Transaction{
				To:       "Buyer LLC",
				GoodFrom: CashGood(1),
				GoodTo:   CashGood(1),
			},
			wantErr: true,
		},
		{
			name: "missing to entity",
			tx: Transaction{
				From:     "JonesCo",
				GoodFrom: CashGood(1),
				GoodTo:   CashGood(1),
			},
			wantErr: true,
		},
		{
			name: "self transaction",
			tx: Transaction{
				From:     "JonesCo",
				To:       "JonesCo",
				GoodFrom: CashGood(1),
				GoodTo:   CashGood(1),
			},
			wantErr: true,
		},
		{
			name: "invalid good from",
			tx: Transaction{
				From:     "JonesCo",
				To:       "Buyer LLC",
				GoodFrom: Good{Kind: "equity"},
				GoodTo:   CashGood(1),
			},
			wantErr: true,
		},
		{
			name: "invalid good to",
			tx: Transaction{
				From:     "JonesCo",
				To:       "Buyer LLC",
				GoodFrom: CashGood(1),
				GoodTo:   Good{Kind: GoodAsset},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGood)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionString(t *testing.T) {
	tx := Transaction{
		From:     "JonesCo",
		To:       "Buyer LLC",
		GoodFrom: AssetGood("Hotel"),
		GoodTo:   CashGood(500),
	}
	assert.Equal(t, `JonesCo gives asset "Hotel" to Buyer LLC for cash 500`, tx.String())
}
