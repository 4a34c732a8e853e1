package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoodValidate(t *testing.T) {
	tests := []struct {
		name    string
		good    Good
		wantErr error
	}{
		{
			name: "valid asset good",
			good: AssetGood("Hotel"),
		},
		{
			name: "valid partnership good",
			good: PartnershipGood("NewCo"),
		},
		{
			name: "valid cash good",
			good: CashGood(200),
		},
		{
			name: "zero cash is valid",
			good: CashGood(0),
		},
		{
			name:    "unknown kind rejected",
			good:    Good{Kind: "equity"},
			wantErr: ErrInvalidGood,
		},
		{
			name:    "empty kind rejected",
			good:    Good{},
			wantErr: ErrInvalidGood,
		},
		{
			name:    "asset good without name",
			good:    Good{Kind: GoodAsset},
			wantErr: ErrInvalidGood,
		},
		{
			name:    "partnership good without partner",
			good:    Good{Kind: GoodPartnership},
			wantErr: ErrInvalidGood,
		},
		{
			name:    "negative cash rejected",
			good:    CashGood(-1),
			wantErr: ErrInvalidGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.good.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGoodString(t *testing.T) {
	assert.Equal(t, `asset "Hotel"`, AssetGood("Hotel").String())
	assert.Equal(t, `partnership interest in "NewCo"`, PartnershipGood("NewCo").String())
	assert.Equal(t, "cash 200", CashGood(200).String())
}
