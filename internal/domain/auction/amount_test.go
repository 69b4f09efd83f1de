package auction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   decimal.Decimal
		wantErr error
	}{
		{
			name:  "accepts a positive value",
			value: decimal.NewFromInt(10),
		},
		{
			name:    "rejects zero",
			value:   decimal.Zero,
			wantErr: ErrTooLowAmount,
		},
		{
			name:    "rejects a negative value",
			value:   decimal.NewFromInt(-1),
			wantErr: ErrTooLowAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := NewAmount(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, amount.Value().Equal(tt.value))
		})
	}
}

func TestNewAmountWithFloor(t *testing.T) {
	min := decimal.NewFromInt(5)

	tests := []struct {
		name    string
		value   decimal.Decimal
		wantErr error
	}{
		{
			name:  "accepts a value above the floor",
			value: decimal.NewFromInt(6),
		},
		{
			name:  "accepts a value equal to the floor",
			value: decimal.NewFromInt(5),
		},
		{
			name:    "rejects a value below the floor",
			value:   decimal.NewFromInt(4),
			wantErr: ErrTooLowAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAmountWithFloor(tt.value, min)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAmount_Plus(t *testing.T) {
	a, err := NewAmount(decimal.NewFromInt(10))
	assert.NoError(t, err)
	b, err := NewAmount(decimal.NewFromInt(10))
	assert.NoError(t, err)

	assert.True(t, a.Plus(b).Value().Equal(decimal.NewFromInt(20)))
}
