package vending

import (
	"math"
	"testing"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/IlyasAtabaev731/vending-machine/internal/lib/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeChange(t *testing.T) {
	plenty := models.Bank{Quarters: 100, Dimes: 100, Nickles: 100, Pennies: 100}

	tests := []struct {
		name    string
		due     money.Cents
		bank    models.Bank
		change  models.Bank
		missing money.Cents
	}{
		{"nothing due", 0, plenty, models.Bank{}, 0},
		{"99 cents", 99, plenty, models.Bank{Quarters: 3, Dimes: 2, Pennies: 4}, 0},
		{"41 cents", 41, plenty, models.Bank{Quarters: 1, Dimes: 1, Nickles: 1, Pennies: 1}, 0},
		{"falls through to smaller coins", 50, models.Bank{Quarters: 1, Dimes: 2, Nickles: 1}, models.Bank{Quarters: 1, Dimes: 2, Nickles: 1}, 0},
		{"empty bank", 30, models.Bank{}, models.Bank{}, 30},
		{"greedy shortfall", 30, models.Bank{Quarters: 1, Dimes: 3}, models.Bank{Quarters: 1}, 5},
		{"pennies only", 7, models.Bank{Pennies: 5}, models.Bank{Pennies: 5}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, missing, err := makeChange(tt.due, tt.bank)
			require.NoError(t, err)
			assert.Equal(t, tt.missing, missing)
			if missing == 0 {
				assert.Equal(t, tt.change, change)
			}
		})
	}
}

func TestMakeChangeRejectsNegativeDue(t *testing.T) {
	change, missing, err := makeChange(-50, models.Bank{Quarters: 4})
	assert.ErrorIs(t, err, errNegativeChange)
	assert.Equal(t, models.Bank{}, change)
	assert.Equal(t, money.Cents(0), missing)
}

func TestBankValue(t *testing.T) {
	assert.True(t, bankValue(models.Bank{}).IsZero())
	assert.True(t, bankValue(models.Bank{Quarters: 1, Dimes: 2, Nickles: 3, Pennies: 4}).Equal(decimal.RequireFromString("0.64")))
	assert.True(t, bankValue(models.Bank{Quarters: math.MaxInt}).Equal(
		decimal.NewFromInt(math.MaxInt64).Mul(decimal.RequireFromString("0.25"))))
}
