package vending

import (
	"errors"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/IlyasAtabaev731/vending-machine/internal/lib/money"
	"github.com/shopspring/decimal"
)

// makeChange dispenses due greedily, quarters first, from the coins in bank.
// It returns the coins taken and whatever amount could not be covered. The
// greedy order is exact for {25, 10, 5, 1} when coins are plentiful; when a
// denomination runs short the machine does not search for other combinations.
func makeChange(due money.Cents, bank models.Bank) (models.Bank, money.Cents, error) {
	if due < 0 {
		return models.Bank{}, 0, errNegativeChange
	}

	remaining := due
	take := func(available int, value money.Cents) int {
		n := int(remaining / value)
		if n > available {
			n = available
		}
		remaining -= money.Cents(n) * value
		return n
	}

	var change models.Bank
	change.Quarters = take(bank.Quarters, money.Quarter)
	change.Dimes = take(bank.Dimes, money.Dime)
	change.Nickles = take(bank.Nickles, money.Nickel)
	change.Pennies = take(bank.Pennies, money.Penny)

	return change, remaining, nil
}

var errNegativeChange = errors.New("negative change due")

// bankValue is computed in decimal since large coin counts overflow Cents.
func bankValue(bank models.Bank) decimal.Decimal {
	coins := func(n int, value money.Cents) decimal.Decimal {
		return decimal.NewFromInt(int64(n)).Mul(value.Decimal())
	}
	return coins(bank.Quarters, money.Quarter).
		Add(coins(bank.Dimes, money.Dime)).
		Add(coins(bank.Nickles, money.Nickel)).
		Add(coins(bank.Pennies, money.Penny))
}
