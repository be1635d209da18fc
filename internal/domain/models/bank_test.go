package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankArithmetic(t *testing.T) {
	a := Bank{Quarters: 3, Dimes: 2, Nickles: 1, Pennies: 0}
	b := Bank{Quarters: 1, Dimes: 1, Nickles: 1, Pennies: 1}

	assert.Equal(t, Bank{Quarters: 4, Dimes: 3, Nickles: 2, Pennies: 1}, a.Add(b))
	assert.Equal(t, Bank{Quarters: 2, Dimes: 1, Nickles: 0, Pennies: -1}, a.Sub(b))
	assert.True(t, a.Sub(b).IsNegative())
	assert.False(t, a.IsNegative())
	assert.False(t, Bank{}.IsNegative())
}
