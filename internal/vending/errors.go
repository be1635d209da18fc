package vending

import (
	"errors"
	"fmt"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRestockKey  = errors.New("invalid restock key")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidCost        = errors.New("invalid cost")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCoins       = errors.New("invalid coins")
	ErrInvalidSeed        = errors.New("invalid initial state")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientChange = errors.New("insufficient change")
)

// InvalidRestockKeyError is returned by every privileged operation when the
// key is empty or does not match.
type InvalidRestockKeyError struct {
	Key string
}

func (e *InvalidRestockKeyError) Error() string {
	return "Invalid restock key: " + e.Key
}

func (e *InvalidRestockKeyError) Unwrap() error { return ErrInvalidRestockKey }

type InvalidItemError struct {
	Name string
}

func (e *InvalidItemError) Error() string {
	return "Invalid item: " + e.Name
}

func (e *InvalidItemError) Unwrap() error { return ErrInvalidItem }

// InvalidCostError reports a missing, non-positive or sub-cent cost for a new item.
// Cost.Valid is false when no cost was supplied.
type InvalidCostError struct {
	Name string
	Cost decimal.NullDecimal
}

func (e *InvalidCostError) Error() string {
	cost := "missing"
	if e.Cost.Valid {
		cost = e.Cost.Decimal.String()
	}
	return fmt.Sprintf("Restock invalid cost: %s: %s", e.Name, cost)
}

func (e *InvalidCostError) Unwrap() error { return ErrInvalidCost }

type InvalidAmountError struct {
	Name   string
	Amount int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("Restock invalid amount: %s: %d", e.Name, e.Amount)
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

type InvalidCoinsError struct {
	Coins models.Bank
}

func (e *InvalidCoinsError) Error() string {
	return fmt.Sprintf("Invalid coin counts: %+v", e.Coins)
}

func (e *InvalidCoinsError) Unwrap() error { return ErrInvalidCoins }

type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for item: " + e.Name
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type InsufficientFundsError struct {
	Payment decimal.Decimal
	Cost    decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient funds. Needed: %s, received: %s", e.Cost.String(), e.Payment.String())
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// InsufficientChangeError carries the change owed and the part of it the bank
// could not cover.
type InsufficientChangeError struct {
	Change  decimal.Decimal
	Missing decimal.Decimal
}

func (e *InsufficientChangeError) Error() string {
	return fmt.Sprintf("Insufficient change in bank. Needed: %s, missing: %s", e.Change.String(), e.Missing.String())
}

func (e *InsufficientChangeError) Unwrap() error { return ErrInsufficientChange }
