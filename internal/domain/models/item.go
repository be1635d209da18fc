package models

import "github.com/shopspring/decimal"

type InventoryItem struct {
	Name  string          `json:"name" yaml:"name"`
	Cost  decimal.Decimal `json:"cost" yaml:"cost"`
	Stock int             `json:"stock" yaml:"stock"`
}

type PublicInventoryItem struct {
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// Inventory is keyed by item name.
type Inventory map[string]InventoryItem

type PublicInventory map[string]PublicInventoryItem
