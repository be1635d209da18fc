// Package vending implements a coin-operated vending machine: item inventory,
// purchases paid in dollars with exact coin change from an internal bank, and
// restocking gated by a single restock key.
package vending

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sync"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/IlyasAtabaev731/vending-machine/internal/lib/money"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Machine is safe for concurrent use. Every operation either applies all of
// its effects or none of them.
type Machine struct {
	mu      sync.Mutex
	keyHash []byte
	slots   map[string]*models.InventoryItem
	bank    models.Bank
}

// New builds a machine owning copies of inventory and bank. A nil inventory
// and a zero bank start the machine empty.
func New(restockKey string, inventory models.Inventory, bank models.Bank) (*Machine, error) {
	if restockKey == "" {
		return nil, &InvalidRestockKeyError{Key: restockKey}
	}
	if bank.IsNegative() {
		return nil, fmt.Errorf("%w: bank %+v", ErrInvalidSeed, bank)
	}

	slots := make(map[string]*models.InventoryItem, len(inventory))
	for name, item := range inventory {
		if name == "" || name != item.Name {
			return nil, fmt.Errorf("%w: key %q holds item %q", ErrInvalidSeed, name, item.Name)
		}
		if item.Stock < 0 {
			return nil, fmt.Errorf("%w: %s has negative stock %d", ErrInvalidSeed, name, item.Stock)
		}
		if err := checkCost(item.Cost); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, name, err)
		}
		item := item
		slots[name] = &item
	}

	keyHash, err := bcrypt.GenerateFromPassword(keyDigest(restockKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash restock key: %w", err)
	}

	return &Machine{
		keyHash: keyHash,
		slots:   slots,
		bank:    bank,
	}, nil
}

// Inventory returns name and cost of every item that is in stock.
func (m *Machine) Inventory() models.PublicInventory {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(models.PublicInventory, len(m.slots))
	for name, s := range m.slots {
		if s.Stock > 0 {
			res[name] = models.PublicInventoryItem{Name: s.Name, Cost: s.Cost}
		}
	}
	return res
}

// Authorize checks key against the restock key without touching any state.
func (m *Machine) Authorize(key string) error {
	return m.checkKey(key)
}

// GetStock returns a copy of the full inventory, including sold-out items.
func (m *Machine) GetStock(key string) (models.Inventory, error) {
	if err := m.checkKey(key); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(models.Inventory, len(m.slots))
	for name, s := range m.slots {
		res[name] = *s
	}
	return res, nil
}

// GetBank returns the coins currently held for making change.
func (m *Machine) GetBank(key string) (models.Bank, error) {
	if err := m.checkKey(key); err != nil {
		return models.Bank{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.bank, nil
}

// Purchase sells one unit of name for payment dollars and returns the coins
// handed back as change. Payment is an amount, not coins, so it never enters
// the bank. Change is truncated to whole cents.
func (m *Machine) Purchase(name string, payment decimal.Decimal) (models.Bank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[name]
	if !ok {
		return models.Bank{}, &InvalidItemError{Name: name}
	}
	if s.Stock == 0 {
		return models.Bank{}, &InsufficientStockError{Name: name}
	}
	if payment.LessThan(s.Cost) {
		return models.Bank{}, &InsufficientFundsError{Payment: payment, Cost: s.Cost}
	}

	owed := payment.Sub(s.Cost)
	due, err := money.Truncate(owed)
	if err != nil {
		owed = owed.Truncate(2)
		return models.Bank{}, &InsufficientChangeError{Change: owed, Missing: owed.Sub(bankValue(m.bank))}
	}

	change, missing, err := makeChange(due, m.bank)
	if err != nil {
		return models.Bank{}, fmt.Errorf("purchase %s: %w", name, err)
	}
	if missing > 0 {
		return models.Bank{}, &InsufficientChangeError{Change: due.Decimal(), Missing: missing.Decimal()}
	}

	s.Stock--
	m.bank = m.bank.Sub(change)

	return change, nil
}

// Restock adds amount units of name. An unknown name creates the item, which
// requires a positive cost in whole cents. For existing items cost is ignored.
func (m *Machine) Restock(key, name string, amount int, cost decimal.NullDecimal) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	if amount < 1 {
		return &InvalidAmountError{Name: name, Amount: amount}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.slots[name]; ok {
		if s.Stock > math.MaxInt-amount {
			return &InvalidAmountError{Name: name, Amount: amount}
		}
		s.Stock += amount
		return nil
	}

	if name == "" {
		return &InvalidItemError{Name: name}
	}
	if !cost.Valid {
		return &InvalidCostError{Name: name, Cost: cost}
	}
	if err := checkCost(cost.Decimal); err != nil {
		return &InvalidCostError{Name: name, Cost: cost}
	}

	m.slots[name] = &models.InventoryItem{Name: name, Cost: cost.Decimal, Stock: amount}
	return nil
}

// LoadCoins adds coins to the change reserve.
func (m *Machine) LoadCoins(key string, coins models.Bank) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	if coins.IsNegative() {
		return &InvalidCoinsError{Coins: coins}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if addOverflows(m.bank, coins) {
		return &InvalidCoinsError{Coins: coins}
	}
	m.bank = m.bank.Add(coins)
	return nil
}

func (m *Machine) checkKey(key string) error {
	if key == "" || bcrypt.CompareHashAndPassword(m.keyHash, keyDigest(key)) != nil {
		return &InvalidRestockKeyError{Key: key}
	}
	return nil
}

// keyDigest keeps keys of any length under bcrypt's 72 byte input limit.
func keyDigest(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return []byte(hex.EncodeToString(sum[:]))
}

func addOverflows(bank, coins models.Bank) bool {
	return bank.Quarters > math.MaxInt-coins.Quarters ||
		bank.Dimes > math.MaxInt-coins.Dimes ||
		bank.Nickles > math.MaxInt-coins.Nickles ||
		bank.Pennies > math.MaxInt-coins.Pennies
}

// checkCost requires a positive price in whole cents.
func checkCost(cost decimal.Decimal) error {
	price, err := money.FromDecimal(cost)
	if err != nil {
		return err
	}
	if price <= 0 {
		return fmt.Errorf("cost %s is not positive", cost.String())
	}
	return nil
}
