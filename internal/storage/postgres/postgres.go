package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	_ "github.com/lib/pq"
)

// Storage reads the machine's starting inventory and coin bank. Machine state
// is never written back.
type Storage struct {
	db *sql.DB
}

func New(dbUrl string) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error %s", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect database error %s", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

func (s *Storage) LoadInventory(ctx context.Context, log *slog.Logger) (models.Inventory, error) {
	const op = "storage.postgres.LoadInventory"

	rows, err := s.db.QueryContext(ctx, "SELECT name, cost, stock FROM items")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Error("Failed to close items rows", "error", err)
		}
	}(rows)

	inventory := make(models.Inventory)
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.Name, &item.Cost, &item.Stock); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		inventory[item.Name] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return inventory, nil
}

// LoadBank returns the single bank row, or an empty bank if none was seeded.
func (s *Storage) LoadBank(ctx context.Context) (models.Bank, error) {
	const op = "storage.postgres.LoadBank"

	var bank models.Bank

	err := s.db.QueryRowContext(ctx, "SELECT quarters, dimes, nickles, pennies FROM bank WHERE id = 1").
		Scan(&bank.Quarters, &bank.Dimes, &bank.Nickles, &bank.Pennies)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bank{}, nil
	}
	if err != nil {
		return models.Bank{}, fmt.Errorf("%s: %w", op, err)
	}

	return bank, nil
}
