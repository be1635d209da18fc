package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

const (
	SeedFromConfig   = "config"
	SeedFromPostgres = "postgres"
)

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort    int           `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	ApiHost    string        `yaml:"api_host" env:"API_HOST" env-default:"localhost"`
	RestockKey string        `yaml:"restock_key" env:"RESTOCK_KEY" env-required:"true" env-description:"Key required for stock queries and restocking"`
	JwtSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"1h"`
	Seed       `yaml:"seed"`
	Postgres   `yaml:"postgres"`
}

// Seed describes where the machine's initial inventory and coin bank come from.
type Seed struct {
	Source    string      `yaml:"source" env:"SEED_SOURCE" env-default:"config" env-choices:"config,postgres"`
	Inventory []SeedItem  `yaml:"inventory"`
	Bank      models.Bank `yaml:"bank"`
}

type SeedItem struct {
	Name  string `yaml:"name"`
	Cost  string `yaml:"cost"`
	Stock int    `yaml:"stock"`
}

type Postgres struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"5433"`
	User string `yaml:"user" env-default:"test"`
	Pass string `yaml:"pass" env-default:"12345"`
	Db   string `yaml:"db" env-default:"test_db"`
}

func (p Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Pass, p.Host, p.Port, p.Db)
}

// InventoryModel converts the configured seed items into an inventory keyed by name.
func (s Seed) InventoryModel() (models.Inventory, error) {
	inv := make(models.Inventory, len(s.Inventory))
	for _, item := range s.Inventory {
		cost, err := decimal.NewFromString(item.Cost)
		if err != nil {
			return nil, fmt.Errorf("seed item %q: cost %q: %w", item.Name, item.Cost, err)
		}
		if _, dup := inv[item.Name]; dup {
			return nil, fmt.Errorf("seed item %q listed twice", item.Name)
		}
		inv[item.Name] = models.InventoryItem{Name: item.Name, Cost: cost, Stock: item.Stock}
	}
	return inv, nil
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	cfg, err := Load(path)
	if err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
