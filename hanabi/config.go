package hanabi

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	Bot      BotConfig      `toml:"bot"`
	DB       DBConfig       `toml:"db"`
	Shop     ShopConfig     `toml:"shop"`
	Cooldown CooldownConfig `toml:"cooldown"`
	Spaces   SpacesConfig   `toml:"spaces"`
	Mongo    MongoConfig    `toml:"mongo"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	AdminIDs  []snowflake.ID `toml:"admin_ids"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// ShopConfig overrides the listing defaults; zero values fall back to the
// constants in hanabi/config.
type ShopConfig struct {
	TTLSeconds     int   `toml:"ttl_seconds"`
	MaxItems       int   `toml:"max_items"`
	BaseMultiplier int64 `toml:"base_multiplier"`
	Variance       int64 `toml:"variance"`
	MinPrice       int64 `toml:"min_price"`
}

type CooldownConfig struct {
	GiftSeconds    int `toml:"gift_seconds"`
	RedeemSeconds  int `toml:"redeem_seconds"`
	PaySeconds     int `toml:"pay_seconds"`
	SpecialSeconds int `toml:"special_seconds"`
}

type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	ImageRoot string `toml:"imageroot"`
}

// MongoConfig points at the legacy bot's database for one-shot imports.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}
