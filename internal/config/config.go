package config

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	SQLite   SQLiteConfig   `env:",prefix=SQLITE_"`
	Session  SessionConfig  `env:",prefix=SESSION_"`
	Security SecurityConfig `env:",prefix="`
	Payment  PaymentConfig  `env:",prefix=PAYMENT_"`
	Shop     ShopConfig     `env:",prefix=SHOP_"`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type SQLiteConfig struct {
	Path string `env:"PATH,default=shop.db"`
}

type SessionConfig struct {
	TTL          Duration `env:"TTL,default=24h"`
	CookieSecure bool     `env:"COOKIE_SECURE,default=false"`
}

type SecurityConfig struct {
	BCryptCost int `env:"BCRYPT_COST,default=12"`

	// CardEncryptionKey is the hex-encoded 32-byte key for card numbers
	// at rest. It is provided externally and persistent; generating a
	// fresh key per process would orphan every stored card.
	CardEncryptionKey string `env:"CARD_ENCRYPTION_KEY,required"`

	CardLuhnCheck bool `env:"CARD_LUHN_CHECK,default=true"`
}

type PaymentConfig struct {
	GatewayURL string   `env:"GATEWAY_URL,default="`
	Timeout    Duration `env:"TIMEOUT,default=5s"`
}

type ShopConfig struct {
	ShippingFee    float64  `env:"SHIPPING_FEE,default=20"`
	SearchLimit    int      `env:"SEARCH_LIMIT,default=50"`
	UnsubscribeTTL Duration `env:"UNSUBSCRIBE_TTL,default=48h"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type"`
}

// EncryptionKey decodes the configured card encryption key.
func (s SecurityConfig) EncryptionKey() ([]byte, error) {
	key, err := hex.DecodeString(s.CardEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("CARD_ENCRYPTION_KEY must be hex-encoded: %w", err)
	}
	return key, nil
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	key, err := config.Security.EncryptionKey()
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("CARD_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}

	if config.Session.TTL.Duration <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context.
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
