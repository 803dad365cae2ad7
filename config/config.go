package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Telegram va AI ixtiyoriy: bo'sh bo'lsa o'chiriladi
	TelegramToken  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	GeminiModel    string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	MaxContextSize int    `envconfig:"MAX_CONTEXT_SIZE" default:"20"`
	ChatDBPath     string `envconfig:"CHAT_DB_PATH"`

	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	CatalogFile   string `envconfig:"CATALOG_FILE"`

	Pricing Pricing
	Payment Payment
}

// Pricing yetkazib berish va soliq sozlamalari
type Pricing struct {
	FreeShippingThreshold float64 `envconfig:"FREE_SHIPPING_THRESHOLD" default:"50"`
	ShippingFee           float64 `envconfig:"SHIPPING_FEE" default:"10"`
	TaxRate               float64 `envconfig:"TAX_RATE" default:"0.1"`
}

// Payment simulyatsiya qilingan to'lov sozlamalari
type Payment struct {
	Delay time.Duration `envconfig:"PAYMENT_DELAY" default:"2s"`
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("konfiguratsiyani o'qib bo'lmadi: %w", err)
	}

	// Validatsiya
	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE 0 va 1 oralig'ida bo'lishi kerak: %v", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.ShippingFee < 0 || cfg.Pricing.FreeShippingThreshold < 0 {
		return nil, fmt.Errorf("SHIPPING_FEE va FREE_SHIPPING_THRESHOLD manfiy bo'lmasligi kerak")
	}
	if cfg.Payment.Delay < 0 {
		return nil, fmt.Errorf("PAYMENT_DELAY manfiy bo'lmasligi kerak: %s", cfg.Payment.Delay)
	}
	if cfg.MaxContextSize <= 0 {
		cfg.MaxContextSize = 20
	}

	return &cfg, nil
}

// TelegramEnabled bot ishga tushirilishi kerakmi
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// AssistantEnabled AI yordamchi yoqilganmi
func (c *Config) AssistantEnabled() bool {
	return c.GeminiAPIKey != ""
}
