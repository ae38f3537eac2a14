package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int

	JWTSecret string

	// Shared secret the payment gateway signs webhook calls with.
	GatewayWebhookSecret string

	// PIX receiving key and the merchant fields stamped into payloads.
	PixKey          string
	PixMerchantName string
	PixMerchantCity string

	// Issuing bank data stamped into generated boletos.
	BoletoBankCode string
	BoletoAgency   string
	BoletoAccount  string
	BoletoDueDays  int

	GoEnv     string // dev/prod
	APIDomain string
	FEURL     string
}

// Load reads and checks the environment.
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		GatewayWebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),

		PixKey:          os.Getenv("PIX_KEY"),
		PixMerchantName: getenv("PIX_MERCHANT_NAME", "LOJA ONLINE"),
		PixMerchantCity: getenv("PIX_MERCHANT_CITY", "SAO PAULO"),

		BoletoBankCode: getenv("BOLETO_BANK_CODE", "001"),
		BoletoAgency:   getenv("BOLETO_AGENCY", "0001"),
		BoletoAccount:  getenv("BOLETO_ACCOUNT", "00123456789"),
		BoletoDueDays:  atoiOr("BOLETO_DUE_DAYS", 7),

		GoEnv:     os.Getenv("GO_ENV"),
		APIDomain: os.Getenv("API_DOMAIN"),
		FEURL:     os.Getenv("FE_URL"),
	}

	// required
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GatewayWebhookSecret == "" {
		return Config{}, fmt.Errorf("GATEWAY_WEBHOOK_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func atoiOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
