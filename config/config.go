package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port             string
	UpstreamBaseURL  string
	SessionFile      string
	JWTSecret        string
	DeliveryCharge   float64
	EsewaFormURL     string
	EsewaProductCode string
	SuccessURL       string
	FailureURL       string
}

// Load reads the configuration from the environment. Godotenv is loaded by
// main before this runs.
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		UpstreamBaseURL:  getEnv("UPSTREAM_BASE_URL", "http://localhost:5000"),
		SessionFile:      getEnv("SESSION_FILE", "./session.json"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DeliveryCharge:   getEnvFloat("DELIVERY_CHARGE", 2),
		EsewaFormURL:     getEnv("ESEWA_FORM_URL", "https://rc-epay.esewa.com.np/api/epay/main/v2/form"),
		EsewaProductCode: getEnv("ESEWA_PRODUCT_CODE", "EPAYTEST"),
	}
	cfg.SuccessURL = getEnv("ESEWA_SUCCESS_URL", cfg.UpstreamBaseURL+"/api/complete-payment")
	cfg.FailureURL = getEnv("ESEWA_FAILURE_URL", "https://pantonenp.com/checkout")

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set, checkout routes will reject all tokens")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
