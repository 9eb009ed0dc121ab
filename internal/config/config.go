package config

import (
	"log"
	"os"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	CORSOrigins  string
	BusinessID   string // the single tenant served by the HTTP surface
	FiscalPolicy string // full-value | tax-benefit
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = ":memory:" // ephemeral store; nothing survives a restart
	}
	logFile := os.Getenv("LOG_FILE")
	cors := os.Getenv("CORS_ALLOWED_ORIGINS")
	if cors == "" {
		cors = "*"
	}
	businessID := os.Getenv("BUSINESS_ID")
	if businessID == "" {
		businessID = "demo-business-1" // matches the seeded demo business
	}
	policy := os.Getenv("FISCAL_POLICY")
	if policy == "" {
		policy = "tax-benefit"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, CORSOrigins: cors, BusinessID: businessID, FiscalPolicy: policy}
	log.Printf("[config] PORT=%s DB_DSN=%s BUSINESS_ID=%s FISCAL_POLICY=%s", cfg.Port, cfg.DBDSN, cfg.BusinessID, cfg.FiscalPolicy)
	return cfg
}
