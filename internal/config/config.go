package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Sheets      SheetsConfig
	Firestore   FirestoreConfig
	Kafka       KafkaConfig
	Corrections CorrectionsConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

// SheetsConfig points at the historical payment ledger: one spreadsheet,
// one named range, one row per confirmed payment.
type SheetsConfig struct {
	SpreadsheetID   string
	ReadRange       string
	CredentialsFile string
}

// FirestoreConfig points at the live order documents, laid out as
// {UsersCollection}/{userId}/{OrdersCollection}/{orderId}.
type FirestoreConfig struct {
	ProjectID        string
	UsersCollection  string
	OrdersCollection string
	CredentialsFile  string
}

// KafkaConfig drives the best-effort diagnostics stream. Empty Brokers
// disables it entirely.
type KafkaConfig struct {
	Brokers          []string
	DiagnosticsTopic string
}

// CorrectionsConfig feeds the built-in force-cancel rule: customers
// refunded outside the gateway whose live documents never caught up.
type CorrectionsConfig struct {
	ForceCancelNames  []string
	ForceCancelReason string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "jsha_order_ledger"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8040),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			ReadRange:       getEnv("SHEETS_READ_RANGE", "orders!A2:M"),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Firestore: FirestoreConfig{
			ProjectID:        getEnv("FIRESTORE_PROJECT_ID", ""),
			UsersCollection:  getEnv("FIRESTORE_USERS_COLLECTION", "users"),
			OrdersCollection: getEnv("FIRESTORE_ORDERS_COLLECTION", "orders"),
			CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Kafka: KafkaConfig{
			Brokers:          splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "")),
			DiagnosticsTopic: getEnv("KAFKA_DIAGNOSTICS_TOPIC", "order_ledger_diagnostics"),
		},
		Corrections: CorrectionsConfig{
			ForceCancelNames:  splitAndTrim(getEnv("CORRECTION_FORCE_CANCEL_NAMES", "")),
			ForceCancelReason: getEnv("CORRECTION_FORCE_CANCEL_REASON", "refunded outside gateway"),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DiagnosticsEnabled reports whether a diagnostics stream is configured.
func (k KafkaConfig) DiagnosticsEnabled() bool {
	return len(k.Brokers) > 0 && k.DiagnosticsTopic != ""
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is empty")
	}
	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is empty")
	}
	// Kafka diagnostics and corrections are optional.
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
