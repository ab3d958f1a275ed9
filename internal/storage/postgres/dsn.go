package postgres

import (
	"fmt"

	"github.com/facadeworks/facade-workbench/config"
)

// DSN returns cfg.DSN when set, otherwise a keyword/value string built from
// the individual fields. It returns "" when no database is configured.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
