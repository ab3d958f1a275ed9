package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facadeworks/facade-workbench/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{"disabled", config.DatabaseConfig{User: "postgres", Port: 5432}, ""},
		{"explicit", config.DatabaseConfig{DSN: "postgres://u@db/facade", Host: "ignored"}, "postgres://u@db/facade"},
		{
			"fields",
			config.DatabaseConfig{Host: "db", Port: 5433, User: "fw", Password: "pw", Name: "facade"},
			"host=db port=5433 user=fw password=pw dbname=facade sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(&tt.cfg))
		})
	}
}
