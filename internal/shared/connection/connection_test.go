package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		User:     "hris",
		Password: "secret",
		Name:     "hris_account",
		Port:     "5432",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=hris password=secret dbname=hris_account port=5432 sslmode=disable",
		cfg.DSN(),
	)
}
