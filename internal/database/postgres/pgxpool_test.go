package postgres

import (
	"context"
	"testing"

	"hireflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5433",
		DBUser:     "hr",
		DBPassword: "p w",
		DBName:     "hireflow",
	})
	assert.Equal(t, "host=db port=5433 user=hr password=p w dbname=hireflow sslmode=disable", got)
}

func TestNilPool(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	require.ErrorIs(t, p.Ping(ctx), errNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	require.ErrorIs(t, err, errNilDB)

	var n int
	require.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(&n), errNilDB)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
}
