package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", SQLite, false},
		{"sqlite3", SQLite, false},
		{"postgres", Postgres, false},
		{"postgresql", Postgres, false},
		{"mysql", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDialect(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", SQLite.Placeholder(3))
	assert.Equal(t, "$3", Postgres.Placeholder(3))
}

func TestOpen_SQLiteMemory(t *testing.T) {
	conn, d, err := Open(context.Background(), Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, SQLite, d)
	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
}

func TestOpen_Errors(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)

	_, _, err = Open(context.Background(), Config{Driver: "sqlite"})
	assert.ErrorContains(t, err, "dsn is required")
}
