package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_analysis_records.sql", names[0])
}

func TestMigrations_CreateHistoryTable(t *testing.T) {
	sql, err := migrations.ReadFile("migrations/001_analysis_records.sql")
	require.NoError(t, err)

	text := string(sql)
	assert.Contains(t, text, "CREATE TABLE IF NOT EXISTS analysis_records")
	for _, col := range strings.Split(recordColumns, ",") {
		assert.Contains(t, text, strings.TrimSpace(col))
	}
}
