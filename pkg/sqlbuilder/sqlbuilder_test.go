package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsFold(t *testing.T) {
	query, args, err := SQLite.Select("id").From("presences").
		Where(SQLite.ContainsFold("location", "Place_X 50%")).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, `SELECT id FROM presences WHERE unicode_lower(location) LIKE ? ESCAPE '\'`, query)
	assert.Equal(t, []interface{}{`%place\_x 50\%%`}, args)
}

func TestContainsFold_UnicodePattern(t *testing.T) {
	_, args, err := SQLite.Select("id").From("presences").
		Where(SQLite.ContainsFold("location", "ÉCOLE")).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"%école%"}, args)
}

func TestPostgresPlaceholders(t *testing.T) {
	query, _, err := Postgres.Select("id").From("slots").
		Where("presence_id = ?", 1).
		Where(Postgres.ContainsFold("location", "x")).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "presence_id = $1")
	assert.Contains(t, query, "LOWER(location) LIKE $2")
}
