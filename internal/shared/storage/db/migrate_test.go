package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNamesOrdered(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_create_submissions.sql",
		"migrations/00002_create_shipment_notifications.sql",
	}, names)
}

func TestMigrateNilDatabaseIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil))
	assert.NoError(t, Migrate(context.Background(), nil, "bogus"))
}
