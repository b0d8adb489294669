package database_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// Runs only with RUN_INTEGRATION_TESTS=true and POSTGRES_DSN pointing at a
// scratch database.
func TestPostgresUniqueViolation(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("set RUN_INTEGRATION_TESTS=true to run postgres tests")
	}
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	db, err := database.OpenPostgres(dsn, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	username := fmt.Sprintf("pq_test_%d", time.Now().UnixNano())
	t.Cleanup(func() { db.Where("username = ?", username).Delete(&model.User{}) })

	require.NoError(t, db.Create(&model.User{Username: username, Password: "x", Role: model.RoleUser}).Error)
	err = db.Create(&model.User{Username: username, Password: "y", Role: model.RoleUser}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}
