package service

import (
	"testing"

	"loppis/internal/cache"
	"loppis/internal/models"
	"loppis/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testRepos wires real repositories over an isolated in-memory SQLite database.
func testRepos(t *testing.T) (repository.UserRepository, repository.AdRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Ad{}))

	c := cache.New(nil)
	return repository.NewUserRepository(db, c), repository.NewAdRepository(db, c)
}
