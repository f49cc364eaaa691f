package seed

import (
	"os"
	"path/filepath"
	"testing"

	"loppis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Ad{}))
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	f := NewFactory(newTestDB(t))

	user, err := f.CreateUser()
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Len(t, user.AccessToken, 64)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DemoPassword)))
}

func TestSeeder_SeedUsersAndAds(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	require.NoError(t, s.SeedAds(users, 12))

	var count int64
	require.NoError(t, db.Model(&models.Ad{}).Count(&count).Error)
	assert.EqualValues(t, 12, count)

	// Round-robin: every user owns at least two ads.
	for _, user := range users {
		var owned int64
		require.NoError(t, db.Model(&models.Ad{}).Where("user_id = ?", user.ID).Count(&owned).Error)
		assert.GreaterOrEqual(t, owned, int64(2))
	}
}

func TestSeeder_ClearAll(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	require.NoError(t, s.SeedAds(users, 4))

	require.NoError(t, s.ClearAll())

	var userCount, adCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Ad{}).Count(&adCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, adCount)
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: demo
users: 3
ads: 6
clean: true
listings:
  - title: Teak sideboard
    type: furniture
    location: Göteborg
    price: 250000
`), 0o600))

	preset, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", preset.Name)
	assert.Equal(t, 3, preset.Users)
	require.Len(t, preset.Listings, 1)
	assert.Equal(t, "Teak sideboard", preset.Listings[0].Title)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestSeeder_ApplyPreset(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	err := s.ApplyPreset(&Preset{
		Name:  "demo",
		Users: 2,
		Ads:   3,
		Listings: []PresetListing{
			{Title: "Teak sideboard", Type: "furniture", Location: "Göteborg", Price: 250000},
		},
	})
	require.NoError(t, err)

	var ad models.Ad
	require.NoError(t, db.Where("title = ?", "Teak sideboard").First(&ad).Error)
	assert.EqualValues(t, 250000, ad.Price)

	var adCount int64
	require.NoError(t, db.Model(&models.Ad{}).Count(&adCount).Error)
	assert.EqualValues(t, 4, adCount)
}
