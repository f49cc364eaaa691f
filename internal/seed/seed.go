package seed

import (
	"fmt"
	"log/slog"
	"os"

	"loppis/internal/middleware"
	"loppis/internal/models"

	"gorm.io/gorm"
	"gopkg.in/yaml.v3"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seedable data. Ads go first; the users table is
// referenced by ads only informally, but deleting owners before their ads
// would leave orphans visible mid-run.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Ad{}).Error; err != nil {
		return fmt.Errorf("clear ads: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	middleware.Logger.Info("cleared existing seed data")
	return nil
}

// SeedUsers creates n users and returns them.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	middleware.Logger.Info("seeded users", slog.Int("count", len(users)))
	return users, nil
}

// SeedAds spreads n ads across the given owners round-robin.
func (s *Seeder) SeedAds(users []*models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to own ads")
	}
	for i := 0; i < n; i++ {
		owner := users[i%len(users)]
		if _, err := s.factory.CreateAd(owner); err != nil {
			return err
		}
	}
	middleware.Logger.Info("seeded ads", slog.Int("count", n))
	return nil
}

// Preset describes a reproducible seed scenario, loadable from YAML.
type Preset struct {
	Name     string          `yaml:"name"`
	Users    int             `yaml:"users"`
	Ads      int             `yaml:"ads"`
	Clean    bool            `yaml:"clean"`
	Listings []PresetListing `yaml:"listings"`
}

// PresetListing is a fixed ad included verbatim by a preset, owned by the
// first seeded user.
type PresetListing struct {
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
}

// LoadPreset reads and validates a preset definition from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}

	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	if preset.Users <= 0 {
		return nil, fmt.Errorf("preset %s: users must be positive", path)
	}
	if preset.Ads < 0 {
		return nil, fmt.Errorf("preset %s: ads must not be negative", path)
	}
	return &preset, nil
}

// ApplyPreset runs a preset: optional cleanup, then users, random ads, and
// the preset's fixed listings.
func (s *Seeder) ApplyPreset(preset *Preset) error {
	middleware.Logger.Info("applying seed preset", slog.String("name", preset.Name))

	if preset.Clean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(preset.Users)
	if err != nil {
		return err
	}
	if err := s.SeedAds(users, preset.Ads); err != nil {
		return err
	}

	for _, listing := range preset.Listings {
		_, err := s.factory.CreateAd(users[0], func(ad *models.Ad) {
			ad.Title = listing.Title
			ad.Type = listing.Type
			ad.Location = listing.Location
			ad.Description = listing.Description
			ad.Price = listing.Price
		})
		if err != nil {
			return err
		}
	}
	return nil
}
