// Package seed creates demo and test data for the marketplace database.
// Intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"loppis/internal/auth"
	"loppis/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password shared by all seeded accounts.
const DemoPassword = "password123"

var (
	adTypes = []string{
		"furniture", "plants", "tools", "electronics", "clothing",
		"books", "kitchenware", "sports", "toys", "bikes",
	}

	adConditions = []string{
		"like new", "good condition", "well used", "needs some love",
		"barely used", "vintage",
	}

	adItems = []string{
		"teak sideboard", "monstera cutting", "garden spade", "record player",
		"wool sweater", "cookbook collection", "cast iron pan", "kettlebell set",
		"wooden train set", "city bike", "bookshelf", "desk lamp",
		"ceramic vases", "espresso machine", "camping tent", "sewing machine",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a faked identity, a real bcrypt hash of
// DemoPassword, and a freshly issued access token.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	token, err := auth.NewAccessToken()
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	name := fmt.Sprintf("%s %s %d", gofakeit.FirstName(), gofakeit.LastName(), f.r.Intn(10000))
	user := &models.User{
		Name:        name,
		Email:       fmt.Sprintf("%s%d@%s", gofakeit.Username(), f.r.Intn(100000), gofakeit.DomainName()),
		Password:    string(hash),
		AccessToken: token,
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreateAd persists an ad owned by user, populated with marketplace-flavored
// content and a created_at spread over the last 90 days.
func (f *Factory) CreateAd(user *models.User, overrides ...func(*models.Ad)) (*models.Ad, error) {
	item := adItems[f.r.Intn(len(adItems))]
	condition := adConditions[f.r.Intn(len(adConditions))]
	title := strings.ToUpper(item[:1]) + item[1:]

	ad := &models.Ad{
		UserID:      user.ID,
		Title:       title,
		Type:        adTypes[f.r.Intn(len(adTypes))],
		Location:    gofakeit.City(),
		Description: fmt.Sprintf("%s, %s. %s", title, condition, gofakeit.Sentence(10)),
		Price:       int64(f.r.Intn(5000)) * 100,
		CreatedAt:   randomPastTime(f.r, 90),
	}
	if f.r.Intn(3) == 0 {
		ad.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(ad)
	}

	if err := f.db.Create(ad).Error; err != nil {
		return nil, fmt.Errorf("create seed ad: %w", err)
	}
	return ad, nil
}

func randomPastTime(r *rand.Rand, maxDays int) time.Time {
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
