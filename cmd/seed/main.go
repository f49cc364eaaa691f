// Command seed populates the database with demo users and ads.
package main

import (
	"flag"
	"log"

	"loppis/internal/config"
	"loppis/internal/database"
	"loppis/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numAds := flag.Int("ads", 100, "Number of ads to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetPath := flag.String("preset", "", "Path to a YAML preset file (overrides other flags)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *presetPath != "" {
		preset, err := seed.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		if err := s.ApplyPreset(preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
		log.Printf("Preset %q applied.", preset.Name)
		return
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedAds(users, *numAds); err != nil {
		log.Fatalf("Ad seeding failed: %v", err)
	}

	log.Printf("Done: %d users, %d ads. All accounts use the password %q.", *numUsers, *numAds, seed.DemoPassword)
}
