package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/profile"
	"github.com/mauv0809/courtside/internal/schedule"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"MIGRATIONS_DIR":    "./migrations",
		"SEED_PROFILES":     "200",
		"SEED_RADIUS_KM":    "10",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	value, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	config["DB_NAME"] = value
	return config
}

var santiago = geo.Point{Lat: -33.4489, Lng: -70.6693}

func seedCourts() []*court.Court {
	weekend := schedule.DefaultAvailability()
	weekend[schedule.Saturday] = schedule.DayWindow{Enabled: true, Start: "09:00", End: "20:00"}
	weekend[schedule.Sunday] = schedule.DayWindow{Enabled: false}

	return []*court.Court{
		{
			ID: "court-central", Name: "Cancha Central", Sport: "padel", OwnerID: "owner-1",
			PricePerHour: 10000, Capacity: 4, IsActive: true,
			Location:     geo.At(santiago.Lat, santiago.Lng, "Av. Providencia 123"),
			Availability: schedule.DefaultAvailability(),
		},
		{
			ID: "court-parque", Name: "Club Parque", Sport: "tenis", OwnerID: "owner-2",
			PricePerHour: 14000, Capacity: 4, IsActive: true,
			Location:     geo.At(-33.4172, -70.6062, "Av. Kennedy 5600"),
			Availability: weekend,
		},
		{
			ID: "court-estadio", Name: "Estadio Norte", Sport: "futbol", OwnerID: "owner-3",
			PricePerHour: 45000, Capacity: 14, IsActive: true,
			Location:     geo.At(-33.3900, -70.6500, "Av. Independencia 900"),
			Availability: schedule.DefaultAvailability(),
		},
	}
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	ctx := context.Background()

	courts := court.New(db)
	for _, c := range seedCourts() {
		if err := courts.UpsertCourt(ctx, c); err != nil {
			log.Fatalf("Failed to upsert court %s: %s", c.ID, err)
		}
	}
	log.Info("Ensured seed courts exist.")

	numProfiles, err := strconv.Atoi(cfg["SEED_PROFILES"])
	if err != nil {
		log.Fatalf("Invalid SEED_PROFILES: %s", err)
	}
	maxRadius, err := strconv.ParseFloat(cfg["SEED_RADIUS_KM"], 64)
	if err != nil {
		log.Fatalf("Invalid SEED_RADIUS_KM: %s", err)
	}

	log.Info("Preparing to insert profiles...", "total", numProfiles)
	startTime := time.Now()
	profiles := profile.New(db)
	for i := 0; i < numProfiles; i++ {
		radius := 1 + rand.Float64()*(maxRadius-1)
		c := profile.Candidate{
			UserID:               uuid.NewString(),
			DisplayName:          fmt.Sprintf("Seeder Player %d", i+1),
			NotificationRadiusKm: &radius,
			NotificationsEnabled: rand.Intn(10) > 0,
		}
		// About one in twenty profiles has not shared a location.
		if rand.Intn(20) > 0 {
			c.Location = geo.At(
				santiago.Lat+(rand.Float64()-0.5)*0.3,
				santiago.Lng+(rand.Float64()-0.5)*0.3,
				"",
			)
		}
		if err := profiles.UpsertProfile(ctx, c); err != nil {
			log.Fatalf("Failed to insert profile %s: %s", c.UserID, err)
		}
	}

	log.Info("Successfully inserted all profiles.", "duration", time.Since(startTime))
}
