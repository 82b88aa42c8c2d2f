package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skybook/internal/flights"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/users"
	"skybook/pkg/cache"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db            *database.DB
	flightService flights.Service
}

func main() {
	fmt.Println("🌱 Starting Skybook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	flightRepo := flights.NewRepository(db.GetPostgreSQL())
	seeder := &Seeder{
		db:            db,
		flightService: flights.NewService(flightRepo, cache.NewService(db.GetRedis()), cfg.SeatMap),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"seats",
		"flights",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedFlights(ctx); err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular users
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		name  string
		email string
		role  users.Role
	}{
		{"Admin User", "admin@skybook.dev", users.RoleAdmin},
		{"Asha Nair", "asha@skybook.dev", users.RoleUser},
		{"Rahul Mehta", "rahul@skybook.dev", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Name:      userData.name,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedFlights creates a small route network. Direct DEL-GOA is priced
// above DEL-BOM-GOA so the route planner has an interesting answer.
func (s *Seeder) SeedFlights(ctx context.Context) error {
	fmt.Println("  ✈️ Seeding flights...")

	departureBase := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)

	flightsData := []struct {
		airline      string
		flightNumber string
		source       string
		destination  string
		hourOffset   int
		durationHrs  int
		price        float64
	}{
		{"IndiGo", "6E-2041", "DEL", "BOM", 0, 2, 4500},
		{"IndiGo", "6E-2188", "BOM", "GOA", 4, 1, 2500},
		{"Air India", "AI-887", "DEL", "GOA", 1, 3, 9500},
		{"Vistara", "UK-995", "BOM", "BLR", 2, 2, 3800},
		{"Vistara", "UK-813", "BLR", "GOA", 6, 1, 2200},
		{"IndiGo", "6E-5119", "GOA", "DEL", 26, 3, 7800},
		{"Air India", "AI-604", "BOM", "DEL", 25, 2, 4700},
	}

	for _, f := range flightsData {
		departure := departureBase.Add(time.Duration(f.hourOffset) * time.Hour)
		req := flights.CreateFlightRequest{
			Airline:       f.airline,
			FlightNumber:  f.flightNumber,
			Source:        f.source,
			Destination:   f.destination,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(f.durationHrs) * time.Hour),
			Price:         f.price,
		}

		snapshot, err := s.flightService.CreateFlight(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create flight %s: %w", f.flightNumber, err)
		}

		fmt.Printf("    ✅ Created flight: %s %s→%s (%d seats)\n",
			f.flightNumber, f.source, f.destination, len(snapshot.Seats))
	}

	return nil
}
