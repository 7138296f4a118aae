package main

import (
	"fmt"
	"log"
	"time"

	"taxibe/internal/cooperatives"
	"taxibe/internal/layout"
	"taxibe/internal/shared/config"
	"taxibe/internal/shared/database"
	"taxibe/internal/trips"
	"taxibe/internal/users"
	"taxibe/internal/vehicles"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting TaxiBe Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"seat_reservations",
		"bookings",
		"trips",
		"vehicles",
		"cooperatives",
		"users",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	coops, err := s.seedCooperatives()
	if err != nil {
		return err
	}
	vans, err := s.seedVehicles(coops)
	if err != nil {
		return err
	}
	return s.seedTrips(vans)
}

func (s *Seeder) seedUsers() error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{
			FirstName: "Admin",
			LastName:  "TaxiBe",
			Email:     "admin@taxibe.mg",
			Password:  string(password),
			Phone:     "0341234567",
			Role:      users.RoleAdmin,
		},
		{
			FirstName: "Hery",
			LastName:  "Rakoto",
			Email:     "hery@example.mg",
			Password:  string(password),
			Phone:     "0331112233",
			Role:      users.RoleUser,
		},
		{
			FirstName: "Voahangy",
			LastName:  "Rabe",
			Email:     "voahangy@example.mg",
			Password:  string(password),
			Phone:     "0322334455",
			Role:      users.RoleUser,
		},
	}

	pg := s.db.GetPostgreSQL()
	for i := range seedUsers {
		if err := pg.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seedUsers[i].Email, err)
		}
	}
	fmt.Printf("  👤 %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedCooperatives() ([]cooperatives.Cooperative, error) {
	coops := []cooperatives.Cooperative{
		{Name: "KOFIMANGA", Region: "Analamanga", Phone: "0340011223", IsActive: true},
		{Name: "SOATRANS", Region: "Vakinankaratra", Phone: "0330022334", IsActive: true},
		{Name: "COTISSE", Region: "Atsinanana", Phone: "0320033445", IsActive: true},
	}

	pg := s.db.GetPostgreSQL()
	for i := range coops {
		if err := pg.Create(&coops[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to seed cooperative %s: %w", coops[i].Name, err)
		}
	}
	fmt.Printf("  🏢 %d cooperatives\n", len(coops))
	return coops, nil
}

func (s *Seeder) seedVehicles(coops []cooperatives.Cooperative) ([]vehicles.Vehicle, error) {
	vans := []vehicles.Vehicle{
		{
			CooperativeID: coops[0].ID,
			Marque:        "Mercedes Sprinter",
			Matricule:     "1234 TBA",
			Chauffeur:     "Jean Rasolofo",
			TotalSeats:    20,
			Model:         layout.VanModelSprinter20,
			IsActive:      true,
		},
		{
			CooperativeID: coops[1].ID,
			Marque:        "VW Crafter",
			Matricule:     "5678 TBB",
			Chauffeur:     "Paul Andria",
			TotalSeats:    22,
			Model:         layout.VanModelCrafter22,
			IsActive:      true,
		},
		{
			CooperativeID: coops[2].ID,
			Marque:        "Toyota Hiace",
			Matricule:     "9012 TBC",
			Chauffeur:     "Marc Razafy",
			TotalSeats:    15,
			Model:         layout.VanModelGeneric,
			IsActive:      true,
		},
	}

	pg := s.db.GetPostgreSQL()
	for i := range vans {
		if err := pg.Create(&vans[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to seed vehicle %s: %w", vans[i].Matricule, err)
		}
	}
	fmt.Printf("  🚐 %d vehicles\n", len(vans))
	return vans, nil
}

func (s *Seeder) seedTrips(vans []vehicles.Vehicle) error {
	routes := []struct {
		from, to string
		price    float64
	}{
		{"Antananarivo", "Toamasina", 25000},
		{"Antananarivo", "Antsirabe", 10000},
		{"Antananarivo", "Fianarantsoa", 30000},
	}

	pg := s.db.GetPostgreSQL()
	count := 0
	for i, route := range routes {
		for day := 1; day <= 3; day++ {
			departure := time.Now().AddDate(0, 0, day).Truncate(time.Hour)
			trip := trips.Trip{
				ID:           uuid.New(),
				VehicleID:    vans[i%len(vans)].ID,
				FromCity:     route.from,
				ToCity:       route.to,
				DepartureAt:  departure.Add(7 * time.Hour),
				PricePerSeat: route.price,
				Status:       trips.TripStatusScheduled,
			}
			if err := pg.Create(&trip).Error; err != nil {
				return fmt.Errorf("failed to seed trip %s-%s: %w", route.from, route.to, err)
			}
			count++
		}
	}
	fmt.Printf("  🛣️  %d trips\n", count)
	return nil
}
