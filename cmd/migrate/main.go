package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/domain/shared"
	"github.com/sheeto/backend/internal/infrastructure/config"
	"github.com/sheeto/backend/internal/infrastructure/logger"
	"github.com/sheeto/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		logLevel      string
		seed          bool
		adminEmail    string
		adminName     string
		adminPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seed, "seed", false, "Insert demo catalog data after migrating")
	flag.StringVar(&adminEmail, "admin-email", "", "Create an admin account with this email")
	flag.StringVar(&adminName, "admin-name", "Admin", "Name for the admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the admin account")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migrated")

	ctx := context.Background()

	if adminEmail != "" {
		if adminPassword == "" {
			log.Fatal("admin-password is required when admin-email is set")
		}
		if err := createAdmin(ctx, db, adminEmail, adminName, adminPassword); err != nil {
			log.Fatal("Failed to create admin account", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("email", adminEmail))
	}

	if seed {
		count, err := seedCatalog(ctx, db)
		if err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
		log.Info("Catalog seeded", zap.Int("products", count))
	}
}

func createAdmin(ctx context.Context, db *persistence.Database, email, name, password string) error {
	userRepo := persistence.NewGormUserRepository(db.DB)

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	admin, err := identity.NewAdmin(email, name, password)
	if err != nil {
		return err
	}
	return userRepo.Save(ctx, admin)
}

// seedCatalog inserts a small demo catalog. Skipped when the catalog
// already has products, so re-running migrate never duplicates data.
func seedCatalog(ctx context.Context, db *persistence.Database) (int, error) {
	productRepo := persistence.NewGormProductRepository(db.DB)

	existing, err := productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	demo := []struct {
		name     string
		category string
		price    int64
		stock    int
	}{
		{"Desk Mat XL", "Desk Mats", 25000, 40},
		{"Single Monitor Arm", "Monitor Arms", 45000, 15},
		{"Dual Monitor Arm", "Monitor Arms", 80000, 8},
		{"Under-Desk Cable Tray", "Cable Management", 15000, 30},
		{"Cable Sleeve Kit", "Cable Management", 8000, 50},
		{"Headphone Hook", "Organizers", 9000, 25},
		{"Monitor Light Bar", "Lighting", 35000, 12},
		{"RGB Strip 2m", "Lighting", 18000, 20},
	}

	for _, d := range demo {
		product, err := catalog.NewProduct(d.name, "", d.category, decimal.NewFromInt(d.price), d.stock)
		if err != nil {
			return 0, err
		}
		if err := productRepo.Save(ctx, product); err != nil {
			return 0, err
		}
	}
	return len(demo), nil
}
