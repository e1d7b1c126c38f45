package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sweetdelights/backend/internal/auth"
	"github.com/sweetdelights/backend/internal/config"
	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/models"
	"github.com/sweetdelights/backend/internal/store"
)

var (
	seedUsers     int
	seedPurchases int
	seedDays      int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo data",
	Long: `Creates an admin account, demo customers, a sweet catalog and a
purchase history spread over the configured number of days, so the
customer analytics dashboard has something to show.

The admin account is admin@sweetdelights.shop with password admin123.
Demo data is generated from a fixed random seed, so repeated runs on a
fresh database produce the same history.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedUsers, "users", 8, "Number of demo customers")
	seedCmd.Flags().IntVar(&seedPurchases, "purchases", 200, "Number of ledger rows to generate")
	seedCmd.Flags().IntVar(&seedDays, "days", 60, "Spread purchases over this many days")
}

var demoCatalog = []struct {
	name     string
	category string
	price    string
	stock    int
}{
	{"Ladoo", "mithai", "10.00", 500},
	{"Barfi", "mithai", "20.00", 400},
	{"Kaju Katli", "premium", "50.00", 300},
	{"Jalebi", "fried", "15.00", 450},
	{"Rasgulla", "bengali", "25.00", 350},
	{"Gulab Jamun", "fried", "18.00", 400},
	{"Peda", "mithai", "12.00", 380},
	{"Soan Papdi", "flaky", "22.00", 260},
	{"Mysore Pak", "premium", "35.00", 240},
	{"Rasmalai", "bengali", "30.00", 220},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	users := store.NewUserStore(db)
	sweets := store.NewSweetStore(db)

	fmt.Println("Creating accounts...")
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	if _, err := users.Create("Shop Admin", "admin@sweetdelights.shop", adminHash, models.RoleAdmin); err != nil && err != store.ErrDuplicate {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	customerHash, err := auth.HashPassword("customer123")
	if err != nil {
		return err
	}
	customers := make([]*models.User, 0, seedUsers)
	for i := 1; i <= seedUsers; i++ {
		email := fmt.Sprintf("customer%d@example.com", i)
		u, err := users.Create(fmt.Sprintf("Customer %d", i), email, customerHash, models.RoleUser)
		if err == store.ErrDuplicate {
			u, err = users.GetByEmail(email)
		}
		if err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		customers = append(customers, u)
	}

	fmt.Println("Creating catalog...")
	catalog := make([]*models.Sweet, 0, len(demoCatalog))
	for _, entry := range demoCatalog {
		price, err := decimal.NewFromString(entry.price)
		if err != nil {
			return err
		}
		name, category, stock := entry.name, entry.category, entry.stock
		sw, err := sweets.Create(store.SweetInput{
			Name:     &name,
			Category: &category,
			Price:    &price,
			Quantity: &stock,
		}, "")
		if err == store.ErrDuplicate {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create sweet %s: %w", name, err)
		}
		catalog = append(catalog, sw)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("catalog already seeded; run migrate --drop-first for a fresh start")
	}

	fmt.Printf("Writing %d ledger rows over %d days...\n", seedPurchases, seedDays)
	rng := rand.New(rand.NewSource(42))
	bar := progressbar.Default(int64(seedPurchases))
	now := time.Now().UTC()

	for i := 0; i < seedPurchases; i++ {
		buyer := customers[rng.Intn(len(customers))]
		sw := catalog[rng.Intn(len(catalog))]
		quantity := rng.Intn(4) + 1
		purchasedAt := now.
			AddDate(0, 0, -rng.Intn(seedDays)).
			Add(-time.Duration(rng.Intn(12)) * time.Hour)

		_, err := db.Exec(`
			INSERT INTO purchases (id, user_id, sweet_id, quantity, price_at_purchase, purchased_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), buyer.ID, sw.ID, quantity, sw.Price.StringFixed(2), purchasedAt)
		if err != nil {
			return fmt.Errorf("failed to insert purchase: %w", err)
		}

		_ = bar.Add(1)
	}

	fmt.Println("Demo data ready.")
	return nil
}
