package main

import (
	"fmt"
	"log"
	"time"

	"github.com/xelth-com/pcardgo/internal/config"
	"github.com/xelth-com/pcardgo/internal/database"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/utils"
)

func main() {
	fmt.Println("🌱 P-Card Demo Data Seeder")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.PurchaseRequest{},
		&models.ApprovalSignature{},
		&models.Receipt{},
		&models.CategoryBudget{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	// Check if data already exists
	var userCount int64
	db.Model(&models.UserAuth{}).Count(&userCount)
	if userCount > 0 {
		fmt.Printf("⚠️  Database already has %d users. Clear it first? (y/N): ", userCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE approval_signatures CASCADE")
		db.Exec("TRUNCATE TABLE receipts CASCADE")
		db.Exec("TRUNCATE TABLE purchase_requests CASCADE")
		db.Exec("TRUNCATE TABLE category_budgets CASCADE")
		db.Exec("TRUNCATE TABLE user_auths CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")

	// 1. Users
	fmt.Println("👤 Creating users...")
	password, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	users := []models.UserAuth{
		{Username: "admin", Email: "admin@example.com", Name: "System Admin", Department: "IT", Role: models.RoleAdmin, Password: password},
		{Username: "jdoe", Email: "jdoe@example.com", Name: "Jordan Doe", Department: "Marketing", Role: models.RoleEmployee, Password: password},
		{Username: "mraman", Email: "merrill.raman@example.com", Name: "Merrill Raman", Department: "Finance", Role: models.RoleApprover, Password: password},
		{Username: "rgreene", Email: "ryan.greene@example.com", Name: "Ryan Greene", Department: "Finance", Role: models.RoleApprover, Password: password},
		{Username: "ceo", Email: "ceo@example.com", Name: "CEO", Department: "Executive", Role: models.RoleApprover, Password: password},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create user %s: %v", users[i].Username, err)
		}
		fmt.Printf("   %s (%s)\n", users[i].Name, users[i].Role)
	}

	// 2. Category budgets for the current fiscal year
	fmt.Println("💰 Creating category budgets...")
	year := time.Now().Year()
	budgets := []models.CategoryBudget{
		{Category: "Office Supplies", FiscalYear: year, BudgetAmount: 25000},
		{Category: "Software", FiscalYear: year, BudgetAmount: 60000},
		{Category: "Marketing", FiscalYear: year, BudgetAmount: 40000},
		{Category: "Travel - Ground", FiscalYear: year, BudgetAmount: 15000},
	}
	for i := range budgets {
		if err := db.Create(&budgets[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create budget %s: %v", budgets[i].Category, err)
		}
		fmt.Printf("   %s: $%.0f\n", budgets[i].Category, budgets[i].BudgetAmount)
	}

	// 3. Sample purchase requests in various workflow states
	fmt.Println("🛒 Creating purchase requests...")
	employee := users[1]
	now := time.Now()
	earlier := now.Add(-48 * time.Hour)

	requests := []models.PurchaseRequest{
		{
			VendorName:     "Staples",
			CardholderName: employee.Name,
			Category:       "Office Supplies",
			PurchaseAmount: 180.00,
			TaxAmount:      14.40,
			ShippingAmount: 0,
			Justification:  "Printer paper and toner for Q3",
			Status:         models.RequestStatusApproved,
			SubmittedBy:    &employee.ID,
			SubmittedAt:    &earlier,
			ResolvedAt:     &earlier,
		},
		{
			VendorName:             "Figma",
			CardholderName:         employee.Name,
			Category:               "Software",
			PurchaseAmount:         960.00,
			TaxAmount:              0,
			ShippingAmount:         0,
			IsSoftwareSubscription: true,
			ITLicenseConfirmed:     true,
			IsPreferredVendor:      true,
			Justification:          "Annual design tool licenses for the marketing team",
			Status:                 models.RequestStatusPending,
			SubmittedBy:            &employee.ID,
			SubmittedAt:            &earlier,
		},
		{
			VendorName:     "Acme Print Co",
			CardholderName: employee.Name,
			Category:       "Marketing",
			PurchaseAmount: 3200.00,
			TaxAmount:      256.00,
			ShippingAmount: 45.00,
			Justification:  "Trade show booth materials",
			Status:         models.RequestStatusDraft,
			SubmittedBy:    &employee.ID,
		},
	}
	for i := range requests {
		requests[i].ComputeTotal()
		if err := db.Create(&requests[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create request for %s: %v", requests[i].VendorName, err)
		}
		fmt.Printf("   %s: $%.2f (%s)\n", requests[i].VendorName, requests[i].TotalAmount, requests[i].Status)
	}

	fmt.Println()
	fmt.Println("✅ Demo data created. All accounts use password 'demo1234'.")
}
