package main

import (
	"context"
	"log"
	"time"

	"inventra/internal/config"
	"inventra/internal/db"
	"inventra/internal/model"
	"inventra/internal/repository"
)

// Development seeder: inserts a small consistent data set through the
// repositories so every collection has something to query against.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer store.Close(ctx)
	log.Println("Connected to store")

	categoryRepo := repository.NewCategoryRepository(store.Database)
	supplierRepo := repository.NewSupplierRepository(store.Database)
	productRepo := repository.NewProductRepository(store.Database, categoryRepo)
	locationRepo := repository.NewLocationRepository(store.Database)

	categoryIDs, err := categoryRepo.BulkCreate(ctx, []model.Category{
		{Name: "Electronics", Description: "Consumer electronics and accessories"},
		{Name: "Office Supplies", Description: "Everyday office consumables"},
		{Name: "Furniture"},
	})
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Seeded %d categories", len(categoryIDs))

	supplierIDs, err := supplierRepo.BulkCreate(ctx, []model.Supplier{
		{
			Name:        "Acme Wholesale",
			ContactInfo: "Sales desk, Mon-Fri",
			Email:       "sales@acmewholesale.example",
			Address:     "12 Dock Road, Rotterdam",
			Phone:       "+31-10-5550100",
		},
		{
			Name:        "Northline Trading",
			ContactInfo: "Account manager: J. Berg",
			Email:       "orders@northline.example",
			Address:     "88 Harbour Street, Oslo",
			Phone:       "+47-22-555-020",
		},
	})
	if err != nil {
		log.Fatalf("Failed to seed suppliers: %v", err)
	}
	log.Printf("Seeded %d suppliers", len(supplierIDs))

	productIDs, err := productRepo.BulkCreate(ctx, []model.Product{
		{
			Name:        "Wireless Mouse",
			Description: "2.4GHz wireless mouse, USB receiver",
			Price:       19.99,
			Quantity:    120,
			CategoryID:  categoryIDs[0],
			SupplierID:  supplierIDs[0],
			SKU:         "EL-MOUSE-001",
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless, brown switches",
			Price:       74.50,
			Quantity:    45,
			CategoryID:  categoryIDs[0],
			SupplierID:  supplierIDs[0],
			SKU:         "EL-KEYB-002",
		},
		{
			Name:        "A4 Paper, 500 sheets",
			Description: "80gsm multipurpose paper",
			Price:       5.25,
			Quantity:    800,
			CategoryID:  categoryIDs[1],
			SupplierID:  supplierIDs[1],
			SKU:         "OF-PAPR-001",
		},
		{
			Name:        "Standing Desk",
			Description: "Electric height-adjustable, 140x70cm",
			Price:       399.00,
			Quantity:    12,
			CategoryID:  categoryIDs[2],
			SupplierID:  supplierIDs[1],
			SKU:         "FU-DESK-001",
		},
	})
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("Seeded %d products", len(productIDs))

	locationID, err := locationRepo.Create(ctx, &model.Location{
		Name:       "Central Warehouse",
		Address:    "1 Depot Lane",
		City:       "Utrecht",
		State:      "UT",
		Country:    "NL",
		PostalCode: "3511AA",
	})
	if err != nil {
		log.Fatalf("Failed to seed location: %v", err)
	}
	log.Printf("Seeded location %s", locationID.Hex())

	log.Println("Seed completed")
}
