package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedProcedures contains a starter set of common TUSS procedures
var SeedProcedures = []models.Procedure{
	{
		TUSSCode:  "30715016",
		Name:      "Artroplastia total de quadril",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "30726053",
		Name:      "Artroplastia total de joelho",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "31003079",
		Name:      "Colecistectomia videolaparoscópica",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "31005497",
		Name:      "Herniorrafia inguinal unilateral",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "30912016",
		Name:      "Facectomia com implante de lente intraocular",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "30602246",
		Name:      "Septoplastia",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "31403212",
		Name:      "Histerectomia total videolaparoscópica",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		TUSSCode:  "30101514",
		Name:      "Artrodese de coluna lombar",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
}

func main() {
	fmt.Println("🌱 Seeding TUSS procedure catalog...")

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize MongoDB
	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.ProcedureCollection)

	// Check if the catalog is already populated
	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count existing procedures: %v", err)
	}

	if count > 0 {
		fmt.Printf("⚠️  Found %d existing procedures. Do you want to replace them? (y/N): ", count)
		var response string
		_, err := fmt.Scanln(&response)
		if err != nil {
			fmt.Println("❌ Error reading input")
			return
		}
		if response != "y" && response != "Y" {
			fmt.Println("❌ Seeding cancelled")
			return
		}

		result, err := collection.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatalf("Failed to delete existing procedures: %v", err)
		}
		fmt.Printf("🗑️  Deleted %d existing procedures\n", result.DeletedCount)
	}

	docs := make([]interface{}, len(SeedProcedures))
	for i, procedure := range SeedProcedures {
		docs[i] = procedure
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to insert procedures: %v", err)
	}

	fmt.Printf("✅ Successfully seeded %d procedures:\n", len(result.InsertedIDs))
	for _, procedure := range SeedProcedures {
		fmt.Printf("  ✓ [%s] %s\n", procedure.TUSSCode, procedure.Name)
	}

	fmt.Println("\n🎉 Seeding completed successfully!")
}
