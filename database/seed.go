package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/model"
)

// SeedListings inserts sample listings once, on a fresh database. The count
// guard keeps the routine idempotent across restarts. Samples need an owner,
// so seeding is skipped until at least one user has registered.
func SeedListings(ctx context.Context) error {
	listingCount, err := ListingsCollection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return err
	}
	if listingCount > 0 {
		log.Printf("database already contains %v listings, skipping seed", listingCount)
		return nil
	}

	var host model.UserData
	err = UsersCollection.FindOne(ctx, bson.D{}).Decode(&host)
	if err != nil {
		log.Print("no users found, cannot seed listings without a host")
		return nil
	}

	samples := []model.Listing{
		{
			Title:         "Modern Downtown Loft",
			Description:   "Chic loft in the heart of the city with skyline views.",
			City:          "Lagos",
			PricePerNight: 250,
			PhotoUrls:     []string{"https://placehold.co/600x400/003b46/ffffff?text=NY+Loft+1"},
		},
		{
			Title:         "Cozy Beach Bungalow",
			Description:   "Steps away from the sand. Perfect for a quiet getaway.",
			City:          "Abuja",
			PricePerNight: 180,
			PhotoUrls:     []string{"https://placehold.co/600x400/07575b/ffffff?text=Beach+Bungalow"},
		},
		{
			Title:         "Mountain View Cabin Retreat",
			Description:   "Rustic cabin with stunning views, great for hiking.",
			City:          "Ibadan",
			PricePerNight: 120,
			PhotoUrls:     []string{"https://placehold.co/600x400/c4dfe6/000000?text=Mountain+Cabin"},
		},
		{
			Title:         "Spacious Family Home",
			Description:   "Four bedrooms, fenced yard, ideal for large families.",
			City:          "Kano",
			PricePerNight: 300,
			PhotoUrls:     []string{"https://placehold.co/600x400/66a5ad/ffffff?text=Family+Home"},
		},
		{
			Title:         "Urban Studio with Balcony",
			Description:   "Small but functional studio apartment with a private balcony.",
			City:          "Benue",
			PricePerNight: 150,
			PhotoUrls:     []string{"https://placehold.co/600x400/94b4c4/000000?text=Studio+Balcony"},
		},
		{
			Title:         "Historic Victorian Manor",
			Description:   "Elegantly preserved historic home near the waterfront.",
			City:          "Enugu",
			PricePerNight: 400,
			PhotoUrls:     []string{"https://placehold.co/600x400/1d4044/ffffff?text=Hooliwood+Studio"},
		},
	}

	toInsert := []interface{}{}
	createdAt := time.Now().Format(time.RFC3339)
	for _, sample := range samples {
		sample.Id = primitive.NewObjectID()
		sample.HostId = host.Id
		sample.CreatedAt = createdAt
		toInsert = append(toInsert, sample)
	}

	_, err = ListingsCollection.InsertMany(ctx, toInsert)
	if err != nil {
		return err
	}

	log.Printf("seeded %v sample listings", len(samples))
	return nil
}
