package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"rental-webapp/booking"
	"rental-webapp/database"
	"rental-webapp/handlers"
	"rental-webapp/router"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	if err := database.Init(ctx); err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := database.SeedListings(ctx); err != nil {
		log.Printf("listing seed failed: %v", err)
	}

	handlers.Init(booking.NewWorkflow(database.Store{}, database.Store{}))

	app := fiber.New()

	router.SetupRoutes(app)

	app.Listen(":80")
}
