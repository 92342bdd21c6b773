package router

import (
	"rental-webapp/handlers"
	"rental-webapp/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	api.Get("/health", handlers.GetHealth)

	//Identity
	api.Post("/users/register", handlers.Register)
	api.Post("/login", handlers.Login)

	//Listings
	listing := api.Group("/listings")
	listing.Get("/", handlers.GetListings)
	listing.Get("/:id", handlers.GetListing)
	listing.Post("/", middleware.Authorize(), handlers.CreateListing)

	//Bookings
	bookingApi := api.Group("/bookings", middleware.Authorize())
	bookingApi.Post("/", handlers.CreateBooking)
	bookingApi.Get("/", handlers.GetMyBookings)
}
