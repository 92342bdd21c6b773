package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/booking"
)

var validate = validator.New()

var bookings *booking.Workflow

// Init wires the handlers to the booking workflow. Called once from main
// after the database is up.
func Init(workflow *booking.Workflow) {
	bookings = workflow
}

func GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "service is up", "data": nil})
}

// requesterId extracts the authenticated user id from the JWT that the
// authorize middleware stored in the request context.
func requesterId(c *fiber.Ctx) (primitive.ObjectID, error) {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("no identity attached to the request")
	}
	claims := token.Claims.(jwt.MapClaims)
	sub, ok := claims["sub"].(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("token carries no subject claim")
	}
	return primitive.ObjectIDFromHex(sub)
}
