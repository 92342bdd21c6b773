package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"rental-webapp/database"
	"rental-webapp/errors"
	"rental-webapp/model"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

// Register creates a new user. The password is hashed here, at the point
// credentials are first accepted, and nowhere else.
func Register(c *fiber.Ctx) error {
	req := new(registerRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for user parameters: %v", err))
	}
	if err := validate.Struct(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for user parameters: %v", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("cannot hash password: %v", err))
	}

	newUser := model.UserData{
		Id:             primitive.NewObjectID(),
		Email:          req.Email,
		HashedPassword: string(hash),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	}

	if writeErr := database.WriteToCollection(newUser, database.UsersCollection); writeErr != nil {
		if mongo.IsDuplicateKeyError(writeErr) {
			return errors.RaiseBadRequestError(c, fmt.Sprintf("user with email %v already exists", req.Email))
		}
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", writeErr))
	}

	newUser.HashedPassword = ""
	newUserJson, jsonErr := json.MarshalIndent(newUser, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.Status(fiber.StatusCreated).SendString(string(newUserJson))
}
