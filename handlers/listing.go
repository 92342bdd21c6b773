package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/booking"
	"rental-webapp/database"
	"rental-webapp/errors"
	"rental-webapp/model"
)

const dateLayout = "2006-01-02"

type createListingRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	City          string   `json:"city" validate:"required"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	PhotoUrls     []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

func CreateListing(c *fiber.Ctx) error {
	req := new(createListingRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for listing parameters: %v", err))
	}
	if err := validate.Struct(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for listing parameters: %v", err))
	}

	hostId, err := requesterId(c)
	if err != nil {
		return errors.RaisePermissionsError(c, fmt.Sprint(err))
	}

	newListing := model.Listing{
		Id:            primitive.NewObjectID(),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		City:          strings.TrimSpace(req.City),
		PricePerNight: req.PricePerNight,
		PhotoUrls:     req.PhotoUrls,
		HostId:        hostId,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	if newListing.PhotoUrls == nil {
		newListing.PhotoUrls = []string{}
	}

	if writeErr := database.WriteToCollection(newListing, database.ListingsCollection); writeErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", writeErr))
	}

	newListingJson, jsonErr := json.MarshalIndent(newListing, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.Status(fiber.StatusCreated).SendString(string(newListingJson))
}

// GetListings serves search. City filters by case-insensitive substring.
// When both dates are present, listings with an overlapping booking are
// excluded; a single date is treated as no date filter at all.
func GetListings(c *fiber.Ctx) error {
	city := c.Query("city")
	checkInStr := c.Query("check_in_date")
	checkOutStr := c.Query("check_out_date")

	exclude := []primitive.ObjectID{}
	if checkInStr != "" && checkOutStr != "" {
		checkIn, inErr := time.Parse(dateLayout, checkInStr)
		checkOut, outErr := time.Parse(dateLayout, checkOutStr)
		if inErr != nil || outErr != nil {
			return errors.RaiseBadRequestError(c, "dates must be in YYYY-MM-DD format")
		}
		if !checkIn.Before(checkOut) {
			return errors.RaiseBadRequestError(c, "check_out_date must be after check_in_date")
		}

		conflicted, err := bookings.Engine.ConflictingListings(c.Context(), checkIn, checkOut)
		if err != nil {
			return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", err))
		}
		for listingId := range conflicted {
			exclude = append(exclude, listingId)
		}
	}

	listings, dbErr := database.GetListings(c.Context(), city, exclude)
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	listingsJson, jsonErr := json.MarshalIndent(listings, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(listingsJson))
}

func GetListing(c *fiber.Ctx) error {
	listingId, idErr := primitive.ObjectIDFromHex(c.Params("id"))
	if idErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("malformed listing id %v", c.Params("id")))
	}

	listing, err := (database.Store{}).GetListing(c.Context(), listingId)
	if err != nil {
		if stderrors.Is(err, booking.ErrListingNotFound) {
			return errors.RaiseNotFoundError(c, fmt.Sprintf("listing %v not found", c.Params("id")))
		}
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", err))
	}

	listingJson, jsonErr := json.MarshalIndent(listing, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(listingJson))
}
