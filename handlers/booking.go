package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/booking"
	"rental-webapp/errors"
)

type createBookingRequest struct {
	ListingId string `json:"listing_id" validate:"required"`
	CheckIn   string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests    uint   `json:"number_of_guests" validate:"required,gte=1"`
}

func CreateBooking(c *fiber.Ctx) error {
	req := new(createBookingRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for booking parameters: %v", err))
	}
	if err := validate.Struct(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for booking parameters: %v", err))
	}

	listingId, idErr := primitive.ObjectIDFromHex(req.ListingId)
	if idErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("malformed listing id %v", req.ListingId))
	}

	guestId, authErr := requesterId(c)
	if authErr != nil {
		return errors.RaisePermissionsError(c, fmt.Sprint(authErr))
	}

	// Formats already validated above.
	checkIn, _ := time.Parse(dateLayout, req.CheckIn)
	checkOut, _ := time.Parse(dateLayout, req.CheckOut)

	newBooking, err := bookings.CreateBooking(c.Context(), listingId, guestId, checkIn, checkOut, req.Guests)
	if err != nil {
		switch {
		case stderrors.Is(err, booking.ErrInvalidDateRange), stderrors.Is(err, booking.ErrPastBooking):
			return errors.RaiseBadRequestError(c, fmt.Sprint(err))
		case stderrors.Is(err, booking.ErrListingNotFound):
			return errors.RaiseNotFoundError(c, fmt.Sprintf("listing %v not found", req.ListingId))
		case stderrors.Is(err, booking.ErrBookingConflict):
			return errors.RaiseConflictError(c, fmt.Sprint(err))
		case stderrors.Is(err, booking.ErrPersistence):
			return errors.RaiseServiceUnavailableError(c, fmt.Sprint(err))
		default:
			return errors.RaiseInternalServerError(c, fmt.Sprint(err))
		}
	}

	newBookingJson, jsonErr := json.MarshalIndent(newBooking, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.Status(fiber.StatusCreated).SendString(string(newBookingJson))
}

// GetMyBookings returns the authenticated guest's booking history with
// listing details attached.
func GetMyBookings(c *fiber.Ctx) error {
	guestId, authErr := requesterId(c)
	if authErr != nil {
		return errors.RaisePermissionsError(c, fmt.Sprint(authErr))
	}

	history, err := bookings.BookingsForUser(c.Context(), guestId)
	if err != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", err))
	}

	historyJson, jsonErr := json.MarshalIndent(history, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(historyJson))
}
