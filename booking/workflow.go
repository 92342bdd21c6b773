// Package booking orchestrates the creation of reservations: request
// validation, conflict check through the availability engine, price
// computation and atomic persistence.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/availability"
	"rental-webapp/model"
)

var (
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrPastBooking      = errors.New("check-out date must be in the future")
	ErrListingNotFound  = errors.New("listing not found")
	ErrBookingConflict  = errors.New("listing is already booked for the requested dates")
	// ErrPersistence covers store write failures, including a lost race
	// against a concurrent overlapping insert. Retrying restarts the whole
	// workflow, never resumes mid-way.
	ErrPersistence = errors.New("booking could not be persisted")
)

// ListingSource resolves listings for the workflow. Implementations return
// ErrListingNotFound for unknown ids.
type ListingSource interface {
	GetListing(ctx context.Context, id primitive.ObjectID) (model.Listing, error)
}

// ReservationStore persists bookings. InsertBooking must atomically reject a
// booking that overlaps one already stored for the same listing, so the
// non-overlap invariant holds even when two requests race past the conflict
// check.
type ReservationStore interface {
	availability.BookingSource
	InsertBooking(ctx context.Context, newBooking model.Booking) error
	BookingsForUser(ctx context.Context, guestID primitive.ObjectID) ([]model.GuestBooking, error)
}

type Workflow struct {
	Listings     ListingSource
	Reservations ReservationStore
	Engine       *availability.Engine
	Now          func() time.Time
}

func NewWorkflow(listings ListingSource, reservations ReservationStore) *Workflow {
	return &Workflow{
		Listings:     listings,
		Reservations: reservations,
		Engine:       &availability.Engine{Bookings: reservations},
		Now:          time.Now,
	}
}

// CreateBooking validates the requested stay, checks the listing calendar and
// persists the reservation with its computed total price. Steps before the
// insert are pure reads, so a failed booking leaves no partial state behind.
func (wf *Workflow) CreateBooking(
	ctx context.Context,
	listingID primitive.ObjectID,
	guestID primitive.ObjectID,
	checkIn time.Time,
	checkOut time.Time,
	guests uint,
) (model.Booking, error) {
	checkIn = availability.Day(checkIn)
	checkOut = availability.Day(checkOut)

	if !checkIn.Before(checkOut) {
		return model.Booking{}, ErrInvalidDateRange
	}
	// The end of the stay has to be in the future. Same-day check-in is
	// fine, a check-out today or earlier is not.
	if !checkOut.After(availability.Day(wf.Now())) {
		return model.Booking{}, ErrPastBooking
	}

	listing, err := wf.Listings.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return model.Booking{}, ErrListingNotFound
		}
		return model.Booking{}, fmt.Errorf("resolving listing %v: %w", listingID.Hex(), err)
	}

	conflict, err := wf.Engine.HasConflict(ctx, listingID, checkIn, checkOut)
	if err != nil {
		return model.Booking{}, fmt.Errorf("conflict check for listing %v: %w", listingID.Hex(), err)
	}
	if conflict {
		return model.Booking{}, ErrBookingConflict
	}

	nights := availability.Nights(checkIn, checkOut)
	newBooking := model.Booking{
		Id:         primitive.NewObjectID(),
		Reference:  uuid.NewString(),
		ListingId:  listingID,
		GuestId:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: float64(nights) * listing.PricePerNight,
		BookedAt:   wf.Now().Format(time.RFC3339),
	}

	if err := wf.Reservations.InsertBooking(ctx, newBooking); err != nil {
		return model.Booking{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return newBooking, nil
}

// BookingsForUser returns the guest's booking history, each entry joined with
// a read-only projection of its listing.
func (wf *Workflow) BookingsForUser(ctx context.Context, guestID primitive.ObjectID) ([]model.GuestBooking, error) {
	return wf.Reservations.BookingsForUser(ctx, guestID)
}
