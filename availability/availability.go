// Package availability decides whether a requested stay collides with the
// bookings already on a listing's calendar. Every decision re-reads persisted
// state; nothing is cached between calls, so concurrent replicas of the
// service all see the same source of truth.
package availability

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/model"
)

// BookingSource reads persisted bookings. A nil listingID means bookings for
// all listings. Implementations are expected to evaluate the overlap
// predicate server-side rather than returning the whole collection.
type BookingSource interface {
	OverlappingBookings(ctx context.Context, listingID *primitive.ObjectID, checkIn, checkOut time.Time) ([]model.Booking, error)
}

type Engine struct {
	Bookings BookingSource
}

// Day truncates a timestamp to UTC midnight. All calendar comparisons in the
// engine are date-only.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Stays that touch at a boundary share a turnover
// day and do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Nights is the ceiling of the whole-day difference between check-in and
// check-out.
func Nights(checkIn, checkOut time.Time) uint {
	return uint(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// HasConflict reports whether at least one existing booking for the listing
// overlaps the requested [checkIn, checkOut) window.
func (e *Engine) HasConflict(ctx context.Context, listingID primitive.ObjectID, checkIn, checkOut time.Time) (bool, error) {
	conflicts, err := e.Bookings.OverlappingBookings(ctx, &listingID, Day(checkIn), Day(checkOut))
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// ConflictingListings returns the ids of every listing holding at least one
// booking that overlaps the window. Search excludes this set.
func (e *Engine) ConflictingListings(ctx context.Context, checkIn, checkOut time.Time) (map[primitive.ObjectID]struct{}, error) {
	conflicts, err := e.Bookings.OverlappingBookings(ctx, nil, Day(checkIn), Day(checkOut))
	if err != nil {
		return nil, err
	}

	listings := make(map[primitive.ObjectID]struct{}, len(conflicts))
	for _, conflict := range conflicts {
		listings[conflict.ListingId] = struct{}{}
	}
	return listings, nil
}
