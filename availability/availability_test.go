package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental-webapp/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// staticSource serves a fixed set of bookings, applying the same half-open
// predicate a real store evaluates server-side.
type staticSource struct {
	bookings []model.Booking
}

func (s staticSource) OverlappingBookings(_ context.Context, listingID *primitive.ObjectID, checkIn, checkOut time.Time) ([]model.Booking, error) {
	overlapping := []model.Booking{}
	for _, b := range s.bookings {
		if listingID != nil && b.ListingId != *listingID {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			overlapping = append(overlapping, b)
		}
	}
	return overlapping, nil
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		description  string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		expected     bool
	}{
		{
			description: "partial overlap at the end",
			aStart:      date(2025, 3, 10),
			aEnd:        date(2025, 3, 13),
			bStart:      date(2025, 3, 12),
			bEnd:        date(2025, 3, 15),
			expected:    true,
		},
		{
			description: "existing stay contains the new one",
			aStart:      date(2025, 3, 10),
			aEnd:        date(2025, 3, 20),
			bStart:      date(2025, 3, 12),
			bEnd:        date(2025, 3, 14),
			expected:    true,
		},
		{
			description: "new stay contains the existing one",
			aStart:      date(2025, 3, 12),
			aEnd:        date(2025, 3, 14),
			bStart:      date(2025, 3, 10),
			bEnd:        date(2025, 3, 20),
			expected:    true,
		},
		{
			description: "identical stays",
			aStart:      date(2025, 3, 10),
			aEnd:        date(2025, 3, 13),
			bStart:      date(2025, 3, 10),
			bEnd:        date(2025, 3, 13),
			expected:    true,
		},
		{
			description: "new check-in equals existing check-out",
			aStart:      date(2025, 3, 10),
			aEnd:        date(2025, 3, 13),
			bStart:      date(2025, 3, 13),
			bEnd:        date(2025, 3, 15),
			expected:    false,
		},
		{
			description: "new check-out equals existing check-in",
			aStart:      date(2025, 3, 13),
			aEnd:        date(2025, 3, 15),
			bStart:      date(2025, 3, 10),
			bEnd:        date(2025, 3, 13),
			expected:    false,
		},
		{
			description: "disjoint stays",
			aStart:      date(2025, 3, 1),
			aEnd:        date(2025, 3, 3),
			bStart:      date(2025, 3, 10),
			bEnd:        date(2025, 3, 13),
			expected:    false,
		},
	}

	for _, test := range tests {
		assert.Equalf(t, test.expected,
			Overlaps(test.aStart, test.aEnd, test.bStart, test.bEnd), test.description)
		// the predicate is symmetric in the two intervals
		assert.Equalf(t, test.expected,
			Overlaps(test.bStart, test.bEnd, test.aStart, test.aEnd), test.description)
	}
}

func TestDay(t *testing.T) {
	late := time.Date(2025, 3, 10, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, 3, 10), Day(late))
	assert.Equal(t, date(2025, 3, 10), Day(date(2025, 3, 10)))
}

func TestNights(t *testing.T) {
	assert.Equal(t, uint(3), Nights(date(2025, 3, 10), date(2025, 3, 13)))
	assert.Equal(t, uint(1), Nights(date(2025, 3, 10), date(2025, 3, 11)))
}

func TestHasConflict(t *testing.T) {
	listingId := primitive.NewObjectID()
	otherListingId := primitive.NewObjectID()
	engine := &Engine{Bookings: staticSource{bookings: []model.Booking{
		{Id: primitive.NewObjectID(), ListingId: listingId, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 13)},
	}}}

	conflict, err := engine.HasConflict(context.TODO(), listingId, date(2025, 3, 12), date(2025, 3, 15))
	assert.NoError(t, err)
	assert.True(t, conflict, "overlap on the 12th must conflict")

	conflict, err = engine.HasConflict(context.TODO(), listingId, date(2025, 3, 13), date(2025, 3, 15))
	assert.NoError(t, err)
	assert.False(t, conflict, "back-to-back stay must not conflict")

	conflict, err = engine.HasConflict(context.TODO(), otherListingId, date(2025, 3, 12), date(2025, 3, 15))
	assert.NoError(t, err)
	assert.False(t, conflict, "another listing's calendar is unaffected")
}

func TestConflictingListings(t *testing.T) {
	bookedListing := primitive.NewObjectID()
	freeListing := primitive.NewObjectID()
	engine := &Engine{Bookings: staticSource{bookings: []model.Booking{
		{Id: primitive.NewObjectID(), ListingId: bookedListing, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 13)},
		{Id: primitive.NewObjectID(), ListingId: freeListing, CheckIn: date(2025, 4, 1), CheckOut: date(2025, 4, 5)},
	}}}

	conflicted, err := engine.ConflictingListings(context.TODO(), date(2025, 3, 10), date(2025, 3, 13))
	assert.NoError(t, err)
	assert.Contains(t, conflicted, bookedListing)
	assert.NotContains(t, conflicted, freeListing)

	// same query against unchanged state returns the same set
	again, err := engine.ConflictingListings(context.TODO(), date(2025, 3, 10), date(2025, 3, 13))
	assert.NoError(t, err)
	assert.Equal(t, conflicted, again)
}
