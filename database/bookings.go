package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"rental-webapp/availability"
	"rental-webapp/booking"
	"rental-webapp/model"
)

// Store is the Mongo-backed implementation of the booking workflow's listing
// and reservation interfaces.
type Store struct{}

func (Store) GetListing(ctx context.Context, id primitive.ObjectID) (model.Listing, error) {
	var listing model.Listing
	err := ListingsCollection.FindOne(ctx, bson.D{primitive.E{Key: "_id", Value: id}}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return model.Listing{}, booking.ErrListingNotFound
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("cannot read listing %v from database: %v", id.Hex(), err)
	}
	return listing, nil
}

// OverlappingBookings evaluates the half-open overlap predicate server-side:
// existing.check_in < checkOut AND existing.check_out > checkIn.
func (Store) OverlappingBookings(ctx context.Context, listingID *primitive.ObjectID, checkIn, checkOut time.Time) ([]model.Booking, error) {
	filter := bson.M{
		"check_in_date":  bson.M{"$lt": checkOut},
		"check_out_date": bson.M{"$gt": checkIn},
	}
	if listingID != nil {
		filter["listing_id"] = *listingID
	}

	cur, err := BookingsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot read bookings from database: %v", err)
	}
	defer cur.Close(ctx)

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("cannot decode bookings: %v", err)
	}

	return bookings, nil
}

// InsertBooking reserves every night of the stay in booking_nights before
// writing the booking itself. The unique (listing_id, night) index rejects
// the second of two racing overlapping inserts; the partial night rows of
// the loser are removed and the error is surfaced so the caller can retry
// the whole workflow.
func (Store) InsertBooking(ctx context.Context, newBooking model.Booking) error {
	nights := []interface{}{}
	for night := availability.Day(newBooking.CheckIn); night.Before(availability.Day(newBooking.CheckOut)); night = night.AddDate(0, 0, 1) {
		nights = append(nights, model.BookingNight{
			Id:        primitive.NewObjectID(),
			ListingId: newBooking.ListingId,
			Night:     night,
			BookingId: newBooking.Id,
		})
	}

	_, err := BookingNightsCollection.InsertMany(ctx, nights)
	if err != nil {
		releaseNights(ctx, newBooking.Id)
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("night already reserved for listing %v", newBooking.ListingId.Hex())
		}
		return fmt.Errorf("cannot reserve nights for listing %v: %v", newBooking.ListingId.Hex(), err)
	}

	_, err = BookingsCollection.InsertOne(ctx, newBooking)
	if err != nil {
		releaseNights(ctx, newBooking.Id)
		return fmt.Errorf("cannot write booking to database: %v", err)
	}

	return nil
}

func releaseNights(ctx context.Context, bookingID primitive.ObjectID) {
	// Best effort: leftover rows for a booking that was never written only
	// block the calendar until this delete eventually succeeds on retry.
	BookingNightsCollection.DeleteMany(ctx, bson.D{primitive.E{Key: "booking_id", Value: bookingID}})
}

// BookingsForUser returns the guest's bookings stitched with their listing
// projections.
func (s Store) BookingsForUser(ctx context.Context, guestID primitive.ObjectID) ([]model.GuestBooking, error) {
	cur, err := BookingsCollection.Find(ctx, bson.D{primitive.E{Key: "guest_id", Value: guestID}})
	if err != nil {
		return nil, fmt.Errorf("cannot read bookings from database: %v", err)
	}
	defer cur.Close(ctx)

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("cannot decode bookings: %v", err)
	}

	listingIDs := []primitive.ObjectID{}
	for _, b := range bookings {
		listingIDs = append(listingIDs, b.ListingId)
	}

	listings, err := GetListingsByIds(ctx, listingIDs)
	if err != nil {
		return nil, err
	}

	history := []model.GuestBooking{}
	for _, b := range bookings {
		listing := listings[b.ListingId]
		history = append(history, model.GuestBooking{
			Booking: b,
			Listing: model.ListingSummary{
				Title:         listing.Title,
				City:          listing.City,
				PricePerNight: listing.PricePerNight,
				PhotoUrls:     listing.PhotoUrls,
			},
		})
	}

	return history, nil
}

func GetListingsByIds(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Listing, error) {
	byId := map[primitive.ObjectID]model.Listing{}
	if len(ids) == 0 {
		return byId, nil
	}

	cur, err := ListingsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("cannot read listings from database: %v", err)
	}
	defer cur.Close(ctx)

	listings := []model.Listing{}
	if err := cur.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("cannot decode listings: %v", err)
	}

	for _, listing := range listings {
		byId[listing.Id] = listing
	}
	return byId, nil
}
