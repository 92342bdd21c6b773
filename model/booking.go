package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	Id         primitive.ObjectID `json:"_id" bson:"_id"`
	ListingId  primitive.ObjectID `json:"listing_id" bson:"listing_id"`
	GuestId    primitive.ObjectID `json:"guest_id" bson:"guest_id"`
	Reference  string             `json:"reference" bson:"reference"`
	CheckIn    time.Time          `json:"check_in_date" bson:"check_in_date"`
	CheckOut   time.Time          `json:"check_out_date" bson:"check_out_date"`
	Guests     uint               `json:"number_of_guests" bson:"number_of_guests"`
	TotalPrice float64            `json:"total_price" bson:"total_price"`
	BookedAt   string             `json:"booked_at" bson:"booked_at"`
}

// GuestBooking joins a booking with its listing projection for the
// traveler history view.
type GuestBooking struct {
	Booking Booking        `json:"booking"`
	Listing ListingSummary `json:"listing"`
}

// BookingNight reserves a single calendar night of a listing. The unique
// index on (listing_id, night) is what keeps two overlapping bookings from
// ever being persisted together.
type BookingNight struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id"`
	ListingId primitive.ObjectID `json:"listing_id" bson:"listing_id"`
	Night     time.Time          `json:"night" bson:"night"`
	BookingId primitive.ObjectID `json:"booking_id" bson:"booking_id"`
}
