package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Listing struct {
	Id            primitive.ObjectID `json:"_id" bson:"_id"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	City          string             `json:"city" bson:"city"`
	PricePerNight float64            `json:"price_per_night" bson:"price_per_night"`
	PhotoUrls     []string           `json:"photo_urls" bson:"photo_urls"`
	HostId        primitive.ObjectID `json:"host_id" bson:"host_id"`
	CreatedAt     string             `json:"created_at" bson:"created_at"`
}

// ListingSummary is the read-only projection of a listing attached to a
// guest's booking history.
type ListingSummary struct {
	Title         string   `json:"title" bson:"title"`
	City          string   `json:"city" bson:"city"`
	PricePerNight float64  `json:"price_per_night" bson:"price_per_night"`
	PhotoUrls     []string `json:"photo_urls" bson:"photo_urls"`
}
