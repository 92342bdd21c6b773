package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Email          string             `json:"email" bson:"email,omitempty"`
	HashedPassword string             `json:"password_hash,omitempty" bson:"password_hash,omitempty"`
	FirstName      string             `json:"first_name" bson:"first_name,omitempty"`
	LastName       string             `json:"last_name" bson:"last_name,omitempty"`
}
