package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rental-webapp/config"
	"rental-webapp/model"
)

var UsersCollection *mongo.Collection
var ListingsCollection *mongo.Collection
var BookingsCollection *mongo.Collection
var BookingNightsCollection *mongo.Collection

// Init connects to the database and prepares the collections and the indexes
// the booking invariants rely on.
func Init(ctx context.Context) error {
	connString, err := config.GetSecret("MONGODB_CONNSTRING")
	if err != nil {
		return fmt.Errorf("cannot find connection string for DB in the environment: %v", err)
	}

	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return fmt.Errorf("db is not available: %v", err)
	}

	db := client.Database("rental-service")
	UsersCollection = db.Collection("users")
	ListingsCollection = db.Collection("listings")
	BookingsCollection = db.Collection("bookings")
	BookingNightsCollection = db.Collection("booking_nights")

	return ensureIndexes(ctx)
}

// ensureIndexes creates the unique email index and the (listing, night)
// guard index. The guard is what makes a second overlapping booking insert
// fail atomically instead of racing past the conflict check.
func ensureIndexes(ctx context.Context) error {
	_, err := UsersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{primitive.E{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("cannot create users email index: %v", err)
	}

	_, err = BookingNightsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			primitive.E{Key: "listing_id", Value: 1},
			primitive.E{Key: "night", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("cannot create booking nights index: %v", err)
	}

	return nil
}

func WriteToCollection(item interface{}, collection *mongo.Collection) error {
	_, err := collection.InsertOne(context.TODO(), item)
	if err != nil {
		return fmt.Errorf("cannot write to %v collection: %w", collection.Name(), err)
	}
	return nil
}

func GetUserData(userEmail string) (model.UserData, error) {
	var user model.UserData
	ctx := context.TODO()

	cur, err := UsersCollection.Find(ctx, bson.D{primitive.E{Key: "email", Value: userEmail}})
	if err != nil {
		return model.UserData{}, fmt.Errorf("server side problem occured while reading user data from database: %v", err)
	}

	for cur.Next(ctx) {
		err := cur.Decode(&user)
		if err != nil {
			return model.UserData{}, fmt.Errorf("server side problem occured while reading user data from database: %v", err)
		}
	}

	if err := cur.Err(); err != nil {
		return model.UserData{}, fmt.Errorf("server side problem occured while reading user data from database: %v", err)
	}

	cur.Close(ctx)

	return user, nil
}

// GetListings returns listings matching an optional case-insensitive city
// substring, minus an optional exclusion set of ids. Both filters empty means
// every listing.
func GetListings(ctx context.Context, city string, exclude []primitive.ObjectID) ([]model.Listing, error) {
	filter := bson.M{}
	if city != "" {
		filter["city"] = bson.M{"$regex": city, "$options": "i"}
	}
	if len(exclude) > 0 {
		filter["_id"] = bson.M{"$nin": exclude}
	}

	cur, err := ListingsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot read listings from database: %v", err)
	}
	defer cur.Close(ctx)

	listings := []model.Listing{}
	if err := cur.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("cannot decode listings: %v", err)
	}

	return listings, nil
}
