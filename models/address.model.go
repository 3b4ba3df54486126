package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Address is a delivery address owned by a user and referenced by orders.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	ZipCode   string             `bson:"zipcode" json:"zipcode"`
	Country   string             `bson:"country" json:"country"`
	Phone     string             `bson:"phone" json:"phone"`
}

// AddressModel wraps the addresses collection.
type AddressModel struct {
	Collection *mongo.Collection
}

// NewAddressModel creates an AddressModel over the given database.
func NewAddressModel(db *mongo.Database) *AddressModel {
	return &AddressModel{Collection: db.Collection("addresses")}
}

// Insert stores a new address and returns its id.
func (m *AddressModel) Insert(ctx context.Context, address Address) (primitive.ObjectID, error) {
	result, err := m.Collection.InsertOne(ctx, address)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// ListForUser returns every address the user has saved.
func (m *AddressModel) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]Address, error) {
	cursor, err := m.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	addresses := []Address{}
	for cursor.Next(ctx) {
		var address Address
		if err := cursor.Decode(&address); err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, cursor.Err()
}
