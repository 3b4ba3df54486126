package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// User represents a storefront customer. CartItems maps product hex ids to
// quantities; an absent key means zero quantity.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	CartItems map[string]int     `bson:"cart_items" json:"cartItems"`
}

// UserModel wraps the users collection.
type UserModel struct {
	Collection *mongo.Collection
}

// NewUserModel creates a UserModel over the given database.
func NewUserModel(db *mongo.Database) *UserModel {
	return &UserModel{Collection: db.Collection("users")}
}

// Insert stores a new user and returns its id.
func (m *UserModel) Insert(ctx context.Context, user User) (primitive.ObjectID, error) {
	result, err := m.Collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID returns the user with the given id.
func (m *UserModel) FindByID(ctx context.Context, id primitive.ObjectID) (User, error) {
	var user User
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return User{}, ErrNoRecord
	}
	return user, err
}

// FindByEmail returns the user registered under the given email.
func (m *UserModel) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := m.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return User{}, ErrNoRecord
	}
	return user, err
}

// EmailExists reports whether a user is already registered under email.
func (m *UserModel) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := m.Collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CartItems returns the user's persisted cart. A user without a cart yet
// gets an empty map, not an error.
func (m *UserModel) CartItems(ctx context.Context, userID primitive.ObjectID) (map[string]int, error) {
	user, err := m.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartItems == nil {
		return map[string]int{}, nil
	}
	return user.CartItems, nil
}

// SetCartItems replaces the user's persisted cart.
func (m *UserModel) SetCartItems(ctx context.Context, userID primitive.ObjectID, items map[string]int) error {
	result, err := m.Collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"cart_items": items},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}
