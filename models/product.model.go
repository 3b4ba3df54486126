package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Product is a catalog entry. OfferPrice is the authoritative sale price
// used for all financial calculations; Price is the list price shown
// struck through.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description []string           `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	OfferPrice  float64            `bson:"offer_price" json:"offerPrice"`
	Image       []string           `bson:"image" json:"image"`
	InStock     bool               `bson:"in_stock" json:"inStock"`
}

// ProductModel wraps the products collection.
type ProductModel struct {
	Collection *mongo.Collection
}

// NewProductModel creates a ProductModel over the given database.
func NewProductModel(db *mongo.Database) *ProductModel {
	return &ProductModel{Collection: db.Collection("products")}
}

// Insert stores a new product and returns its id.
func (m *ProductModel) Insert(ctx context.Context, product Product) (primitive.ObjectID, error) {
	result, err := m.Collection.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID returns the product with the given id.
func (m *ProductModel) FindByID(ctx context.Context, id primitive.ObjectID) (Product, error) {
	var product Product
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return Product{}, ErrNoRecord
	}
	return product, err
}

// List returns the whole catalog.
func (m *ProductModel) List(ctx context.Context) ([]Product, error) {
	cursor, err := m.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []Product{}
	for cursor.Next(ctx) {
		var product Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, cursor.Err()
}

// SetStock flips the product's availability flag.
func (m *ProductModel) SetStock(ctx context.Context, id primitive.ObjectID, inStock bool) error {
	result, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"in_stock": inStock},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}
