package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Payment types accepted at checkout.
const (
	PaymentTypeCOD    = "COD"
	PaymentTypeOnline = "online"
)

// Order is the persisted order record. Amount is subtotal plus tax,
// computed server-side from offer prices at creation time.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Amount      float64            `bson:"amount" json:"amount"`
	AddressID   primitive.ObjectID `bson:"address_id" json:"addressId"`
	PaymentType string             `bson:"payment_type" json:"paymentType"`
	IsPaid      bool               `bson:"is_paid" json:"isPaid"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// OrderItem is one ordered line, stored by product reference.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// OrderDetail is an order with items and address resolved to full records,
// the shape order listings return.
type OrderDetail struct {
	ID          primitive.ObjectID `json:"id"`
	UserID      primitive.ObjectID `json:"userId"`
	Items       []OrderDetailItem  `json:"items"`
	Amount      float64            `json:"amount"`
	Address     Address            `json:"address"`
	PaymentType string             `json:"paymentType"`
	IsPaid      bool               `json:"isPaid"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// OrderDetailItem pairs a resolved product with its ordered quantity.
type OrderDetailItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderModel wraps the orders collection plus the collections needed to
// resolve listings.
type OrderModel struct {
	Orders    *mongo.Collection
	Products  *mongo.Collection
	Addresses *mongo.Collection
}

// NewOrderModel creates an OrderModel over the given database.
func NewOrderModel(db *mongo.Database) *OrderModel {
	return &OrderModel{
		Orders:    db.Collection("orders"),
		Products:  db.Collection("products"),
		Addresses: db.Collection("addresses"),
	}
}

// Insert stores a new order and returns its id.
func (m *OrderModel) Insert(ctx context.Context, order Order) (primitive.ObjectID, error) {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	result, err := m.Orders.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID returns the order with the given id.
func (m *OrderModel) FindByID(ctx context.Context, id primitive.ObjectID) (Order, error) {
	var order Order
	err := m.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return Order{}, ErrNoRecord
	}
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// MarkPaid flags the order as paid. Re-marking a paid order is a no-op, so
// redelivered confirmation events are harmless.
func (m *OrderModel) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.Orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_paid": true},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// DeleteUnpaid removes the order only while it is still unpaid. The filter
// carries the paid-guard: a payment-failed event that arrives after the
// matching confirmation can never delete a paid order.
func (m *OrderModel) DeleteUnpaid(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.Orders.DeleteOne(ctx, bson.M{"_id": id, "is_paid": false})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// visibleFilter hides unpaid online orders until their payment is
// confirmed.
func visibleFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"payment_type": PaymentTypeCOD},
		bson.M{"is_paid": true},
	}}
}

// ListForUser returns the user's visible orders, newest first, with items
// and address resolved.
func (m *OrderModel) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]OrderDetail, error) {
	filter := visibleFilter()
	filter["user_id"] = userID
	return m.list(ctx, filter)
}

// ListAll returns every visible order across users, newest first, with
// items and address resolved. Seller-facing.
func (m *OrderModel) ListAll(ctx context.Context) ([]OrderDetail, error) {
	return m.list(ctx, visibleFilter())
}

func (m *OrderModel) list(ctx context.Context, filter bson.M) ([]OrderDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.Orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	details := []OrderDetail{}
	for cursor.Next(ctx) {
		var order Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		detail, err := m.resolve(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, cursor.Err()
}

// resolve expands product and address references into full records. A
// reference to a since-deleted product or address resolves to a zero
// record rather than failing the whole listing.
func (m *OrderModel) resolve(ctx context.Context, order Order) (OrderDetail, error) {
	detail := OrderDetail{
		ID:          order.ID,
		UserID:      order.UserID,
		Amount:      order.Amount,
		PaymentType: order.PaymentType,
		IsPaid:      order.IsPaid,
		CreatedAt:   order.CreatedAt,
		Items:       make([]OrderDetailItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		var product Product
		err := m.Products.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil && err != mongo.ErrNoDocuments {
			return OrderDetail{}, err
		}
		detail.Items = append(detail.Items, OrderDetailItem{Product: product, Quantity: item.Quantity})
	}

	err := m.Addresses.FindOne(ctx, bson.M{"_id": order.AddressID}).Decode(&detail.Address)
	if err != nil && err != mongo.ErrNoDocuments {
		return OrderDetail{}, err
	}
	return detail, nil
}
