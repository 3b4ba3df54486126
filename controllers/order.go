// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"go-greencart/middleware"
	"go-greencart/models"
	"go-greencart/utils"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stripe caps webhook payloads well below this.
const maxWebhookBody = 65536

type orderStore interface {
	Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) error
	DeleteUnpaid(ctx context.Context, id primitive.ObjectID) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error)
	ListAll(ctx context.Context) ([]models.OrderDetail, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
}

type checkoutGateway interface {
	CreateCheckoutSession(origin, orderID, userID string, lines []utils.CheckoutLine) (string, error)
}

type orderMailer interface {
	SendOrderConfirmationEmail(toEmail, orderID string, amount float64, paymentType string) error
}

// OrderController handles checkout, order listings and payment-gateway
// webhooks.
type OrderController struct {
	Orders        orderStore
	Products      productFinder
	Users         userStore
	Gateway       checkoutGateway
	EmailService  orderMailer
	WebhookSecret string
}

// NewOrderController creates an OrderController backed by MongoDB and
// Stripe.
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Orders:        models.NewOrderModel(db),
		Products:      models.NewProductModel(db),
		Users:         models.NewUserModel(db),
		Gateway:       utils.NewStripeGateway(),
		EmailService:  emailService,
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

type placeOrderRequest struct {
	Items []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	AddressID string `json:"addressId"`
}

// resolveOrder validates a checkout request and prices it against the
// catalog. Client-supplied prices are never consulted. A missing product
// rejects the whole order so nobody gets charged for unavailable goods.
func (oc *OrderController) resolveOrder(ctx context.Context, req placeOrderRequest) ([]models.OrderItem, []utils.CheckoutLine, primitive.ObjectID, float64, error) {
	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		return nil, nil, primitive.NilObjectID, 0, errInvalidData
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	lines := make([]utils.CheckoutLine, 0, len(req.Items))
	priceLines := make([]utils.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, nil, primitive.NilObjectID, 0, errInvalidData
		}
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, nil, primitive.NilObjectID, 0, &productNotFoundError{id: item.Product}
		}
		product, err := oc.Products.FindByID(ctx, productID)
		if err == models.ErrNoRecord {
			return nil, nil, primitive.NilObjectID, 0, &productNotFoundError{id: item.Product}
		}
		if err != nil {
			return nil, nil, primitive.NilObjectID, 0, err
		}
		items = append(items, models.OrderItem{ProductID: productID, Quantity: item.Quantity})
		description := ""
		if len(product.Description) > 0 {
			description = product.Description[0]
		}
		lines = append(lines, utils.CheckoutLine{
			Name:        product.Name,
			Description: description,
			UnitPrice:   product.OfferPrice,
			Quantity:    item.Quantity,
		})
		priceLines = append(priceLines, utils.OrderLine{
			OfferPrice: product.OfferPrice,
			Quantity:   item.Quantity,
		})
	}

	_, _, total := utils.OrderTotals(priceLines)
	return items, lines, addressID, total, nil
}

// PlaceOrderCOD places a cash-on-delivery order. The order is final at
// creation; no gateway confirmation follows.
func (oc *OrderController) PlaceOrderCOD(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Invalid data"})
		return
	}
	if req.AddressID == "" || len(req.Items) == 0 {
		utils.JSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Invalid data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, _, addressID, amount, err := oc.resolveOrder(ctx, req)
	if err != nil {
		oc.failResolve(w, err)
		return
	}

	orderID, err := oc.Orders.Insert(ctx, models.Order{
		UserID:      userID,
		Items:       items,
		Amount:      amount,
		AddressID:   addressID,
		PaymentType: models.PaymentTypeCOD,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		log.Printf("Order creation error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	if user, err := oc.Users.FindByID(ctx, userID); err == nil && oc.EmailService != nil {
		go func(email string) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, orderID.Hex(), amount, models.PaymentTypeCOD); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(user.Email)
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order Placed Successfully",
	})
}

// PlaceOrderStripe places an online order and hands off to the payment
// gateway. The order stays unpaid and invisible until the gateway confirms
// payment; the cart is left untouched so an abandoned payment loses
// nothing.
func (oc *OrderController) PlaceOrderStripe(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	origin := r.Header.Get("Origin")
	if req.AddressID == "" || len(req.Items) == 0 || origin == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, lines, addressID, amount, err := oc.resolveOrder(ctx, req)
	if err != nil {
		oc.failResolve(w, err)
		return
	}

	orderID, err := oc.Orders.Insert(ctx, models.Order{
		UserID:      userID,
		Items:       items,
		Amount:      amount,
		AddressID:   addressID,
		PaymentType: models.PaymentTypeOnline,
		IsPaid:      false,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		log.Printf("Order creation error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	url, err := oc.Gateway.CreateCheckoutSession(origin, orderID.Hex(), userID.Hex(), lines)
	if err != nil {
		// The unpaid order stays behind with is_paid=false; a later
		// payment-failed event or manual sweep reconciles it.
		log.Printf("Checkout session error for order %s: %v", orderID.Hex(), err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to start payment")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}

// GetUserOrders returns the caller's visible orders, newest first.
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("Get user orders error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetSellerOrders returns every visible order across users, newest first.
func (oc *OrderController) GetSellerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.ListAll(ctx)
	if err != nil {
		log.Printf("Get all orders error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// StripeWebhook consumes payment gateway events. Signature verification
// fails closed: an unverifiable payload is rejected with 400 and never
// processed.
func (oc *OrderController) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), oc.WebhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		http.Error(w, fmt.Sprintf("Webhook Error: %v", err), http.StatusBadRequest)
		return
	}

	oc.handleEvent(w, event)
}

// handleEvent applies a verified gateway event to order and cart state.
// Every accepted branch answers {received:true} so the gateway stops
// retrying; store failures answer 5xx so it retries later.
func (oc *OrderController) handleEvent(w http.ResponseWriter, event stripe.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		orderHex := session.Metadata["orderId"]
		userHex := session.Metadata["userId"]
		if orderHex == "" || userHex == "" {
			log.Printf("Missing orderId or userId in session metadata: %v", session.Metadata)
			http.Error(w, "Invalid metadata", http.StatusBadRequest)
			return
		}
		orderID, err := primitive.ObjectIDFromHex(orderHex)
		if err != nil {
			http.Error(w, "Invalid metadata", http.StatusBadRequest)
			return
		}
		userID, err := primitive.ObjectIDFromHex(userHex)
		if err != nil {
			http.Error(w, "Invalid metadata", http.StatusBadRequest)
			return
		}

		if err := oc.Orders.MarkPaid(ctx, orderID); err != nil {
			if err == models.ErrNoRecord {
				log.Printf("Order %s not found", orderHex)
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Printf("Error processing checkout.session.completed: %v", err)
			http.Error(w, "Error processing webhook", http.StatusInternalServerError)
			return
		}

		if err := oc.Users.SetCartItems(ctx, userID, map[string]int{}); err != nil {
			if err == models.ErrNoRecord {
				log.Printf("User %s not found", userHex)
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			log.Printf("Error clearing cart for user %s: %v", userHex, err)
			http.Error(w, "Error processing webhook", http.StatusInternalServerError)
			return
		}
		log.Printf("Order %s marked as paid and cart cleared for user %s", orderHex, userHex)

		if oc.EmailService != nil {
			order, orderErr := oc.Orders.FindByID(ctx, orderID)
			user, userErr := oc.Users.FindByID(ctx, userID)
			if orderErr == nil && userErr == nil {
				go func(email string, amount float64) {
					if err := oc.EmailService.SendOrderConfirmationEmail(email, orderHex, amount, models.PaymentTypeOnline); err != nil {
						log.Printf("Failed to send email to %s: %v", email, err)
					}
				}(user.Email, order.Amount)
			}
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		orderHex := intent.Metadata["orderId"]
		if orderHex == "" {
			log.Printf("Missing orderId in payment intent metadata: %v", intent.Metadata)
			http.Error(w, "Invalid metadata", http.StatusBadRequest)
			return
		}
		orderID, err := primitive.ObjectIDFromHex(orderHex)
		if err != nil {
			http.Error(w, "Invalid metadata", http.StatusBadRequest)
			return
		}

		// DeleteUnpaid skips paid orders, so a failure event arriving
		// after the confirmation cannot undo it.
		switch err := oc.Orders.DeleteUnpaid(ctx, orderID); err {
		case nil:
			log.Printf("Order %s deleted due to payment failure", orderHex)
		case models.ErrNoRecord:
			log.Printf("Order %s already paid or absent; skipping deletion", orderHex)
		default:
			log.Printf("Error deleting order %s: %v", orderHex, err)
			http.Error(w, "Error processing webhook", http.StatusInternalServerError)
			return
		}

	default:
		log.Printf("Unhandled event type %s", event.Type)
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"received": true})
}

var errInvalidData = fmt.Errorf("invalid data")

type productNotFoundError struct {
	id string
}

func (e *productNotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found", e.id)
}

// failResolve maps resolveOrder errors onto checkout responses.
func (oc *OrderController) failResolve(w http.ResponseWriter, err error) {
	if err == errInvalidData {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if notFound, ok := err.(*productNotFoundError); ok {
		utils.Fail(w, http.StatusNotFound, notFound.Error())
		return
	}
	log.Printf("Order creation error: %v", err)
	utils.Fail(w, http.StatusInternalServerError, "Failed to place order")
}
