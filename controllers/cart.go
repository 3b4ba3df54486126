package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-greencart/middleware"
	"go-greencart/models"
	"go-greencart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	CartItems(ctx context.Context, userID primitive.ObjectID) (map[string]int, error)
	SetCartItems(ctx context.Context, userID primitive.ObjectID, items map[string]int) error
}

// CartController handles the persisted per-user cart.
type CartController struct {
	Users userStore
}

// NewCartController creates a CartController backed by MongoDB.
func NewCartController(client *mongo.Client) *CartController {
	return &CartController{
		Users: models.NewUserModel(client.Database(utils.DatabaseName)),
	}
}

// GetCart returns the caller's persisted cart.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := cc.Users.CartItems(ctx, userID)
	if err == models.ErrNoRecord {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"cartItems": items,
	})
}

// UpdateCart replaces the caller's persisted cart. Quantities of zero or
// less remove the entry. With merge set, the incoming local cart is laid
// over the persisted copy first, which is how a fresh session reconciles
// the two.
func (cc *CartController) UpdateCart(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		CartItems map[string]int `json:"cartItems"`
		Merge     bool           `json:"merge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items := models.NormalizeCartItems(req.CartItems)
	if req.Merge {
		server, err := cc.Users.CartItems(ctx, userID)
		if err == models.ErrNoRecord {
			utils.Fail(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		items = models.MergeCartItems(server, req.CartItems)
	}

	if err := cc.Users.SetCartItems(ctx, userID, items); err != nil {
		if err == models.ErrNoRecord {
			utils.Fail(w, http.StatusNotFound, "User not found")
			return
		}
		utils.Fail(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Cart updated",
		"cartItems": items,
	})
}
