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

// AddressController handles the user's address book.
type AddressController struct {
	Addresses *models.AddressModel
}

// NewAddressController creates an AddressController backed by MongoDB.
func NewAddressController(client *mongo.Client) *AddressController {
	return &AddressController{
		Addresses: models.NewAddressModel(client.Database(utils.DatabaseName)),
	}
}

// AddAddress saves a delivery address for the caller.
func (ac *AddressController) AddAddress(w http.ResponseWriter, r *http.Request) {
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
		Address models.Address `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Address.Street == "" || req.Address.City == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	req.Address.ID = primitive.NilObjectID
	req.Address.UserID = userID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := ac.Addresses.Insert(ctx, req.Address); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error saving address")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Address added successfully",
	})
}

// ListAddresses returns the caller's saved addresses. A user with none
// gets an empty list, not an error.
func (ac *AddressController) ListAddresses(w http.ResponseWriter, r *http.Request) {
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

	addresses, err := ac.Addresses.ListForUser(ctx, userID)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error fetching addresses")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"addresses": addresses,
	})
}
