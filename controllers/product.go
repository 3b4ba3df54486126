package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-greencart/models"
	"go-greencart/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductController handles catalog requests.
type ProductController struct {
	Products *models.ProductModel
}

// NewProductController creates a ProductController backed by MongoDB.
func NewProductController(client *mongo.Client) *ProductController {
	return &ProductController{
		Products: models.NewProductModel(client.Database(utils.DatabaseName)),
	}
}

// AddProduct adds a catalog entry (seller only).
func (pc *ProductController) AddProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if product.Name == "" || product.OfferPrice <= 0 {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	productID, err := pc.Products.Insert(ctx, product)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error creating product")
		return
	}
	product.ID = productID

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Product Added",
		"product": product,
	})
}

// ListProducts returns the whole catalog.
func (pc *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := pc.Products.List(ctx)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// GetProductByID returns a single catalog entry.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, id)
	if err == models.ErrNoRecord {
		utils.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// ChangeStock flips a product's availability flag (seller only).
func (pc *ProductController) ChangeStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string `json:"id"`
		InStock bool   `json:"inStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = pc.Products.SetStock(ctx, id, req.InStock)
	if err == models.ErrNoRecord {
		utils.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Stock Updated",
	})
}
