package controllers

import (
	"encoding/json"
	"net/http"
	"os"

	"go-greencart/utils"
)

// SellerController handles the single configured seller account.
type SellerController struct{}

// NewSellerController creates a SellerController.
func NewSellerController() *SellerController {
	return &SellerController{}
}

// Login checks the credentials against the SELLER_EMAIL / SELLER_PASSWORD
// pair and issues a seller session cookie.
func (sc *SellerController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if req.Email == "" || req.Email != os.Getenv("SELLER_EMAIL") || req.Password != os.Getenv("SELLER_PASSWORD") {
		utils.Fail(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	token, err := utils.GenerateJWT("", req.Email, utils.RoleSeller)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	setSessionCookie(w, "sellerToken", token)

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged In",
	})
}

// IsAuth confirms a valid seller session.
func (sc *SellerController) IsAuth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Logout clears the seller session cookie.
func (sc *SellerController) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, "sellerToken")
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged Out",
	})
}
