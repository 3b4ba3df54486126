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
	"golang.org/x/crypto/bcrypt"
)

// UserController handles registration and session management.
type UserController struct {
	Users *models.UserModel
}

// NewUserController creates a UserController backed by MongoDB.
func NewUserController(client *mongo.Client) *UserController {
	return &UserController{
		Users: models.NewUserModel(client.Database(utils.DatabaseName)),
	}
}

// setSessionCookie attaches a signed session token to the response.
func setSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the named session cookie.
func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// publicUser is the user shape returned to the client, cart included so a
// fresh session can merge its local cache.
func publicUser(user models.User) map[string]interface{} {
	cart := user.CartItems
	if cart == nil {
		cart = map[string]int{}
	}
	return map[string]interface{}{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"cartItems": cart,
	}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing Details")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := uc.Users.EmailExists(ctx, req.Email)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		utils.Fail(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		CartItems: map[string]int{},
	}
	userID, err := uc.Users.Insert(ctx, user)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error creating user")
		return
	}
	user.ID = userID

	token, err := utils.GenerateJWT(userID.Hex(), user.Email, utils.RoleUser)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	setSessionCookie(w, "token", token)

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    publicUser(user),
	})
}

// Login handles user login
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing Details")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if err == models.ErrNoRecord {
		utils.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, utils.RoleUser)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	setSessionCookie(w, "token", token)

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    publicUser(user),
	})
}

// IsAuth reports the authenticated user back to the client.
func (uc *UserController) IsAuth(w http.ResponseWriter, r *http.Request) {
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

	user, err := uc.Users.FindByID(ctx, userID)
	if err == models.ErrNoRecord {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    publicUser(user),
	})
}

// Logout clears the session cookie. The persisted cart stays; only the
// client's local copy is discarded.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, "token")
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged Out",
	})
}
