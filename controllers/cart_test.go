package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-greencart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCartTestEnv() (*CartController, *fakeUsers, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	users := &fakeUsers{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID, Name: "Shopper", Email: "shopper@example.com"},
	}}
	return &CartController{Users: users}, users, userID
}

func cartUpdateBody(t *testing.T, items map[string]int, merge bool) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"cartItems": items,
		"merge":     merge,
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestGetCartEmptyForNewUser(t *testing.T) {
	cc, _, userID := newCartTestEnv()

	w := httptest.NewRecorder()
	cc.GetCart(w, authedRequest("GET", "/api/cart", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Success   bool           `json:"success"`
		CartItems map[string]int `json:"cartItems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, map[string]int{}, out.CartItems)
}

func TestGetCartUnknownUser(t *testing.T) {
	cc, _, _ := newCartTestEnv()

	w := httptest.NewRecorder()
	cc.GetCart(w, authedRequest("GET", "/api/cart", nil, primitive.NewObjectID()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartNormalizesQuantities(t *testing.T) {
	cc, users, userID := newCartTestEnv()

	w := httptest.NewRecorder()
	body := cartUpdateBody(t, map[string]int{"a": 2, "b": 0, "c": -3}, false)
	cc.UpdateCart(w, authedRequest("POST", "/api/cart/update", body, userID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"a": 2}, users.users[userID].CartItems)
}

func TestUpdateCartMergeOverlaysLocalOnServer(t *testing.T) {
	cc, users, userID := newCartTestEnv()
	users.users[userID].CartItems = map[string]int{"a": 1, "b": 2}

	w := httptest.NewRecorder()
	body := cartUpdateBody(t, map[string]int{"b": 5, "c": 1}, true)
	cc.UpdateCart(w, authedRequest("POST", "/api/cart/update", body, userID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"a": 1, "b": 5, "c": 1}, users.users[userID].CartItems)
}

func TestUpdateCartReplaceDropsServerEntries(t *testing.T) {
	cc, users, userID := newCartTestEnv()
	users.users[userID].CartItems = map[string]int{"a": 1}

	w := httptest.NewRecorder()
	body := cartUpdateBody(t, map[string]int{"b": 4}, false)
	cc.UpdateCart(w, authedRequest("POST", "/api/cart/update", body, userID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"b": 4}, users.users[userID].CartItems)
}
