// routes/routes.go
package routes

import (
	"net/http"

	"go-greencart/controllers"
	"go-greencart/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, sellerController *controllers.SellerController, productController *controllers.ProductController, cartController *controllers.CartController, addressController *controllers.AddressController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	// User auth
	api.HandleFunc("/user/register", userController.Register).Methods("POST")
	api.HandleFunc("/user/login", userController.Login).Methods("POST")
	userAuth := api.PathPrefix("/user").Subrouter()
	userAuth.Use(middleware.AuthUser)
	userAuth.HandleFunc("/is-auth", userController.IsAuth).Methods("GET")
	userAuth.HandleFunc("/logout", userController.Logout).Methods("GET")

	// Seller auth
	api.HandleFunc("/seller/login", sellerController.Login).Methods("POST")
	sellerAuth := api.PathPrefix("/seller").Subrouter()
	sellerAuth.Use(middleware.AuthSeller)
	sellerAuth.HandleFunc("/is-auth", sellerController.IsAuth).Methods("GET")
	sellerAuth.HandleFunc("/logout", sellerController.Logout).Methods("GET")

	// Catalog: public reads, seller-only writes
	api.HandleFunc("/product/list", productController.ListProducts).Methods("GET")
	api.HandleFunc("/product/id/{id}", productController.GetProductByID).Methods("GET")
	api.Handle("/product/add", middleware.AuthSeller(http.HandlerFunc(productController.AddProduct))).Methods("POST")
	api.Handle("/product/stock", middleware.AuthSeller(http.HandlerFunc(productController.ChangeStock))).Methods("POST")

	// Cart
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.AuthUser)
	cart.HandleFunc("", cartController.GetCart).Methods("GET")
	cart.HandleFunc("/update", cartController.UpdateCart).Methods("POST")

	// Address book
	address := api.PathPrefix("/address").Subrouter()
	address.Use(middleware.AuthUser)
	address.HandleFunc("/add", addressController.AddAddress).Methods("POST")
	address.HandleFunc("/list", addressController.ListAddresses).Methods("GET")

	// Orders. The webhook is unauthenticated (gateway-signed) and the
	// seller listing uses seller auth, so both are registered ahead of
	// the user-auth order subrouter.
	api.HandleFunc("/order/webhook", orderController.StripeWebhook).Methods("POST")
	api.Handle("/order/seller", middleware.AuthSeller(http.HandlerFunc(orderController.GetSellerOrders))).Methods("GET")
	order := api.PathPrefix("/order").Subrouter()
	order.Use(middleware.AuthUser)
	order.HandleFunc("/cod", orderController.PlaceOrderCOD).Methods("POST")
	order.HandleFunc("/stripe", orderController.PlaceOrderStripe).Methods("POST")
	order.HandleFunc("/user", orderController.GetUserOrders).Methods("GET")
}
