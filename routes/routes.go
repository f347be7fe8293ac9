// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"vlady-store/controllers"
	"vlady-store/middleware"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Address  *controllers.AddressController
	Wishlist *controllers.WishlistController
	Contact  *controllers.ContactController
}

// RegisterRoutes sets up all the routes for the application. The
// session middleware resolves identities globally; the user and admin
// subrouters enforce access.
func RegisterRoutes(router *mux.Router, sessions *middleware.SessionMiddleware, c Controllers) {
	router.Use(sessions.Attach)

	// Public routes
	router.HandleFunc("/auth/send-otp", c.Auth.SendOTP).Methods("POST")
	router.HandleFunc("/auth/verify-otp", c.Auth.VerifyOTP).Methods("POST")
	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	router.HandleFunc("/contact", c.Contact.Submit).Methods("POST")

	// Authenticated routes
	user := router.PathPrefix("/").Subrouter()
	user.Use(middleware.RequireAuth)
	user.HandleFunc("/auth/logout", c.Auth.Logout).Methods("POST")
	user.HandleFunc("/auth/profile", c.Auth.UpdateProfile).Methods("PUT")

	user.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	user.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	user.HandleFunc("/cart/items", c.Cart.AddItem).Methods("POST")
	user.HandleFunc("/cart/items/{productId}", c.Cart.UpdateItem).Methods("PUT")
	user.HandleFunc("/cart/items/{productId}", c.Cart.RemoveItem).Methods("DELETE")

	user.HandleFunc("/orders", c.Order.PlaceOrder).Methods("POST")
	user.HandleFunc("/orders", c.Order.ListOrders).Methods("GET")
	user.HandleFunc("/orders/{id}/cancel", c.Order.CancelOrder).Methods("POST")

	user.HandleFunc("/addresses", c.Address.List).Methods("GET")
	user.HandleFunc("/addresses", c.Address.Create).Methods("POST")
	user.HandleFunc("/addresses/{id}", c.Address.Get).Methods("GET")
	user.HandleFunc("/addresses/{id}", c.Address.Update).Methods("PUT")
	user.HandleFunc("/addresses/{id}", c.Address.Delete).Methods("DELETE")

	user.HandleFunc("/wishlist", c.Wishlist.Get).Methods("GET")
	user.HandleFunc("/wishlist/items", c.Wishlist.Add).Methods("POST")
	user.HandleFunc("/wishlist/items/{productId}", c.Wishlist.Remove).Methods("DELETE")

	// Admin routes
	admin := router.PathPrefix("/").Subrouter()
	admin.Use(middleware.RequireAuth)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/products", c.Product.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Product.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.Product.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/orders/{id}/status", c.Order.UpdateStatus).Methods("PUT")
}
