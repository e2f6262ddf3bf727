// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nphn2028thief/shoes-store-server/controllers"
	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/utils"
)

// Controllers bundles everything RegisterRoutes mounts.
type Controllers struct {
	Auth            *controllers.AuthController
	Cart            *controllers.CartController
	Category        *controllers.CategoryController
	Product         *controllers.ProductController
	Order           *controllers.OrderController
	ShippingAddress *controllers.ShippingAddressController
}

// RegisterRoutes sets up all the routes for the application under /api,
// plus static serving of uploaded files under /public.
func RegisterRoutes(router *mux.Router, auth *middleware.Auth, c Controllers, uploadDir string) {
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/signUp", c.Auth.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signIn", c.Auth.SignIn).Methods(http.MethodPost)
	api.Handle("/auth/getMe", auth.VerifyToken(http.HandlerFunc(c.Auth.GetMe))).Methods(http.MethodGet)
	api.Handle("/auth/updateMe", auth.VerifyToken(http.HandlerFunc(c.Auth.UpdateMe))).Methods(http.MethodPatch)
	api.HandleFunc("/auth/verifyOtp", c.Auth.VerifyOtp).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgotPassword", c.Auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/resetPassword", c.Auth.ResetPassword).Methods(http.MethodPut)

	// Cart routes
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(auth.VerifyToken)
	cart.HandleFunc("", c.Cart.AddToCart).Methods(http.MethodPost)
	cart.HandleFunc("", c.Cart.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("/{productId}", c.Cart.DeleteFromCart).Methods(http.MethodDelete)

	// Category routes: reads public, mutations admin only
	api.HandleFunc("/category", c.Category.GetCategories).Methods(http.MethodGet)
	categoryAdmin := api.PathPrefix("/category").Subrouter()
	categoryAdmin.Use(auth.VerifyToken, auth.VerifyAdmin)
	categoryAdmin.HandleFunc("", c.Category.CreateCategory).Methods(http.MethodPost)
	categoryAdmin.HandleFunc("/{categoryId}", c.Category.UpdateCategory).Methods(http.MethodPatch)
	categoryAdmin.HandleFunc("/{categoryId}", c.Category.DeleteCategory).Methods(http.MethodDelete)

	// Product routes: reads public, mutations admin only
	api.HandleFunc("/product", c.Product.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/product/category/{categorySlug}", c.Product.GetProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/product/{productId}", c.Product.GetProductByID).Methods(http.MethodGet)
	productAdmin := api.PathPrefix("/product").Subrouter()
	productAdmin.Use(auth.VerifyToken, auth.VerifyAdmin)
	productAdmin.HandleFunc("", c.Product.CreateProduct).Methods(http.MethodPost)
	productAdmin.HandleFunc("/{productId}", c.Product.UpdateProduct).Methods(http.MethodPatch)
	productAdmin.HandleFunc("/{productId}", c.Product.DeleteProduct).Methods(http.MethodDelete)

	// Order routes
	order := api.PathPrefix("/order").Subrouter()
	order.Use(auth.VerifyToken)
	order.HandleFunc("", c.Order.CreateOrder).Methods(http.MethodPost)
	order.HandleFunc("", c.Order.GetMyOrders).Methods(http.MethodGet)

	// Shipping address routes
	address := api.PathPrefix("/shippingAddress").Subrouter()
	address.Use(auth.VerifyToken)
	address.HandleFunc("", c.ShippingAddress.CreateShippingAddress).Methods(http.MethodPost)
	address.HandleFunc("", c.ShippingAddress.GetShippingAddresses).Methods(http.MethodGet)
	address.HandleFunc("/{shippingAddressId}", c.ShippingAddress.GetShippingAddressByID).Methods(http.MethodGet)
	address.HandleFunc("/{shippingAddressId}", c.ShippingAddress.UpdateShippingAddress).Methods(http.MethodPatch)
	address.HandleFunc("/{shippingAddressId}", c.ShippingAddress.DeleteShippingAddress).Methods(http.MethodDelete)

	// Uploaded product images
	router.PathPrefix("/public/").Handler(
		http.StripPrefix("/public/", http.FileServer(http.Dir(uploadDir))),
	)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondNotFound(w, "This route doesn't exist!")
	})
}
