// main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"vlady-store/config"
	"vlady-store/controllers"
	"vlady-store/middleware"
	"vlady-store/routes"
	"vlady-store/services"
	"vlady-store/store"
	"vlady-store/utils"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Connect to MongoDB
	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.Error("failed to disconnect from mongodb", "error", err)
		}
	}()

	// Stores
	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)
	products := store.NewProductStore(db)
	carts := store.NewCartStore(db)
	orders := store.NewOrderStore(db)
	addresses := store.NewAddressStore(db)
	wishlists := store.NewWishlistStore(db)
	contacts := store.NewContactStore(db)

	// Outbound channels
	emailService := utils.NewEmailService(cfg.Email.SendGridKey, cfg.Email.Sender)
	var smsSender utils.SMSSender
	if cfg.SMS.Configured() {
		smsSender = utils.NewTwilioSender(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.From)
	}

	// Services. Cart and order share one lock set so checkout excludes
	// cart mutations for the same user.
	userLocks := &utils.KeyedMutex{}
	cartService := services.NewCartService(carts, products, userLocks, log)
	orderService := services.NewOrderService(orders, carts, products, addresses, users, db, userLocks, emailService, log)
	authService := services.NewAuthService(users, sessions, smsSender, cfg.Session.TTL, cfg.Production(), log)
	addressService := services.NewAddressService(addresses, db)
	wishlistService := services.NewWishlistService(wishlists, products)
	contactService := services.NewContactService(contacts, emailService, cfg.Email.AdminEmail, log)

	// HTTP layer
	tokens := utils.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	validate := validator.New()
	sessionMiddleware := middleware.NewSessionMiddleware(sessions, tokens, log)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, sessionMiddleware, routes.Controllers{
		Auth:     controllers.NewAuthController(authService, tokens, validate, cfg.Production(), log),
		Product:  controllers.NewProductController(products, validate, log),
		Cart:     controllers.NewCartController(cartService, validate, log),
		Order:    controllers.NewOrderController(orderService, validate, log),
		Address:  controllers.NewAddressController(addressService, validate, log),
		Wishlist: controllers.NewWishlistController(wishlistService, log),
		Contact:  controllers.NewContactController(contactService, validate, log),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("server starting", "port", cfg.Server.Port, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
