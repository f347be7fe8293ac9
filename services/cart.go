package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/store"
	"vlady-store/utils"
)

// MaxItemQuantity is the ceiling for a single cart line. Requests
// pushing a line past it are rejected, not clamped.
const MaxItemQuantity = 20

// CartService owns the per-user cart document. Every mutation runs
// under the user's lock, rederives line totals and the grand total,
// and persists the result in one write.
type CartService struct {
	carts    CartStore
	products ProductStore
	locks    *utils.KeyedMutex
	log      *slog.Logger
}

// NewCartService creates a CartService. The KeyedMutex must be the
// same instance handed to the OrderService so checkout excludes cart
// mutations for the same user.
func NewCartService(carts CartStore, products ProductStore, locks *utils.KeyedMutex, log *slog.Logger) *CartService {
	return &CartService{carts: carts, products: products, locks: locks, log: log}
}

// Get returns the user's cart, lazily creating an empty one.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = s.emptyCart(userID)
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts quantity units of the product into the cart. An
// existing line for the product is incremented rather than duplicated.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	defer s.locks.Lock(userID.Hex())()

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = s.emptyCart(userID)
	} else if err != nil {
		return nil, err
	}

	if item := cart.Item(productID); item != nil {
		if item.Quantity+quantity > MaxItemQuantity {
			return nil, ErrQuantityExceeded
		}
		item.Quantity += quantity
		item.UnitPrice = product.Price
	} else {
		if quantity > MaxItemQuantity {
			return nil, ErrQuantityExceeded
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
	}

	return cart, s.save(ctx, cart)
}

// UpdateItem sets the quantity of an existing line outright.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quantity > MaxItemQuantity {
		return nil, ErrQuantityExceeded
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	defer s.locks.Lock(userID.Hex())()

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	item := cart.Item(productID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	item.Quantity = quantity
	item.UnitPrice = product.Price

	return cart, s.save(ctx, cart)
}

// RemoveItem drops the product's line from the cart. Removing a
// product that was never present is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	defer s.locks.Lock(userID.Hex())()

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	return cart, s.save(ctx, cart)
}

// Clear empties the cart. Idempotent: clearing a missing cart just
// yields an empty one.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	defer s.locks.Lock(userID.Hex())()

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = s.emptyCart(userID)
	} else if err != nil {
		return nil, err
	}

	cart.Items = []models.CartItem{}
	return cart, s.save(ctx, cart)
}

func (s *CartService) findProduct(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}
	return product, nil
}

// save recomputes the totals and persists. Compute-then-persist keeps
// the invariant visible here instead of hiding it in a storage hook.
func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	cart.Recompute()
	cart.UpdatedAt = time.Now()
	return s.carts.Save(ctx, cart)
}

func (s *CartService) emptyCart(userID primitive.ObjectID) *models.Cart {
	return &models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		UpdatedAt: time.Now(),
	}
}
