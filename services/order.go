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

// OrderService converts carts into orders and manages the order
// status lifecycle.
type OrderService struct {
	orders    OrderStore
	carts     CartStore
	products  ProductStore
	addresses AddressStore
	users     UserStore
	txn       Txn
	locks     *utils.KeyedMutex
	email     EmailSender
	log       *slog.Logger
}

// NewOrderService creates an OrderService. The KeyedMutex must be the
// instance shared with the CartService.
func NewOrderService(orders OrderStore, carts CartStore, products ProductStore, addresses AddressStore, users UserStore, txn Txn, locks *utils.KeyedMutex, email EmailSender, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		products:  products,
		addresses: addresses,
		users:     users,
		txn:       txn,
		locks:     locks,
		email:     email,
		log:       log,
	}
}

// PlaceOrder snapshots the user's cart into a pending order shipped to
// one of the user's saved addresses, then empties the cart. Order
// creation and cart clearing commit together or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, addressID primitive.ObjectID) (*models.Order, error) {
	defer s.locks.Lock(userID.Hex())()

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	address, err := s.addresses.FindOne(ctx, addressID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	// Snapshot each line against the catalog's current price. A line
	// whose product vanished fails the whole checkout before any write.
	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("look up product: %w", err)
		}
		item := models.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			Quantity:   line.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: float64(line.Quantity) * product.Price,
		}
		total += item.TotalPrice
		items = append(items, item)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		Total:           total,
		ShippingAddress: *address,
		Status:          models.OrderPending,
		CreatedAt:       time.Now(),
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		cart.Items = []models.CartItem{}
		cart.Recompute()
		cart.UpdatedAt = time.Now()
		return s.carts.Save(ctx, cart)
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.sendConfirmation(userID, order)
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// CancelOrder cancels an order still in pending or confirmed state,
// recording the reason and the cancellation time.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID primitive.ObjectID, reason string) (*models.Order, error) {
	order, err := s.orders.FindOne(ctx, orderID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.Cancellable() {
		return nil, ErrInvalidTransition
	}

	// The write is conditional on the order still being cancellable;
	// a fulfillment step that got there first leaves nothing to match.
	now := time.Now()
	err = s.orders.UpdateStatus(ctx, order.ID,
		[]models.OrderStatus{models.OrderPending, models.OrderConfirmed},
		models.OrderCancelled, reason, &now)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderCancelled
	order.CancellationReason = reason
	order.CancelledAt = &now
	return order, nil
}

// AdvanceStatus moves an order one step along the fulfillment chain
// (pending -> confirmed -> shipped -> delivered). Admin only; any
// other move is rejected.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID primitive.ObjectID, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, ErrInvalidTransition
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanAdvance(to) {
		return nil, ErrInvalidTransition
	}

	// Conditional on the status just read: if a concurrent cancel or
	// another advance moved the order first, this write matches nothing.
	err = s.orders.UpdateStatus(ctx, order.ID,
		[]models.OrderStatus{order.Status}, to, "", nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	order.Status = to
	return order, nil
}

// sendConfirmation emails the shopper about the placed order.
// Best-effort: a delivery failure only logs.
func (s *OrderService) sendConfirmation(userID primitive.ObjectID, order *models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.users.FindByID(ctx, userID)
		if err != nil || user.Email == "" {
			return
		}
		subject := "Order Confirmation - V Lady"
		content := fmt.Sprintf("Dear %s,\n\nThank you for your purchase! Your order (ID: %s) has been placed successfully.\n\nTotal Amount: ₹%.2f\n\nThank you for shopping with us!\n", user.Name, order.ID.Hex(), order.Total)
		if err := s.email.Send(user.Email, subject, content); err != nil {
			s.log.Error("failed to send order confirmation", "user", userID.Hex(), "error", err)
		}
	}()
}
