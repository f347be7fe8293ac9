package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/store"
)

// In-memory fakes for the storage interfaces. All of them copy on the
// way in and out so the services never share memory with the "stored"
// documents, matching what a real driver gives us.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[primitive.ObjectID]models.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProductStore) setPrice(id primitive.ObjectID, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

func (s *fakeProductStore) remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[primitive.ObjectID]models.Cart)}
}

func (s *fakeCartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return &out, nil
}

func (s *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	saved := *cart
	saved.Items = append([]models.CartItem(nil), cart.Items...)
	s.carts[cart.UserID] = saved
	return nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[primitive.ObjectID]models.Order)}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	saved := *order
	saved.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders[order.ID] = saved
	return nil
}

func (s *fakeOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) FindOne(_ context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus, reason string, cancelledAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	matched := false
	for _, status := range from {
		if o.Status == status {
			matched = true
			break
		}
	}
	if !matched {
		return store.ErrNotFound
	}
	o.Status = to
	if reason != "" {
		o.CancellationReason = reason
	}
	if cancelledAt != nil {
		o.CancelledAt = cancelledAt
	}
	s.orders[id] = o
	return nil
}

type fakeAddressStore struct {
	mu        sync.Mutex
	addresses map[primitive.ObjectID]models.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: make(map[primitive.ObjectID]models.Address)}
}

func (s *fakeAddressStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Address
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAddressStore) FindOne(_ context.Context, id, userID primitive.ObjectID) (*models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *fakeAddressStore) Create(_ context.Context, address *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	s.addresses[address.ID] = *address
	return nil
}

func (s *fakeAddressStore) Update(_ context.Context, address *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.addresses[address.ID]
	if !ok || existing.UserID != address.UserID {
		return store.ErrNotFound
	}
	s.addresses[address.ID] = *address
	return nil
}

func (s *fakeAddressStore) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.addresses[id]
	if !ok || a.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.addresses, id)
	return nil
}

func (s *fakeAddressStore) ClearDefault(_ context.Context, userID, exceptID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.addresses {
		if a.UserID == userID && a.IsDefault && id != exceptID {
			a.IsDefault = false
			s.addresses[id] = a
		}
	}
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Mobile == mobile {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) UpsertOTP(_ context.Context, mobile, codeHash string, generatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Mobile == mobile {
			u.OTP = models.OTP{CodeHash: codeHash, GeneratedAt: generatedAt}
			s.users[id] = u
			return nil
		}
	}
	id := primitive.NewObjectID()
	s.users[id] = models.User{
		ID:        id,
		Mobile:    mobile,
		OTP:       models.OTP{CodeHash: codeHash, GeneratedAt: generatedAt},
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeUserStore) IncrementOTPAttempts(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.OTP.Attempts++
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) MarkVerified(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.IsVerified = true
	u.OTP = models.OTP{}
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Name = name
	u.Email = email
	s.users[id] = u
	return &u, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (s *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessionStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

type fakeWishlistStore struct {
	mu        sync.Mutex
	wishlists map[primitive.ObjectID][]primitive.ObjectID
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{wishlists: make(map[primitive.ObjectID][]primitive.ObjectID)}
}

func (s *fakeWishlistStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.wishlists[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &models.Wishlist{
		UserID:     userID,
		ProductIDs: append([]primitive.ObjectID(nil), ids...),
	}, nil
}

func (s *fakeWishlistStore) AddProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlists[userID] {
		if id == productID {
			return nil
		}
	}
	s.wishlists[userID] = append(s.wishlists[userID], productID)
	return nil
}

func (s *fakeWishlistStore) RemoveProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.wishlists[userID]
	out := ids[:0]
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	if len(out) != len(ids) {
		s.wishlists[userID] = out
	}
	return nil
}

type fakeContactStore struct {
	mu       sync.Mutex
	contacts []models.Contact
}

func (s *fakeContactStore) Create(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact.ID = primitive.NewObjectID()
	s.contacts = append(s.contacts, *contact)
	return nil
}

// fakeTxn runs the function directly. Atomicity is the driver's
// business; the services only need the callback shape.
type fakeTxn struct{}

func (fakeTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentEmail struct {
	To      string
	Subject string
	Content string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *fakeEmailSender) Send(to, subject, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{To: to, Subject: subject, Content: content})
	return nil
}

func (s *fakeEmailSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *fakeEmailSender) last() sentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSMSSender) Send(to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to+": "+body)
	return nil
}

func (s *fakeSMSSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
