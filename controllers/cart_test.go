package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/middleware"
	"vlady-store/models"
	"vlady-store/services"
	"vlady-store/store"
	"vlady-store/utils"
)

type stubProductStore struct {
	products map[primitive.ObjectID]models.Product
}

func (s stubProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

type stubCartStore struct {
	carts map[primitive.ObjectID]*models.Cart
}

func (s stubCartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := s.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cart, nil
}

func (s stubCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.carts[cart.UserID] = cart
	return nil
}

func TestUpdateItemValidatesPayload(t *testing.T) {
	product := models.Product{ID: primitive.NewObjectID(), Name: "Saree", Price: 100}
	userID := primitive.NewObjectID()

	carts := stubCartStore{carts: map[primitive.ObjectID]*models.Cart{
		userID: {
			UserID: userID,
			Items: []models.CartItem{
				{ProductID: product.ID, Quantity: 1, UnitPrice: product.Price},
			},
		},
	}}
	catalog := stubProductStore{products: map[primitive.ObjectID]models.Product{
		product.ID: product,
	}}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewCartService(carts, catalog, &utils.KeyedMutex{}, log)
	cc := NewCartController(svc, validator.New(), log)

	do := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/cart/items/"+product.ID.Hex(), strings.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"productId": product.ID.Hex()})
		req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: userID}))
		rec := httptest.NewRecorder()
		cc.UpdateItem(rec, req)
		return rec
	}

	// A payload without a quantity never reaches the engine.
	assert.Equal(t, http.StatusBadRequest, do(`{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`{"quantity":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`not json`).Code)

	rec := do(`{"quantity":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, carts.carts[userID].Items[0].Quantity)
}
