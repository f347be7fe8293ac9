package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartRecompute(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 2, UnitPrice: 499.5},
			{ProductID: primitive.NewObjectID(), Quantity: 1, UnitPrice: 100},
		},
		// Stale values that must be overwritten.
		Total: 9999,
	}
	cart.Items[0].TotalPrice = 1

	cart.Recompute()

	assert.Equal(t, 999.0, cart.Items[0].TotalPrice)
	assert.Equal(t, 100.0, cart.Items[1].TotalPrice)
	assert.Equal(t, 1099.0, cart.Total)
}

func TestCartRecomputeEmpty(t *testing.T) {
	cart := Cart{Total: 50}
	cart.Recompute()
	assert.Zero(t, cart.Total)
}

func TestCartItemLookup(t *testing.T) {
	target := primitive.NewObjectID()
	cart := Cart{
		Items: []CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 1},
			{ProductID: target, Quantity: 3},
		},
	}

	item := cart.Item(target)
	if assert.NotNil(t, item) {
		assert.Equal(t, 3, item.Quantity)
		// The pointer aliases the slice element so callers can mutate.
		item.Quantity = 4
		assert.Equal(t, 4, cart.Items[1].Quantity)
	}

	assert.Nil(t, cart.Item(primitive.NewObjectID()))
}
