package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
)

func testAddress(userID primitive.ObjectID, isDefault bool) *models.Address {
	return &models.Address{
		UserID:    userID,
		Name:      "Asha",
		Type:      "home",
		Street:    "12 MG Road",
		City:      "Chennai",
		State:     "TN",
		Pincode:   "600001",
		IsDefault: isDefault,
	}
}

func TestAddressCreateValidatesPincode(t *testing.T) {
	svc := NewAddressService(newFakeAddressStore(), fakeTxn{})
	userID := primitive.NewObjectID()

	for _, pincode := range []string{"", "12345", "1234567", "60000a", "60 001"} {
		address := testAddress(userID, false)
		address.Pincode = pincode
		err := svc.Create(context.Background(), address)
		assert.ErrorIs(t, err, ErrInvalidPincode, "pincode %q", pincode)
	}
}

func TestAddressCreateDemotesPreviousDefault(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store, fakeTxn{})
	userID := primitive.NewObjectID()
	ctx := context.Background()

	first := testAddress(userID, true)
	require.NoError(t, svc.Create(ctx, first))

	second := testAddress(userID, true)
	require.NoError(t, svc.Create(ctx, second))

	addresses, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddressUpdateDemotesPreviousDefault(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store, fakeTxn{})
	userID := primitive.NewObjectID()
	ctx := context.Background()

	first := testAddress(userID, true)
	require.NoError(t, svc.Create(ctx, first))
	second := testAddress(userID, false)
	require.NoError(t, svc.Create(ctx, second))

	second.IsDefault = true
	require.NoError(t, svc.Update(ctx, second))

	updated, err := svc.Get(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
}

func TestAddressDefaultsIsolatedPerUser(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store, fakeTxn{})
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bala := primitive.NewObjectID()

	aliceHome := testAddress(alice, true)
	require.NoError(t, svc.Create(ctx, aliceHome))
	require.NoError(t, svc.Create(ctx, testAddress(bala, true)))

	// Bala's new default never touches Alice's.
	kept, err := svc.Get(ctx, alice, aliceHome.ID)
	require.NoError(t, err)
	assert.True(t, kept.IsDefault)
}

func TestAddressAccessScopedToOwner(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store, fakeTxn{})
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	address := testAddress(owner, false)
	require.NoError(t, svc.Create(ctx, address))

	_, err := svc.Get(ctx, stranger, address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	err = svc.Delete(ctx, stranger, address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	stolen := *address
	stolen.UserID = stranger
	err = svc.Update(ctx, &stolen)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressDelete(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store, fakeTxn{})
	ctx := context.Background()
	userID := primitive.NewObjectID()

	address := testAddress(userID, false)
	require.NoError(t, svc.Create(ctx, address))

	require.NoError(t, svc.Delete(ctx, userID, address.ID))
	_, err := svc.Get(ctx, userID, address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	err = svc.Delete(ctx, userID, address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
