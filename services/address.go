package services

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/store"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// AddressService is the per-user address book. Its one real invariant:
// at most one address per user carries the default flag, maintained
// atomically with the write that sets a new default.
type AddressService struct {
	addresses AddressStore
	txn       Txn
}

// NewAddressService creates an AddressService.
func NewAddressService(addresses AddressStore, txn Txn) *AddressService {
	return &AddressService{addresses: addresses, txn: txn}
}

// List returns all of the user's addresses.
func (s *AddressService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	return s.addresses.FindByUser(ctx, userID)
}

// Get returns one address owned by the user.
func (s *AddressService) Get(ctx context.Context, userID, addressID primitive.ObjectID) (*models.Address, error) {
	address, err := s.addresses.FindOne(ctx, addressID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAddressNotFound
	}
	return address, err
}

// Create adds a new address. When it is marked default, the previous
// default is demoted in the same transaction.
func (s *AddressService) Create(ctx context.Context, address *models.Address) error {
	if !pincodePattern.MatchString(address.Pincode) {
		return ErrInvalidPincode
	}

	if !address.IsDefault {
		return s.addresses.Create(ctx, address)
	}
	return s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.addresses.Create(ctx, address); err != nil {
			return err
		}
		return s.addresses.ClearDefault(ctx, address.UserID, address.ID)
	})
}

// Update rewrites an address owned by the user, demoting other
// defaults when this one becomes the default.
func (s *AddressService) Update(ctx context.Context, address *models.Address) error {
	if !pincodePattern.MatchString(address.Pincode) {
		return ErrInvalidPincode
	}

	write := func(ctx context.Context) error {
		err := s.addresses.Update(ctx, address)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAddressNotFound
		}
		return err
	}

	if !address.IsDefault {
		return write(ctx)
	}
	return s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return err
		}
		return s.addresses.ClearDefault(ctx, address.UserID, address.ID)
	})
}

// Delete removes an address owned by the user.
func (s *AddressService) Delete(ctx context.Context, userID, addressID primitive.ObjectID) error {
	err := s.addresses.Delete(ctx, addressID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAddressNotFound
	}
	return err
}
