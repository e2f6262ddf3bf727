package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// AddressStore is the in-memory store.AddressStore.
type AddressStore struct {
	mu        sync.Mutex
	order     []primitive.ObjectID
	addresses map[primitive.ObjectID]models.ShippingAddress
}

func NewAddressStore() *AddressStore {
	return &AddressStore{addresses: make(map[primitive.ObjectID]models.ShippingAddress)}
}

func (s *AddressStore) Create(ctx context.Context, address models.ShippingAddress) (models.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address.ID = primitive.NewObjectID()
	address.CreatedAt = now()
	address.UpdatedAt = address.CreatedAt
	s.addresses[address.ID] = address
	s.order = append(s.order, address.ID)
	return address, nil
}

func (s *AddressStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addresses := []models.ShippingAddress{}
	for _, id := range s.order {
		if a := s.addresses[id]; a.AccountID == accountID {
			addresses = append(addresses, a)
		}
	}
	return addresses, nil
}

func (s *AddressStore) FindOne(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok || address.AccountID != accountID {
		return models.ShippingAddress{}, store.ErrNotFound
	}
	return address, nil
}

func (s *AddressStore) Update(ctx context.Context, id, accountID primitive.ObjectID, phone, addr string) (models.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok || address.AccountID != accountID {
		return models.ShippingAddress{}, store.ErrNotFound
	}
	address.Phone = phone
	address.Address = addr
	address.UpdatedAt = now()
	s.addresses[id] = address
	return address, nil
}

func (s *AddressStore) Delete(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok || address.AccountID != accountID {
		return models.ShippingAddress{}, store.ErrNotFound
	}
	delete(s.addresses, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return address, nil
}
