package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// OrderStore is the in-memory store.OrderStore.
type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func (s *OrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now()
	order.Carts = append([]models.CartItem{}, order.Carts...)
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *OrderStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := []models.Order{}
	for _, o := range s.orders {
		if o.AccountID == accountID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}
