package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// CartStore is the in-memory store.CartStore. One cart per account.
type CartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart // keyed by account id
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[primitive.ObjectID]models.Cart)}
}

func (s *CartStore) Create(ctx context.Context, cart models.Cart) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cart.AccountID]; ok {
		return models.Cart{}, store.ErrDuplicate
	}
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = now()
	cart.UpdatedAt = cart.CreatedAt
	s.carts[cart.AccountID] = cart
	return cart, nil
}

func (s *CartStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[accountID]
	if !ok {
		return models.Cart{}, store.ErrNotFound
	}
	cart.Products = append([]models.CartItem{}, cart.Products...)
	return cart, nil
}

func (s *CartStore) IncrementItem(ctx context.Context, accountID, productID primitive.ObjectID, size string, amount int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[accountID]
	if !ok {
		return false, nil
	}
	for i, item := range cart.Products {
		if item.ProductID == productID && item.Size == size {
			cart.Products[i].BuyAmount += amount
			cart.UpdatedAt = now()
			s.carts[accountID] = cart
			return true, nil
		}
	}
	return false, nil
}

func (s *CartStore) PushItem(ctx context.Context, accountID primitive.ObjectID, item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	cart.Products = append(append([]models.CartItem{}, cart.Products...), item)
	cart.UpdatedAt = now()
	s.carts[accountID] = cart
	return nil
}

func (s *CartStore) PullProduct(ctx context.Context, accountID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	kept := []models.CartItem{}
	for _, item := range cart.Products {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Products = kept
	cart.UpdatedAt = now()
	s.carts[accountID] = cart
	return nil
}

func (s *CartStore) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, accountID)
	return nil
}
