package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// ProductStore is the in-memory store.ProductStore.
type ProductStore struct {
	mu       sync.Mutex
	order    []primitive.ObjectID
	products map[primitive.ObjectID]models.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *ProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == product.Slug {
			return models.Product{}, store.ErrDuplicate
		}
	}
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt
	if product.Categories == nil {
		product.Categories = []primitive.ObjectID{}
	}
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)
	return product, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return product, nil
}

func (s *ProductStore) FindByName(ctx context.Context, name string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (s *ProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := []models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) List(ctx context.Context, page, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := (page - 1) * limit
	products := []models.Product{}
	for i := start; i < start+limit && i < int64(len(s.order)); i++ {
		products = append(products, s.products[s.order[i]])
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	existing.Name = product.Name
	existing.SubTitle = product.SubTitle
	existing.Description = product.Description
	existing.Sizes = product.Sizes
	existing.Price = product.Price
	existing.OriginalPrice = product.OriginalPrice
	existing.Slug = product.Slug
	existing.Categories = product.Categories
	if product.Image != "" {
		existing.Image = product.Image
	}
	if product.Thumbnail != "" {
		existing.Thumbnail = product.Thumbnail
	}
	existing.UpdatedAt = now()
	s.products[id] = existing
	return existing, nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	s.remove(id)
	return product, nil
}

func (s *ProductStore) PullCategory(ctx context.Context, productIDs []primitive.ObjectID, categoryID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range productIDs {
		product, ok := s.products[id]
		if !ok {
			continue
		}
		kept := []primitive.ObjectID{}
		for _, c := range product.Categories {
			if c != categoryID {
				kept = append(kept, c)
			}
		}
		product.Categories = kept
		s.products[id] = product
	}
	return nil
}

func (s *ProductStore) DeleteWithoutCategories(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, p := range s.products {
		if len(p.Categories) == 0 {
			s.remove(id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *ProductStore) remove(id primitive.ObjectID) {
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
