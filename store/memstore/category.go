package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// CategoryStore is the in-memory store.CategoryStore.
type CategoryStore struct {
	mu         sync.Mutex
	order      []primitive.ObjectID
	categories map[primitive.ObjectID]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[primitive.ObjectID]models.Category)}
}

func (s *CategoryStore) Create(ctx context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt
	if category.Products == nil {
		category.Products = []primitive.ObjectID{}
	}
	s.categories[category.ID] = category
	s.order = append(s.order, category.ID)
	return category, nil
}

func (s *CategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	return category, nil
}

func (s *CategoryStore) FindByName(ctx context.Context, name string) (models.Category, error) {
	return s.find(func(c models.Category) bool { return c.Name == name })
}

func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	return s.find(func(c models.Category) bool { return c.Slug == slug })
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := []models.Category{}
	for _, id := range s.order {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, name, slug string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	category.Name = name
	category.Slug = slug
	category.UpdatedAt = now()
	s.categories[id] = category
	return category, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	delete(s.categories, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return category, nil
}

func (s *CategoryStore) PushProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range categoryIDs {
		category, ok := s.categories[id]
		if !ok {
			continue
		}
		category.Products = append(append([]primitive.ObjectID{}, category.Products...), productID)
		s.categories[id] = category
	}
	return nil
}

func (s *CategoryStore) PullProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range categoryIDs {
		category, ok := s.categories[id]
		if !ok {
			continue
		}
		kept := []primitive.ObjectID{}
		for _, p := range category.Products {
			if p != productID {
				kept = append(kept, p)
			}
		}
		category.Products = kept
		s.categories[id] = category
	}
	return nil
}

func (s *CategoryStore) find(match func(models.Category) bool) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if match(c) {
			return c, nil
		}
	}
	return models.Category{}, store.ErrNotFound
}
