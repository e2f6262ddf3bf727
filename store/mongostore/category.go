package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// CategoryStore implements store.CategoryStore on the categories
// collection.
type CategoryStore struct {
	col *mongo.Collection
}

func (s *CategoryStore) Create(ctx context.Context, category models.Category) (models.Category, error) {
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt
	if category.Products == nil {
		category.Products = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, category)
	if err != nil {
		return models.Category{}, mapErr(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return category, nil
}

func (s *CategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *CategoryStore) FindByName(ctx context.Context, name string) (models.Category, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, mapErr(err)
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, name, slug string) (models.Category, error) {
	var category models.Category
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "slug": slug, "updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	return category, mapErr(err)
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&category)
	return category, mapErr(err)
}

func (s *CategoryStore) PushProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": categoryIDs}},
		bson.M{"$push": bson.M{"products": productID}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *CategoryStore) PullProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": categoryIDs}},
		bson.M{"$pull": bson.M{"products": productID}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *CategoryStore) findOne(ctx context.Context, filter bson.M) (models.Category, error) {
	var category models.Category
	err := s.col.FindOne(ctx, filter).Decode(&category)
	return category, mapErr(err)
}
