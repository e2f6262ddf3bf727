package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// ProductStore implements store.ProductStore on the products collection.
type ProductStore struct {
	col *mongo.Collection
}

func (s *ProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt
	if product.Categories == nil {
		product.Categories = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, mapErr(err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, mapErr(err)
}

func (s *ProductStore) FindByName(ctx context.Context, name string) (models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&product)
	return product, mapErr(err)
}

func (s *ProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mapErr(err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

func (s *ProductStore) List(ctx context.Context, page, limit int64) ([]models.Product, error) {
	opts := options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, product models.Product) (models.Product, error) {
	set := bson.M{
		"name":          product.Name,
		"subTitle":      product.SubTitle,
		"description":   product.Description,
		"sizes":         product.Sizes,
		"price":         product.Price,
		"originalPrice": product.OriginalPrice,
		"slug":          product.Slug,
		"categories":    product.Categories,
		"updatedAt":     now(),
	}
	if product.Image != "" {
		set["image"] = product.Image
	}
	if product.Thumbnail != "" {
		set["thumbnail"] = product.Thumbnail
	}

	var updated models.Product
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	return updated, mapErr(err)
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	return product, mapErr(err)
}

func (s *ProductStore) PullCategory(ctx context.Context, productIDs []primitive.ObjectID, categoryID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": productIDs}},
		bson.M{"$pull": bson.M{"categories": categoryID}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *ProductStore) DeleteWithoutCategories(ctx context.Context) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"categories": bson.M{"$size": 0}})
	if err != nil {
		return 0, mapErr(err)
	}
	return res.DeletedCount, nil
}
