package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// OrderStore implements store.OrderStore on the orders collection.
type OrderStore struct {
	col *mongo.Collection
}

func (s *OrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order.CreatedAt = now()
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, mapErr(err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return order, nil
}

func (s *OrderStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}
