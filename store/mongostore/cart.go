package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// CartStore implements store.CartStore on the carts collection.
type CartStore struct {
	col *mongo.Collection
}

func (s *CartStore) Create(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.CreatedAt = now()
	cart.UpdatedAt = cart.CreatedAt
	res, err := s.col.InsertOne(ctx, cart)
	if err != nil {
		return models.Cart{}, mapErr(err)
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)
	return cart, nil
}

func (s *CartStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&cart)
	return cart, mapErr(err)
}

func (s *CartStore) IncrementItem(ctx context.Context, accountID, productID primitive.ObjectID, size string, amount int) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{
			"accountId": accountID,
			"products": bson.M{
				"$elemMatch": bson.M{"_id": productID, "size": size},
			},
		},
		bson.M{
			"$inc": bson.M{"products.$.buyAmount": amount},
			"$set": bson.M{"updatedAt": now()},
		},
	)
	if err != nil {
		return false, mapErr(err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CartStore) PushItem(ctx context.Context, accountID primitive.ObjectID, item models.CartItem) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"accountId": accountID},
		bson.M{"$push": bson.M{"products": item}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *CartStore) PullProduct(ctx context.Context, accountID, productID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"accountId": accountID},
		bson.M{"$pull": bson.M{"products": bson.M{"_id": productID}}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *CartStore) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"accountId": accountID})
	return mapErr(err)
}
