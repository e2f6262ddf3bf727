package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/models"
)

// AddressStore implements store.AddressStore on the shippingAddresses
// collection.
type AddressStore struct {
	col *mongo.Collection
}

func (s *AddressStore) Create(ctx context.Context, address models.ShippingAddress) (models.ShippingAddress, error) {
	address.CreatedAt = now()
	address.UpdatedAt = address.CreatedAt
	res, err := s.col.InsertOne(ctx, address)
	if err != nil {
		return models.ShippingAddress{}, mapErr(err)
	}
	address.ID = res.InsertedID.(primitive.ObjectID)
	return address, nil
}

func (s *AddressStore) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.ShippingAddress, error) {
	cursor, err := s.col.Find(ctx, bson.M{"accountId": accountID})
	if err != nil {
		return nil, mapErr(err)
	}
	addresses := []models.ShippingAddress{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, mapErr(err)
	}
	return addresses, nil
}

func (s *AddressStore) FindOne(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := s.col.FindOne(ctx, bson.M{"_id": id, "accountId": accountID}).Decode(&address)
	return address, mapErr(err)
}

func (s *AddressStore) Update(ctx context.Context, id, accountID primitive.ObjectID, phone, addr string) (models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "accountId": accountID},
		bson.M{"$set": bson.M{"phone": phone, "address": addr, "updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&address)
	return address, mapErr(err)
}

func (s *AddressStore) Delete(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id, "accountId": accountID}).Decode(&address)
	return address, mapErr(err)
}
