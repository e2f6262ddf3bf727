package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// AccountStore implements store.AccountStore on the accounts collection.
type AccountStore struct {
	col *mongo.Collection
}

func (s *AccountStore) Create(ctx context.Context, account models.Account) (models.Account, error) {
	account.CreatedAt = now()
	account.UpdatedAt = account.CreatedAt
	if account.ShippingAddresses == nil {
		account.ShippingAddresses = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, account)
	if err != nil {
		return models.Account{}, mapErr(err)
	}
	account.ID = res.InsertedID.(primitive.ObjectID)
	return account, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AccountStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update store.ProfileUpdate) (models.Account, error) {
	set := bson.M{"updatedAt": now()}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}

	var account models.Account
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&account)
	return account, mapErr(err)
}

func (s *AccountStore) SetOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"otp": otp, "otpExpiresAt": expiresAt, "updatedAt": now()}},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *AccountStore) FindByEmailOTP(ctx context.Context, email, otp string, now time.Time) (models.Account, error) {
	return s.findOne(ctx, bson.M{
		"email":        email,
		"otp":          otp,
		"otpExpiresAt": bson.M{"$gt": now},
	})
}

func (s *AccountStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiresAt time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"resetToken": token, "resetExpiresAt": expiresAt, "updatedAt": now()}},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *AccountStore) ResetPassword(ctx context.Context, email, token, passwordHash string, nowAt time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{
			"email":          email,
			"resetToken":     token,
			"resetExpiresAt": bson.M{"$gt": nowAt},
		},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": now()},
			"$unset": bson.M{"otp": "", "otpExpiresAt": "", "resetToken": "", "resetExpiresAt": ""},
		},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *AccountStore) PushShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$push": bson.M{"shippingAddresses": addressID}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *AccountStore) PullShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$pull": bson.M{"shippingAddresses": addressID}, "$set": bson.M{"updatedAt": now()}},
	)
	return mapErr(err)
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (models.Account, error) {
	var account models.Account
	err := s.col.FindOne(ctx, filter).Decode(&account)
	return account, mapErr(err)
}
