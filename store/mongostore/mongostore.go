// Package mongostore implements the store interfaces on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nphn2028thief/shoes-store-server/store"
)

const databaseName = "shoes-store"

// New builds the full store bundle backed by the given client.
func New(client *mongo.Client) *store.Stores {
	db := client.Database(databaseName)
	return &store.Stores{
		Accounts:   &AccountStore{col: db.Collection("accounts")},
		Products:   &ProductStore{col: db.Collection("products")},
		Categories: &CategoryStore{col: db.Collection("categories")},
		Carts:      &CartStore{col: db.Collection("carts")},
		Orders:     &OrderStore{col: db.Collection("orders")},
		Addresses:  &AddressStore{col: db.Collection("shippingAddresses")},
		Runner:     &TxnRunner{client: client},
	}
}

// Connect dials MongoDB and pings it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the application relies on.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	db := client.Database(databaseName)
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("accounts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "accountId", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique,
	})
	return err
}

// TxnRunner runs a function inside a mongo session transaction. Store
// calls made with the session context join the transaction.
type TxnRunner struct {
	client *mongo.Client
}

func (r *TxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// mapErr translates driver errors into store sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
