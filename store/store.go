// Package store defines the persistence boundary of the application.
// Controllers depend on these interfaces; MongoDB implementations live
// in mongostore and an in-memory test double in memstore.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
)

var (
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate key")
)

// ProfileUpdate carries the sparse updateMe fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// Empty reports whether no field is set.
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Avatar == nil
}

// AccountStore persists accounts and the OTP/reset state that hangs off
// them.
type AccountStore interface {
	Create(ctx context.Context, account models.Account) (models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (models.Account, error)

	// SetOTP stores a one-time password and its absolute expiry.
	SetOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
	// FindByEmailOTP matches email + otp with the expiry still in the
	// future. It does not clear the OTP.
	FindByEmailOTP(ctx context.Context, email, otp string, now time.Time) (models.Account, error)
	// SetResetToken records the single-use token minted after a
	// successful OTP verification.
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiresAt time.Time) error
	// ResetPassword sets the new password hash if the reset token
	// matches and is unexpired, clearing otp and reset state. ErrNotFound
	// means the token did not match.
	ResetPassword(ctx context.Context, email, token, passwordHash string, now time.Time) error

	PushShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error
	PullShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error
}

// ProductStore persists catalog products.
type ProductStore interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByName(ctx context.Context, name string) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	List(ctx context.Context, page, limit int64) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error)

	// PullCategory removes a category reference from the given products.
	PullCategory(ctx context.Context, productIDs []primitive.ObjectID, categoryID primitive.ObjectID) error
	// DeleteWithoutCategories removes every product whose category list
	// is empty. It returns the number of products deleted.
	DeleteWithoutCategories(ctx context.Context) (int64, error)
}

// CategoryStore persists categories and their product back-links.
type CategoryStore interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	FindByName(ctx context.Context, name string) (models.Category, error)
	FindBySlug(ctx context.Context, slug string) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name, slug string) (models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error)

	PushProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error
	PullProduct(ctx context.Context, categoryIDs []primitive.ObjectID, productID primitive.ObjectID) error
}

// CartStore persists the single cart of each account.
type CartStore interface {
	Create(ctx context.Context, cart models.Cart) (models.Cart, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID) (models.Cart, error)
	// IncrementItem adds amount to the buyAmount of the line matching
	// productID and size. The bool reports whether a line matched.
	IncrementItem(ctx context.Context, accountID, productID primitive.ObjectID, size string, amount int) (bool, error)
	PushItem(ctx context.Context, accountID primitive.ObjectID, item models.CartItem) error
	// PullProduct removes every line with the given product id,
	// regardless of size.
	PullProduct(ctx context.Context, accountID, productID primitive.ObjectID) error
	DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error
}

// OrderStore persists immutable orders.
type OrderStore interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.Order, error)
}

// AddressStore persists shipping addresses, always scoped by owner.
type AddressStore interface {
	Create(ctx context.Context, address models.ShippingAddress) (models.ShippingAddress, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.ShippingAddress, error)
	FindOne(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error)
	Update(ctx context.Context, id, accountID primitive.ObjectID, phone, address string) (models.ShippingAddress, error)
	Delete(ctx context.Context, id, accountID primitive.ObjectID) (models.ShippingAddress, error)
}

// TxnRunner executes fn transactionally: either every write made
// through the stores with the given context commits, or none do.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stores bundles every store plus the transaction runner for wiring.
type Stores struct {
	Accounts   AccountStore
	Products   ProductStore
	Categories CategoryStore
	Carts      CartStore
	Orders     OrderStore
	Addresses  AddressStore
	Runner     TxnRunner
}

// WithTransaction runs fn through the configured runner, or directly
// when no runner is set.
func (s *Stores) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.Runner == nil {
		return fn(ctx)
	}
	return s.Runner.WithTransaction(ctx, fn)
}
