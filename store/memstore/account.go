package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
)

// AccountStore is the in-memory store.AccountStore.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]models.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[primitive.ObjectID]models.Account)}
}

func (s *AccountStore) Create(ctx context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return models.Account{}, store.ErrDuplicate
		}
	}
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now()
	account.UpdatedAt = account.CreatedAt
	if account.ShippingAddresses == nil {
		account.ShippingAddresses = []primitive.ObjectID{}
	}
	s.accounts[account.ID] = account
	return account, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}
	return account, nil
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return s.find(func(a models.Account) bool { return a.Username == username })
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return s.find(func(a models.Account) bool { return a.Email == email })
}

func (s *AccountStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update store.ProfileUpdate) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}
	if update.FirstName != nil {
		account.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		account.LastName = *update.LastName
	}
	if update.Avatar != nil {
		account.Avatar = *update.Avatar
	}
	account.UpdatedAt = now()
	s.accounts[id] = account
	return account, nil
}

func (s *AccountStore) SetOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if a.Email == email {
			a.OTP = otp
			a.OTPExpiresAt = &expiresAt
			a.UpdatedAt = now()
			s.accounts[id] = a
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *AccountStore) FindByEmailOTP(ctx context.Context, email, otp string, nowAt time.Time) (models.Account, error) {
	return s.find(func(a models.Account) bool {
		return a.Email == email && a.OTP == otp && a.OTP != "" &&
			a.OTPExpiresAt != nil && a.OTPExpiresAt.After(nowAt)
	})
}

func (s *AccountStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return store.ErrNotFound
	}
	account.ResetToken = token
	account.ResetExpiresAt = &expiresAt
	account.UpdatedAt = now()
	s.accounts[id] = account
	return nil
}

func (s *AccountStore) ResetPassword(ctx context.Context, email, token, passwordHash string, nowAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if a.Email == email && a.ResetToken == token && a.ResetToken != "" &&
			a.ResetExpiresAt != nil && a.ResetExpiresAt.After(nowAt) {
			a.Password = passwordHash
			a.OTP = ""
			a.OTPExpiresAt = nil
			a.ResetToken = ""
			a.ResetExpiresAt = nil
			a.UpdatedAt = now()
			s.accounts[id] = a
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *AccountStore) PushShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	account.ShippingAddresses = append(append([]primitive.ObjectID{}, account.ShippingAddresses...), addressID)
	s.accounts[accountID] = account
	return nil
}

func (s *AccountStore) PullShippingAddress(ctx context.Context, accountID, addressID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	kept := []primitive.ObjectID{}
	for _, id := range account.ShippingAddresses {
		if id != addressID {
			kept = append(kept, id)
		}
	}
	account.ShippingAddresses = kept
	s.accounts[accountID] = account
	return nil
}

// Count reports the number of stored accounts. Test helper.
func (s *AccountStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

func (s *AccountStore) find(match func(models.Account) bool) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrNotFound
}
