package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
	"github.com/nphn2028thief/shoes-store-server/validations"
)

// ShippingAddressController handles address CRUD scoped to the calling
// account, keeping the account's address reference list in step.
type ShippingAddressController struct {
	stores *store.Stores
	logger zerolog.Logger
}

// NewShippingAddressController wires the shipping address controller.
func NewShippingAddressController(stores *store.Stores, logger zerolog.Logger) *ShippingAddressController {
	return &ShippingAddressController{stores: stores, logger: logger}
}

// CreateShippingAddress creates an address and pushes its id onto the
// account's reference list in one transaction.
func (c *ShippingAddressController) CreateShippingAddress(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	var payload validations.AddressPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	var address models.ShippingAddress
	err := c.stores.WithTransaction(r.Context(), func(ctx context.Context) error {
		var err error
		address, err = c.stores.Addresses.Create(ctx, models.ShippingAddress{
			AccountID: accountID,
			Phone:     payload.Phone,
			Address:   payload.Address,
		})
		if err != nil {
			return err
		}
		return c.stores.Accounts.PushShippingAddress(ctx, accountID, address.ID)
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("createShippingAddress: create")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Create shipping address successfully!", "data", address)
}

// GetShippingAddresses lists the caller's addresses.
func (c *ShippingAddressController) GetShippingAddresses(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	addresses, err := c.stores.Addresses.FindByAccount(r.Context(), accountID)
	if err != nil {
		c.logger.Error().Err(err).Msg("getShippingAddresses: list")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondJSON(w, addresses)
}

// GetShippingAddressByID fetches one address owned by the caller.
func (c *ShippingAddressController) GetShippingAddressByID(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	addressID, ok := addressIDFrom(w, r)
	if !ok {
		return
	}

	address, err := c.stores.Addresses.FindOne(r.Context(), addressID, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Shipping address is not exist!")
			return
		}
		c.logger.Error().Err(err).Msg("getShippingAddressByID: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondJSON(w, address)
}

// UpdateShippingAddress updates phone/address on an owned address.
func (c *ShippingAddressController) UpdateShippingAddress(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	addressID, ok := addressIDFrom(w, r)
	if !ok {
		return
	}

	var payload validations.AddressPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	address, err := c.stores.Addresses.Update(r.Context(), addressID, accountID, payload.Phone, payload.Address)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Shipping address is not exist!")
			return
		}
		c.logger.Error().Err(err).Msg("updateShippingAddress: update")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Update shipping address successfully!", "data", address)
}

// DeleteShippingAddress deletes an owned address and pulls it from the
// account's reference list in one transaction.
func (c *ShippingAddressController) DeleteShippingAddress(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	addressID, ok := addressIDFrom(w, r)
	if !ok {
		return
	}

	err := c.stores.WithTransaction(r.Context(), func(ctx context.Context) error {
		if _, err := c.stores.Addresses.Delete(ctx, addressID, accountID); err != nil {
			return err
		}
		return c.stores.Accounts.PullShippingAddress(ctx, accountID, addressID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Shipping address is not exist!")
			return
		}
		c.logger.Error().Err(err).Msg("deleteShippingAddress: delete")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Delete shipping address successfully!", "shippingAddressId", addressID.Hex())
}

func addressIDFrom(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	hex := mux.Vars(r)["shippingAddressId"]
	if !validations.IsObjectID(hex) {
		utils.RespondBadRequest(w, "")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		utils.RespondBadRequest(w, "")
		return primitive.NilObjectID, false
	}
	return id, true
}
