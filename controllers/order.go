package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
)

// OrderController turns carts into immutable orders.
type OrderController struct {
	stores *store.Stores
	logger zerolog.Logger
}

// NewOrderController wires the order controller.
func NewOrderController(stores *store.Stores, logger zerolog.Logger) *OrderController {
	return &OrderController{stores: stores, logger: logger}
}

// CreateOrder snapshots the caller's cart into a new order and deletes
// the cart, both inside one transaction. The total is computed
// server-side from the snapshot.
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	var order models.Order
	err := c.stores.WithTransaction(r.Context(), func(ctx context.Context) error {
		cart, err := c.stores.Carts.FindByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if len(cart.Products) == 0 {
			return store.ErrNotFound
		}

		var total float64
		for _, item := range cart.Products {
			total += item.Price * float64(item.BuyAmount)
		}

		order, err = c.stores.Orders.Create(ctx, models.Order{
			AccountID: accountID,
			Carts:     cart.Products,
			Total:     total,
		})
		if err != nil {
			return err
		}
		return c.stores.Carts.DeleteByAccount(ctx, accountID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondBadRequest(w, "Your cart is empty!")
			return
		}
		c.logger.Error().Err(err).Msg("createOrder: checkout")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "", "data", order)
}

// GetMyOrders lists every order of the caller.
func (c *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	orders, err := c.stores.Orders.FindByAccount(r.Context(), accountID)
	if err != nil {
		c.logger.Error().Err(err).Msg("getMyOrders: list")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", orders)
}
