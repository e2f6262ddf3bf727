package controllers

import (
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

// CartController handles the single cart of each account.
type CartController struct {
	carts  store.CartStore
	logger zerolog.Logger
}

// NewCartController wires the cart controller.
func NewCartController(carts store.CartStore, logger zerolog.Logger) *CartController {
	return &CartController{carts: carts, logger: logger}
}

// AddToCart adds a line item. A line already holding the same product
// and size has its buyAmount incremented; otherwise a new line is
// pushed. The first item creates the cart.
func (c *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	var payload validations.CartItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}
	productID, err := primitive.ObjectIDFromHex(payload.ID)
	if err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	item := models.CartItem{
		ProductID: productID,
		Name:      payload.Name,
		Size:      payload.Size,
		Image:     payload.Image,
		Price:     payload.Price,
		BuyAmount: payload.BuyAmount,
	}

	ctx := r.Context()
	_, err = c.carts.FindByAccount(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		cart, err := c.carts.Create(ctx, models.Cart{
			AccountID: accountID,
			Products:  []models.CartItem{item},
		})
		if err != nil {
			c.logger.Error().Err(err).Msg("addToCart: create cart")
			utils.RespondInternalError(w, "", "")
			return
		}
		utils.RespondSuccess(w, "Add product to cart successfully!", "data", cart)
		return
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("addToCart: lookup cart")
		utils.RespondInternalError(w, "", "")
		return
	}

	matched, err := c.carts.IncrementItem(ctx, accountID, productID, item.Size, item.BuyAmount)
	if err != nil {
		c.logger.Error().Err(err).Msg("addToCart: increment")
		utils.RespondInternalError(w, "", "")
		return
	}
	if !matched {
		if err := c.carts.PushItem(ctx, accountID, item); err != nil {
			c.logger.Error().Err(err).Msg("addToCart: push")
			utils.RespondInternalError(w, "", "")
			return
		}
	}

	cart, err := c.carts.FindByAccount(ctx, accountID)
	if err != nil {
		c.logger.Error().Err(err).Msg("addToCart: reload cart")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "Add product to cart successfully!", "data", cart)
}

// GetCart returns the caller's line items. No cart reads as an empty
// list.
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	cart, err := c.carts.FindByAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondSuccess(w, "", "data", []models.CartItem{})
			return
		}
		c.logger.Error().Err(err).Msg("getCart: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", cart.Products)
}

// DeleteFromCart pulls every line with the given product id, regardless
// of size.
func (c *CartController) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	productIDHex := mux.Vars(r)["productId"]
	if !validations.IsObjectID(productIDHex) {
		utils.RespondBadRequest(w, "")
		return
	}
	productID, err := primitive.ObjectIDFromHex(productIDHex)
	if err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	if err := c.carts.PullProduct(r.Context(), accountID, productID); err != nil && !errors.Is(err, store.ErrNotFound) {
		c.logger.Error().Err(err).Msg("deleteFromCart: pull")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "Delete product from cart successfully!", "productId", productIDHex)
}
