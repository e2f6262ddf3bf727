package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
	"github.com/nphn2028thief/shoes-store-server/validations"
)

// CategoryController handles category CRUD, including the delete
// cascade over product back-links.
type CategoryController struct {
	stores *store.Stores
	logger zerolog.Logger
}

// NewCategoryController wires the category controller.
func NewCategoryController(stores *store.Stores, logger zerolog.Logger) *CategoryController {
	return &CategoryController{stores: stores, logger: logger}
}

// CreateCategory creates a category with a derived slug.
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload validations.CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := c.stores.Categories.FindByName(ctx, payload.Name); err == nil {
		utils.RespondConflict(w, "Category already exist!")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.logger.Error().Err(err).Msg("createCategory: lookup")
		utils.RespondInternalError(w, "Create category failure!", "")
		return
	}

	_, err := c.stores.Categories.Create(ctx, models.Category{
		Name: payload.Name,
		Slug: slug.Make(payload.Name),
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("createCategory: create")
		utils.RespondInternalError(w, "Create category failure!", "")
		return
	}

	utils.RespondSuccess(w, "Create category successfully!", "", nil)
}

// GetCategories lists all categories.
func (c *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.stores.Categories.List(r.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("getCategories: list")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", categories)
}

// UpdateCategory renames a category and re-derives its slug.
func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryIDHex := mux.Vars(r)["categoryId"]
	if !validations.IsObjectID(categoryIDHex) {
		utils.RespondBadRequest(w, "Category Id is not valid!")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(categoryIDHex)
	if err != nil {
		utils.RespondBadRequest(w, "Category Id is not valid!")
		return
	}

	var payload validations.CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "Category name is not valid!")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, "Category name is not valid!")
		return
	}

	category, err := c.stores.Categories.Update(r.Context(), categoryID, payload.Name, slug.Make(payload.Name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Category is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("updateCategory: update")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Update category successfully!", "data", category)
}

// DeleteCategory removes a category, pulls its id from every
// referencing product and deletes products left without a category.
// The whole cascade commits or rolls back together.
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryIDHex := mux.Vars(r)["categoryId"]
	if !validations.IsObjectID(categoryIDHex) {
		utils.RespondBadRequest(w, "Category id is not valid!")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(categoryIDHex)
	if err != nil {
		utils.RespondBadRequest(w, "Category id is not valid!")
		return
	}

	err = c.stores.WithTransaction(r.Context(), func(ctx context.Context) error {
		category, err := c.stores.Categories.Delete(ctx, categoryID)
		if err != nil {
			return err
		}
		if err := c.stores.Products.PullCategory(ctx, category.Products, categoryID); err != nil {
			return err
		}
		_, err = c.stores.Products.DeleteWithoutCategories(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Category is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("deleteCategory: cascade")
		utils.RespondInternalError(w, "Delete category failure!", "")
		return
	}

	utils.RespondSuccess(w, "Delete category successfully!", "categoryId", categoryIDHex)
}
