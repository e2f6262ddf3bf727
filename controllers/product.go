package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
	"github.com/nphn2028thief/shoes-store-server/validations"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxUploadBytes   = 32 << 20
)

// ProductController handles catalog products and keeps the category
// back-link lists consistent with each write.
type ProductController struct {
	stores    *store.Stores
	uploadDir string
	logger    zerolog.Logger
}

// NewProductController wires the product controller. uploadDir is where
// uploaded images are stored; they are served under /public/.
func NewProductController(stores *store.Stores, uploadDir string, logger zerolog.Logger) *ProductController {
	return &ProductController{stores: stores, uploadDir: uploadDir, logger: logger}
}

// CreateProduct creates a product from a multipart request: a "data"
// field holding the JSON payload and an "image" file. The insert and
// the back-link pushes commit together.
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	var payload validations.ProductPayload
	if err := json.Unmarshal([]byte(r.FormValue("data")), &payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}
	categoryIDs, err := parseObjectIDs(payload.Categories)
	if err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	ctx := r.Context()
	if _, err := c.stores.Products.FindByName(ctx, payload.Name); err == nil {
		utils.RespondConflict(w, "Product already exist!")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.logger.Error().Err(err).Msg("createProduct: lookup")
		utils.RespondInternalError(w, "Create new product failure!", "")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondBadRequest(w, "Product image is required!")
		return
	}
	defer file.Close()

	filename, err := utils.SaveUpload(c.uploadDir, file, header)
	if err != nil {
		c.logger.Error().Err(err).Msg("createProduct: save upload")
		utils.RespondInternalError(w, "Create new product failure!", "")
		return
	}
	imageURL := requestBaseURL(r) + "/public/" + filename

	var product models.Product
	err = c.stores.WithTransaction(ctx, func(ctx context.Context) error {
		product, err = c.stores.Products.Create(ctx, models.Product{
			Name:          payload.Name,
			SubTitle:      payload.SubTitle,
			Description:   payload.Description,
			Sizes:         toSizes(payload.Sizes),
			Image:         imageURL,
			Thumbnail:     imageURL,
			Price:         payload.Price,
			OriginalPrice: payload.OriginalPrice,
			Slug:          slug.Make(payload.Name),
			Categories:    categoryIDs,
		})
		if err != nil {
			return err
		}
		return c.stores.Categories.PushProduct(ctx, categoryIDs, product.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondConflict(w, "Product already exist!")
			return
		}
		c.logger.Error().Err(err).Msg("createProduct: create")
		utils.RespondInternalError(w, "Create new product failure!", "")
		return
	}

	utils.RespondSuccess(w, "Create new product successfully!", "data", product)
}

// GetProducts lists products with page/limit pagination. Out-of-range
// values are clamped rather than passed through.
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	products, err := c.stores.Products.List(r.Context(), page, limit)
	if err != nil {
		c.logger.Error().Err(err).Msg("getProducts: list")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", products)
}

// GetProductByID returns one product.
func (c *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productIDHex := mux.Vars(r)["productId"]
	if !validations.IsObjectID(productIDHex) {
		utils.RespondBadRequest(w, "Product Id is not valid!")
		return
	}
	productID, _ := primitive.ObjectIDFromHex(productIDHex)

	product, err := c.stores.Products.FindByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Product is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("getProductByID: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", product)
}

// GetProductsByCategory resolves a category by slug and returns its
// products populated from the back-link list.
func (c *ProductController) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := mux.Vars(r)["categorySlug"]
	if categorySlug == "" {
		utils.RespondBadRequest(w, "")
		return
	}

	category, err := c.stores.Categories.FindBySlug(r.Context(), categorySlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Category does not exist!")
			return
		}
		c.logger.Error().Err(err).Msg("getProductsByCategory: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}

	products, err := c.stores.Products.FindByIDs(r.Context(), category.Products)
	if err != nil {
		c.logger.Error().Err(err).Msg("getProductsByCategory: populate")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "", "data", products)
}

// UpdateProduct applies a full product payload and reconciles category
// back-links: removed categories are pulled, added ones pushed, inside
// one transaction.
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productIDHex := mux.Vars(r)["productId"]
	if !validations.IsObjectID(productIDHex) {
		utils.RespondBadRequest(w, "Product id is not valid!")
		return
	}
	productID, _ := primitive.ObjectIDFromHex(productIDHex)

	var payload validations.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}
	categoryIDs, err := parseObjectIDs(payload.Categories)
	if err != nil {
		utils.RespondBadRequest(w, "")
		return
	}

	ctx := r.Context()
	existing, err := c.stores.Products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Product is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("updateProduct: lookup")
		utils.RespondInternalError(w, "Update product failure!", "")
		return
	}

	var product models.Product
	err = c.stores.WithTransaction(ctx, func(ctx context.Context) error {
		product, err = c.stores.Products.Update(ctx, productID, models.Product{
			Name:          payload.Name,
			SubTitle:      payload.SubTitle,
			Description:   payload.Description,
			Sizes:         toSizes(payload.Sizes),
			Price:         payload.Price,
			OriginalPrice: payload.OriginalPrice,
			Slug:          slug.Make(payload.Name),
			Categories:    categoryIDs,
		})
		if err != nil {
			return err
		}
		removed, added := diffIDs(existing.Categories, categoryIDs)
		if err := c.stores.Categories.PullProduct(ctx, removed, productID); err != nil {
			return err
		}
		return c.stores.Categories.PushProduct(ctx, added, productID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Product is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("updateProduct: update")
		utils.RespondInternalError(w, "Update product failure!", "")
		return
	}

	utils.RespondSuccess(w, "Update product successfully!", "data", product)
}

// DeleteProduct removes a product and pulls it from every category it
// referenced, inside one transaction.
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productIDHex := mux.Vars(r)["productId"]
	if !validations.IsObjectID(productIDHex) {
		utils.RespondBadRequest(w, "Product id is not valid!")
		return
	}
	productID, _ := primitive.ObjectIDFromHex(productIDHex)

	err := c.stores.WithTransaction(r.Context(), func(ctx context.Context) error {
		product, err := c.stores.Products.Delete(ctx, productID)
		if err != nil {
			return err
		}
		return c.stores.Categories.PullProduct(ctx, product.Categories, productID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Product is not found!")
			return
		}
		c.logger.Error().Err(err).Msg("deleteProduct: delete")
		utils.RespondInternalError(w, "Delete product failure!", "")
		return
	}

	utils.RespondSuccess(w, "Delete product successfully!", "data", productIDHex)
}

func toSizes(payload []validations.SizePayload) []models.ProductSize {
	sizes := make([]models.ProductSize, 0, len(payload))
	for _, s := range payload {
		sizes = append(sizes, models.ProductSize{Size: s.Size, Enable: *s.Enable})
	}
	return sizes
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// diffIDs splits old vs new into (removed, added).
func diffIDs(old, new []primitive.ObjectID) (removed, added []primitive.ObjectID) {
	oldSet := make(map[primitive.ObjectID]bool, len(old))
	for _, id := range old {
		oldSet[id] = true
	}
	newSet := make(map[primitive.ObjectID]bool, len(new))
	for _, id := range new {
		newSet[id] = true
		if !oldSet[id] {
			added = append(added, id)
		}
	}
	for _, id := range old {
		if !newSet[id] {
			removed = append(removed, id)
		}
	}
	return removed, added
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
