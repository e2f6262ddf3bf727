package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func productPayload(name string, categoryIDs ...primitive.ObjectID) map[string]interface{} {
	categories := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categories = append(categories, id.Hex())
	}
	return map[string]interface{}{
		"name":        name,
		"subTitle":    "Men's Shoes",
		"description": "Lightweight everyday runner.",
		"sizes": []map[string]interface{}{
			{"size": "42", "enable": true},
			{"size": "43", "enable": false},
		},
		"price":         99.99,
		"originalPrice": 129.99,
		"categories":    categories,
	}
}

// multipartProductRequest builds the create-product request: the JSON
// payload in a "data" field plus an "image" file part.
func multipartProductRequest(t *testing.T, payload map[string]interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("data", string(data)))

	file, err := mw.CreateFormFile("image", "shoe.png")
	require.NoError(t, err)
	_, err = file.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/product", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")

	rec := record(env.product.CreateProduct, multipartProductRequest(t, productPayload("Air Zoom Pegasus", category.ID)))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx := context.Background()
	product, err := env.stores.Products.FindByName(ctx, "Air Zoom Pegasus")
	require.NoError(t, err)
	assert.Equal(t, "air-zoom-pegasus", product.Slug)
	assert.True(t, strings.HasPrefix(product.Image, "http://"), "image url: %s", product.Image)
	assert.Contains(t, product.Image, "/public/")

	// The category back-link is maintained with the insert.
	updated, err := env.stores.Categories.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{product.ID}, updated.Products)
}

func TestCreateProductDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")
	env.seedProduct(t, "Air Zoom Pegasus", category.ID)

	rec := record(env.product.CreateProduct, multipartProductRequest(t, productPayload("Air Zoom Pegasus", category.ID)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Product already exist!", decodeBody(t, rec)["message"])
}

func TestCreateProductMissingImage(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	data, err := json.Marshal(productPayload("Air Zoom Pegasus", category.ID))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("data", string(data)))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/product", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := record(env.product.CreateProduct, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product image is required!", decodeBody(t, rec)["message"])
}

func TestCreateProductRejectsBadCategoryID(t *testing.T) {
	env := newTestEnv(t)

	payload := productPayload("Air Zoom Pegasus")
	payload["categories"] = []string{"not-an-object-id"}
	rec := record(env.product.CreateProduct, multipartProductRequest(t, payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductsPaginationClamped(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")
	for i := 0; i < 15; i++ {
		env.seedProduct(t, fmt.Sprintf("Shoe %02d", i), category.ID)
	}

	// No params: page 1, default limit of 10.
	rec := doJSON(env.product.GetProducts, http.MethodGet, "/api/product", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 10)

	// Garbage params clamp instead of failing.
	rec = doJSON(env.product.GetProducts, http.MethodGet, "/api/product?page=-3&limit=0", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ = decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 10)

	rec = doJSON(env.product.GetProducts, http.MethodGet, "/api/product?page=2&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ = decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 5)

	// Oversized limit is capped, not passed through.
	rec = doJSON(env.product.GetProducts, http.MethodGet, "/api/product?limit=100000", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ = decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 15)
}

func TestGetProductByID(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")
	product := env.seedProduct(t, "Air Zoom Pegasus", category.ID)

	req := httptestRequest(http.MethodGet, "/api/product/"+product.ID.Hex(), nil, nil)
	req = mux.SetURLVars(req, map[string]string{"productId": product.ID.Hex()})
	rec := record(env.product.GetProductByID, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeBody(t, rec)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Air Zoom Pegasus", data["name"])
}

func TestGetProductByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	ghost := primitive.NewObjectID().Hex()

	req := httptestRequest(http.MethodGet, "/api/product/"+ghost, nil, nil)
	req = mux.SetURLVars(req, map[string]string{"productId": ghost})
	rec := record(env.product.GetProductByID, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductsByCategorySlug(t *testing.T) {
	env := newTestEnv(t)
	running := env.seedCategory(t, "Running")
	casual := env.seedCategory(t, "Casual")
	env.seedProduct(t, "Air Zoom Pegasus", running.ID)
	env.seedProduct(t, "Blazer", casual.ID)

	req := httptestRequest(http.MethodGet, "/api/product/category/running", nil, nil)
	req = mux.SetURLVars(req, map[string]string{"categorySlug": "running"})
	rec := record(env.product.GetProductsByCategory, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeBody(t, rec)["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "Air Zoom Pegasus", data[0].(map[string]interface{})["name"])
}

func TestGetProductsByUnknownCategorySlug(t *testing.T) {
	env := newTestEnv(t)

	req := httptestRequest(http.MethodGet, "/api/product/category/nope", nil, nil)
	req = mux.SetURLVars(req, map[string]string{"categorySlug": "nope"})
	rec := record(env.product.GetProductsByCategory, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProductReconcilesBackLinks(t *testing.T) {
	env := newTestEnv(t)
	running := env.seedCategory(t, "Running")
	casual := env.seedCategory(t, "Casual")
	product := env.seedProduct(t, "Cortez", running.ID)

	req := httptestRequest(http.MethodPatch, "/api/product/"+product.ID.Hex(), productPayload("Cortez", casual.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"productId": product.ID.Hex()})
	rec := record(env.product.UpdateProduct, req)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx := context.Background()
	fromRunning, err := env.stores.Categories.FindByID(ctx, running.ID)
	require.NoError(t, err)
	assert.Empty(t, fromRunning.Products)

	toCasual, err := env.stores.Categories.FindByID(ctx, casual.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{product.ID}, toCasual.Products)

	updated, err := env.stores.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{casual.ID}, updated.Categories)
}

func TestUpdateProductKeepsImageWhenNotReplaced(t *testing.T) {
	env := newTestEnv(t)
	category := env.seedCategory(t, "Running")
	product := env.seedProduct(t, "Cortez", category.ID)

	req := httptestRequest(http.MethodPatch, "/api/product/"+product.ID.Hex(), productPayload("Cortez", category.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"productId": product.ID.Hex()})
	rec := record(env.product.UpdateProduct, req)
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.stores.Products.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Image, updated.Image)
}

func TestDeleteProductPullsBackLinks(t *testing.T) {
	env := newTestEnv(t)
	running := env.seedCategory(t, "Running")
	casual := env.seedCategory(t, "Casual")
	product := env.seedProduct(t, "Cortez", running.ID, casual.ID)

	req := httptestRequest(http.MethodDelete, "/api/product/"+product.ID.Hex(), nil, nil)
	req = mux.SetURLVars(req, map[string]string{"productId": product.ID.Hex()})
	rec := record(env.product.DeleteProduct, req)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx := context.Background()
	for _, categoryID := range []primitive.ObjectID{running.ID, casual.ID} {
		category, err := env.stores.Categories.FindByID(ctx, categoryID)
		require.NoError(t, err)
		assert.Empty(t, category.Products)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	ghost := primitive.NewObjectID().Hex()

	req := httptestRequest(http.MethodDelete, "/api/product/"+ghost, nil, nil)
	req = mux.SetURLVars(req, map[string]string{"productId": ghost})
	rec := record(env.product.DeleteProduct, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
