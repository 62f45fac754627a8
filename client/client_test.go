package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"productconsole/logger"
	"productconsole/models"
	"productconsole/utils"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts.BaseURL = server.URL + "/api"
	return New(opts)
}

func TestListProductsDecodesBackendShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":12,"name":"Geo API","type":"API","status":"PUBLISHED","pricingModel":"SUBSCRIPTION","basePrice":199,"createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"}]`)
	}, Options{})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.ID("12"), products[0].ID)
	assert.Equal(t, models.ProductTypeAPI, products[0].Type)
	assert.True(t, decimal.NewFromInt(199).Equal(products[0].BasePrice))
}

func TestListProductsAcceptsStringIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"7","name":"Geo API","type":"API","status":"DRAFT","pricingModel":"CUSTOM","basePrice":0},{"id":"prod-b2","name":"Lake","type":"Storage","status":"DRAFT","pricingModel":"CUSTOM","basePrice":0}]`)
	}, Options{})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, models.ID("7"), products[0].ID)
	assert.Equal(t, models.ID("prod-b2"), products[1].ID)
}

func TestListProductsEmptyBodyIsEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	}, Options{})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateProductSendsJSONAndReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Geo API", body["name"])
		assert.EqualValues(t, 199, body["basePrice"])
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"status":"error","message":"name taken"}`)
	}, Options{})

	_, err := c.CreateProduct(context.Background(), models.ProductCreateRequest{
		Name:         "Geo API",
		Type:         models.ProductTypeAPI,
		Status:       models.ProductStatusDraft,
		PricingModel: models.PricingSubscription,
		BasePrice:    decimal.NewFromInt(199),
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Bad Request", apiErr.StatusText)
	assert.Contains(t, apiErr.Body, "name taken")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsNotFound(err))
}

func TestDeleteProductMasksServerError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Use(zap.New(core))

	before := testutil.ToFloat64(maskedDeletes.WithLabelValues("product", "500"))
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/products/7", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{})

	require.NoError(t, c.DeleteProduct(context.Background(), "7"))
	assert.Equal(t, before+1, testutil.ToFloat64(maskedDeletes.WithLabelValues("product", "500")))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("Delete failed on backend, reporting success").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "7", warnings[0].ContextMap()["id"])
}

func TestDeleteProductOtherStatusesFail(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadGateway, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}, Options{})

		err := c.DeleteProduct(context.Background(), "7")
		require.Error(t, err, "status %d", status)
		assert.True(t, IsStatus(err, status))
	}
}

func TestDeleteProductMaskingCanBeDisabled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{MaskedDeleteStatuses: []int{}})

	err := c.DeleteProduct(context.Background(), "7")
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestDeleteProductFileMasksServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/files/33", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{})

	assert.NoError(t, c.DeleteProductFile(context.Background(), "33"))
}

func TestUploadProductFileSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/5/files/DOCUMENTATION", r.URL.Path)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "guide.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4 guide", string(content))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":90,"fileName":"guide.pdf","fileType":"DOCUMENTATION","size":14,"createdAt":"2024-01-02T03:04:05Z"}`)
	}, Options{})

	file, err := c.UploadProductFile(context.Background(), "5", models.FileTypeDocumentation, "guide.pdf", strings.NewReader("%PDF-1.4 guide"))
	require.NoError(t, err)
	assert.Equal(t, models.ID("90"), file.ID)
	assert.Equal(t, models.FileTypeDocumentation, file.FileType)
}

func TestUploadProductFileNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		http.NotFound(w, r)
	}, Options{})

	_, err := c.UploadProductFile(context.Background(), "5", models.FileTypeSample, "a.csv", strings.NewReader("a,b"))
	assert.True(t, IsNotFound(err))
}

func TestListProductFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/5/files/SAMPLE_FILE", r.URL.Path)
		io.WriteString(w, `[{"id":1,"fileName":"a.csv","fileType":"SAMPLE_FILE","size":3}]`)
	}, Options{})

	files, err := c.ListProductFiles(context.Background(), "5", models.FileTypeSample)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.csv", files[0].FileName)
}

func TestServiceTokenIsAttached(t *testing.T) {
	const secret = "shared-secret"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(header, "Bearer "))
		claims, err := utils.ValidateServiceToken([]byte(secret), strings.TrimPrefix(header, "Bearer "))
		if assert.NoError(t, err) {
			assert.Equal(t, "console", claims.Subject)
		}
		io.WriteString(w, `[]`)
	}, Options{TokenSecret: secret})

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL + "/api"
	server.Close()

	c := New(Options{BaseURL: baseURL})
	_, err := c.GetProduct(context.Background(), "1")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "client: GET /products/1")
}

func TestNewDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New(Options{}).BaseURL())
	assert.Equal(t, "http://api.local/api", New(Options{BaseURL: "http://api.local/api/"}).BaseURL())
}
