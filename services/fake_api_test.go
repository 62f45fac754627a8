package services

import (
	"context"
	"io"
	"net/http"
	"sync"

	"productconsole/client"
	"productconsole/models"
)

// fakeAPI records calls in order and answers from its fields.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	products   []models.ProductResponse
	product    models.ProductResponse
	productErr error
	createErr  error
	uploadErrs map[models.FileType]error
	files      map[models.FileType][]models.ProductFileResponse
	uploaded   map[models.FileType]string
	created    *models.ProductCreateRequest
	updated    *models.ProductUpdateRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		uploadErrs: map[models.FileType]error{},
		files:      map[models.FileType][]models.ProductFileResponse{},
		uploaded:   map[models.FileType]string{},
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	f.record("ListProducts")
	return f.products, f.productErr
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (models.ProductResponse, error) {
	f.record("GetProduct " + id)
	return f.product, f.productErr
}

func (f *fakeAPI) CreateProduct(ctx context.Context, req models.ProductCreateRequest) (models.ProductResponse, error) {
	f.record("CreateProduct")
	f.created = &req
	if f.createErr != nil {
		return models.ProductResponse{}, f.createErr
	}
	return models.ProductResponse{
		ID:           "101",
		Name:         req.Name,
		Type:         req.Type,
		Status:       req.Status,
		PricingModel: req.PricingModel,
		BasePrice:    req.BasePrice,
		CreatedAt:    "2024-05-01T09:30:00Z",
		UpdatedAt:    "2024-05-01T09:30:00Z",
	}, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, req models.ProductUpdateRequest) (models.ProductResponse, error) {
	f.record("UpdateProduct " + id)
	f.updated = &req
	if f.productErr != nil {
		return models.ProductResponse{}, f.productErr
	}
	return models.ProductResponse{ID: "7", Name: *req.Name, Status: *req.Status, BasePrice: *req.BasePrice}, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	f.record("DeleteProduct " + id)
	return f.productErr
}

func (f *fakeAPI) UploadProductFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFileResponse, error) {
	f.record("UploadProductFile " + productID + " " + string(fileType))
	if err := f.uploadErrs[fileType]; err != nil {
		return models.ProductFileResponse{}, err
	}
	body, _ := io.ReadAll(content)
	f.mu.Lock()
	f.uploaded[fileType] = string(body)
	f.mu.Unlock()
	return models.ProductFileResponse{ID: "500", FileName: fileName, FileType: fileType, Size: int64(len(body))}, nil
}

func (f *fakeAPI) ListProductFiles(ctx context.Context, productID string, fileType models.FileType) ([]models.ProductFileResponse, error) {
	f.record("ListProductFiles " + productID + " " + string(fileType))
	return f.files[fileType], nil
}

func (f *fakeAPI) DeleteProductFile(ctx context.Context, fileID string) error {
	f.record("DeleteProductFile " + fileID)
	return nil
}

func apiStatus(status int) error {
	return &client.APIError{Method: http.MethodPost, Path: "/x", StatusCode: status, StatusText: http.StatusText(status)}
}
