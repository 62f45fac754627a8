package handlers

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"productconsole/models"
	"productconsole/services"
)

// fakeProducts is an in-memory ProductService.
type fakeProducts struct {
	mu       sync.Mutex
	nextID   int
	products map[string]models.Product
	files    map[string][]models.ProductFile

	listErr   error
	createErr error
	deleteErr error
	uploadErr error

	created  []models.ProductInput
	updated  []models.ProductInput
	deleted  []string
	uploaded []string
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{
		nextID:   1,
		products: map[string]models.Product{},
		files:    map[string][]models.ProductFile{},
	}
}

func (f *fakeProducts) put(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
}

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Get(ctx context.Context, id string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, services.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProducts) fromInput(id string, in models.ProductInput) models.Product {
	return models.Product{
		ID:            id,
		Name:          in.Name,
		Type:          in.Type,
		Description:   in.Description,
		APIEndpoint:   in.APIEndpoint,
		Status:        in.Status,
		PricingModel:  in.PricingModel,
		BasePrice:     in.BasePrice,
		Documentation: in.Documentation,
		UserID:        services.PlaceholderUserID,
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fakeProducts) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	id := strconv.Itoa(f.nextID)
	f.nextID++
	p := f.fromInput(id, in)
	f.products[id] = p
	return p, nil
}

func (f *fakeProducts) Update(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, in)
	if _, ok := f.products[id]; !ok {
		return models.Product{}, services.ErrProductNotFound
	}
	p := f.fromInput(id, in)
	f.products[id] = p
	return p, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.products, id)
	return nil
}

func (f *fakeProducts) UploadFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFile, error) {
	body, _ := io.ReadAll(content)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, string(fileType)+":"+fileName)
	file := models.ProductFile{
		ID:        strconv.Itoa(len(f.uploaded)),
		ProductID: productID,
		FileName:  fileName,
		FileType:  fileType,
		Size:      int64(len(body)),
	}
	if f.uploadErr != nil {
		if f.uploadErr == services.ErrUploadEndpointMissing {
			file.Placeholder = true
			return file, f.uploadErr
		}
		return models.ProductFile{}, f.uploadErr
	}
	f.files[productID] = append(f.files[productID], file)
	return file, nil
}

func (f *fakeProducts) ListFiles(ctx context.Context, productID string) ([]models.ProductFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProductFile{}, f.files[productID]...), nil
}

func (f *fakeProducts) DeleteFile(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for productID, files := range f.files {
		for i, file := range files {
			if file.ID == fileID {
				f.files[productID] = append(files[:i], files[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
