package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"productconsole/client"
	"productconsole/logger"
	"productconsole/models"
	"productconsole/utils"
)

var (
	// ErrProductNotFound는 제품이 존재하지 않을 때 반환됩니다.
	ErrProductNotFound = errors.New("product not found")
	// ErrUploadEndpointMissing is returned when the backend has no upload route.
	ErrUploadEndpointMissing = errors.New("file upload endpoint not available")
)

// ProductAPI is the subset of the backend client the console services call.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (models.ProductResponse, error)
	CreateProduct(ctx context.Context, req models.ProductCreateRequest) (models.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req models.ProductUpdateRequest) (models.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFileResponse, error)
	ListProductFiles(ctx context.Context, productID string, fileType models.FileType) ([]models.ProductFileResponse, error)
	DeleteProductFile(ctx context.Context, fileID string) error
}

// ProductService는 콘솔의 제품 관련 비즈니스 로직을 정의합니다.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id string) error
	UploadFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFile, error)
	ListFiles(ctx context.Context, productID string) ([]models.ProductFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type productService struct {
	api ProductAPI
}

// NewProductService는 ProductService 구현체를 생성합니다.
func NewProductService(api ProductAPI) ProductService {
	return &productService{api: api}
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	resps, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return MapProducts(resps), nil
}

func (s *productService) Get(ctx context.Context, id string) (models.Product, error) {
	resp, err := s.api.GetProduct(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return models.Product{}, fmt.Errorf("%w: %w", ErrProductNotFound, err)
		}
		return models.Product{}, err
	}
	return MapProduct(resp), nil
}

func (s *productService) Create(ctx context.Context, input models.ProductInput) (models.Product, error) {
	resp, err := s.api.CreateProduct(ctx, ToCreateRequest(input))
	if err != nil {
		return models.Product{}, err
	}
	product := MapProduct(resp)
	logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"status":     product.Status,
	}).Info("Product created: %s", product.Name)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	resp, err := s.api.UpdateProduct(ctx, id, ToUpdateRequest(input))
	if err != nil {
		if client.IsNotFound(err) {
			return models.Product{}, fmt.Errorf("%w: %w", ErrProductNotFound, err)
		}
		return models.Product{}, err
	}
	product := MapProduct(resp)
	logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"status":     product.Status,
	}).Info("Product updated: %s", product.Name)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"product_id": id}).Info("Product deleted")
	return nil
}

// UploadFile uploads one attachment. A backend without an upload route answers 404;
// that case returns an in-memory placeholder together with ErrUploadEndpointMissing.
func (s *productService) UploadFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFile, error) {
	resp, err := s.api.UploadProductFile(ctx, productID, fileType, fileName, content)
	if err != nil {
		if client.IsNotFound(err) {
			logger.WithFields(map[string]interface{}{
				"product_id": productID,
				"file_type":  fileType,
			}).Warn("File upload endpoint not available, keeping placeholder for %s", fileName)
			return placeholderFile(productID, fileType, fileName), ErrUploadEndpointMissing
		}
		return models.ProductFile{}, err
	}
	return MapProductFile(productID, resp), nil
}

// ListFiles returns the sample files followed by the documentation files.
func (s *productService) ListFiles(ctx context.Context, productID string) ([]models.ProductFile, error) {
	files := []models.ProductFile{}
	for _, fileType := range models.FileTypes {
		resps, err := s.api.ListProductFiles(ctx, productID, fileType)
		if err != nil {
			return nil, err
		}
		for _, resp := range resps {
			files = append(files, MapProductFile(productID, resp))
		}
	}
	return files, nil
}

func (s *productService) DeleteFile(ctx context.Context, fileID string) error {
	if err := s.api.DeleteProductFile(ctx, fileID); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"file_id": fileID}).Info("Product file deleted")
	return nil
}

func placeholderFile(productID string, fileType models.FileType, fileName string) models.ProductFile {
	id, err := utils.GenerateID("local")
	if err != nil {
		id = "local"
	}
	return models.ProductFile{
		ID:          id,
		ProductID:   productID,
		FileName:    fileName,
		FileType:    fileType,
		CreatedAt:   utils.NowUTC(),
		Placeholder: true,
	}
}
