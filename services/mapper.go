package services

import (
	"time"

	"productconsole/models"
	"productconsole/utils"
)

// PlaceholderUserID is assigned to every mapped product; the backend has no owner field.
const PlaceholderUserID = "user-1"

// MapProduct converts the backend representation into the console's Product.
func MapProduct(resp models.ProductResponse) models.Product {
	return models.Product{
		ID:            resp.ID.String(),
		Name:          resp.Name,
		Type:          resp.Type,
		Description:   resp.Description,
		APIEndpoint:   resp.APIEndpoint,
		Status:        resp.Status,
		PricingModel:  resp.PricingModel,
		BasePrice:     resp.BasePrice,
		Documentation: resp.Documentation,
		UserID:        PlaceholderUserID,
		CreatedAt:     parseTimestamp(resp.CreatedAt),
		UpdatedAt:     parseTimestamp(resp.UpdatedAt),
	}
}

// MapProducts maps a list, preserving order.
func MapProducts(resps []models.ProductResponse) []models.Product {
	products := make([]models.Product, 0, len(resps))
	for _, resp := range resps {
		products = append(products, MapProduct(resp))
	}
	return products
}

// MapProductFile converts a backend attachment into the console's ProductFile.
func MapProductFile(productID string, resp models.ProductFileResponse) models.ProductFile {
	return models.ProductFile{
		ID:          resp.ID.String(),
		ProductID:   productID,
		FileName:    resp.FileName,
		FileType:    resp.FileType,
		ContentType: resp.ContentType,
		Size:        resp.Size,
		DownloadURL: resp.DownloadURL,
		CreatedAt:   parseTimestamp(resp.CreatedAt),
	}
}

// ToCreateRequest builds the create payload from form input.
func ToCreateRequest(in models.ProductInput) models.ProductCreateRequest {
	return models.ProductCreateRequest{
		Name:          in.Name,
		Type:          in.Type,
		Description:   in.Description,
		APIEndpoint:   in.APIEndpoint,
		Status:        in.Status,
		PricingModel:  in.PricingModel,
		BasePrice:     in.BasePrice,
		Documentation: in.Documentation,
	}
}

// ToUpdateRequest builds a full update payload from form input.
func ToUpdateRequest(in models.ProductInput) models.ProductUpdateRequest {
	price := in.BasePrice
	return models.ProductUpdateRequest{
		Name:          &in.Name,
		Type:          &in.Type,
		Description:   &in.Description,
		APIEndpoint:   &in.APIEndpoint,
		Status:        &in.Status,
		PricingModel:  &in.PricingModel,
		BasePrice:     &price,
		Documentation: &in.Documentation,
	}
}

// parseTimestamp returns the zero time for empty or unreadable values.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := utils.ParseTimestamp(value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
