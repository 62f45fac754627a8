package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductType 제품 분류
type ProductType string

const (
	ProductTypeService ProductType = "Service"
	ProductTypeDataset ProductType = "Dataset"
	ProductTypeAPI     ProductType = "API"
	ProductTypeStorage ProductType = "Storage"
)

// ProductTypes lists the selectable product types in display order.
var ProductTypes = []ProductType{ProductTypeService, ProductTypeDataset, ProductTypeAPI, ProductTypeStorage}

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	for _, known := range ProductTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProductStatus 상태 상수
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "DRAFT"
	ProductStatusPublished ProductStatus = "PUBLISHED"
)

// Valid reports whether s is DRAFT or PUBLISHED.
func (s ProductStatus) Valid() bool {
	return s == ProductStatusDraft || s == ProductStatusPublished
}

// CanTransitionTo reports whether moving from s to next follows the publishing convention:
// drafts may stay drafts or be published, published products stay published.
// Nothing enforces this; callers only use it to warn.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	switch s {
	case ProductStatusDraft, "":
		return next.Valid()
	case ProductStatusPublished:
		return next == ProductStatusPublished
	default:
		return false
	}
}

// Product is the console's view of a product, mapped from ProductResponse.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          ProductType     `json:"type"`
	Description   string          `json:"description"`
	APIEndpoint   string          `json:"apiEndpoint,omitempty"`
	Status        ProductStatus   `json:"status"`
	PricingModel  PricingModel    `json:"pricingModel"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Documentation string          `json:"documentation,omitempty"`
	UserID        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductResponse is the backend's product representation.
type ProductResponse struct {
	ID            ID              `json:"id"`
	Name          string          `json:"name"`
	Type          ProductType     `json:"type"`
	Description   string          `json:"description"`
	APIEndpoint   string          `json:"apiEndpoint,omitempty"`
	Status        ProductStatus   `json:"status"`
	PricingModel  PricingModel    `json:"pricingModel"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Documentation string          `json:"documentation,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// ProductCreateRequest 제품 생성 요청
type ProductCreateRequest struct {
	Name          string          `json:"name"`
	Type          ProductType     `json:"type"`
	Description   string          `json:"description,omitempty"`
	APIEndpoint   string          `json:"apiEndpoint,omitempty"`
	Status        ProductStatus   `json:"status"`
	PricingModel  PricingModel    `json:"pricingModel"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Documentation string          `json:"documentation,omitempty"`
}

// ProductUpdateRequest 제품 수정 요청. Nil fields are left unchanged by the backend.
type ProductUpdateRequest struct {
	Name          *string          `json:"name,omitempty"`
	Type          *ProductType     `json:"type,omitempty"`
	Description   *string          `json:"description,omitempty"`
	APIEndpoint   *string          `json:"apiEndpoint,omitempty"`
	Status        *ProductStatus   `json:"status,omitempty"`
	PricingModel  *PricingModel    `json:"pricingModel,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	Documentation *string          `json:"documentation,omitempty"`
}

// ProductInput carries the form fields collected by the product wizard.
type ProductInput struct {
	Name          string          `json:"name" validate:"required"`
	Type          ProductType     `json:"type" validate:"required,oneof=Service Dataset API Storage"`
	Description   string          `json:"description"`
	APIEndpoint   string          `json:"apiEndpoint"`
	Status        ProductStatus   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	PricingModel  PricingModel    `json:"pricingModel" validate:"required,oneof=USAGE_BASED SUBSCRIPTION ENTERPRISE CUSTOM"`
	BasePrice     decimal.Decimal `json:"basePrice" validate:"gte=0"`
	Documentation string          `json:"documentation"`
}

// DefaultProductInput returns the values a new product form starts with.
func DefaultProductInput() ProductInput {
	return ProductInput{
		Type:         ProductTypeService,
		Status:       ProductStatusDraft,
		PricingModel: PricingSubscription,
		BasePrice:    decimal.Zero,
	}
}

// InputFromProduct prefills a form from an existing product.
func InputFromProduct(p Product) ProductInput {
	return ProductInput{
		Name:          p.Name,
		Type:          p.Type,
		Description:   p.Description,
		APIEndpoint:   p.APIEndpoint,
		Status:        p.Status,
		PricingModel:  p.PricingModel,
		BasePrice:     p.BasePrice,
		Documentation: p.Documentation,
	}
}
