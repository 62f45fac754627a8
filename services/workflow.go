package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"productconsole/logger"
	"productconsole/models"
)

// Step is one page of the product form.
type Step int

const (
	StepBasicInfo Step = iota
	StepTechnicalDetails
	StepPricing
	StepDocumentation
)

// Steps lists the form steps in order.
var Steps = []Step{StepBasicInfo, StepTechnicalDetails, StepPricing, StepDocumentation}

var stepNames = map[Step][2]string{
	StepBasicInfo:        {"basic", "Basic Information"},
	StepTechnicalDetails: {"technical", "Technical Details"},
	StepPricing:          {"pricing", "Pricing"},
	StepDocumentation:    {"documentation", "Documentation"},
}

// Slug is the URL-safe step name used by the edit form tabs.
func (s Step) Slug() string { return stepNames[s][0] }

// Label is the step title.
func (s Step) Label() string { return stepNames[s][1] }

// ParseStep resolves a slug back to a Step.
func ParseStep(slug string) (Step, bool) {
	for _, step := range Steps {
		if step.Slug() == slug {
			return step, true
		}
	}
	return StepBasicInfo, false
}

// Attachment is a file picked in the form but not yet uploaded.
type Attachment struct {
	FileName string
	Content  []byte
}

// Draft is the in-progress state of a create or edit form.
type Draft struct {
	ID string
	// ProductID is empty until the draft belongs to an existing product.
	ProductID      string
	OriginalStatus models.ProductStatus
	Input          models.ProductInput
	Step           Step

	SampleFile        *Attachment
	DocumentationFile *Attachment
}

// NewDraft starts a create form with the default values.
func NewDraft(id string) *Draft {
	return &Draft{ID: id, Input: models.DefaultProductInput(), Step: StepBasicInfo}
}

// DraftFromProduct starts an edit form prefilled from p.
func DraftFromProduct(id string, p models.Product) *Draft {
	return &Draft{
		ID:             id,
		ProductID:      p.ID,
		OriginalStatus: p.Status,
		Input:          models.InputFromProduct(p),
		Step:           StepBasicInfo,
	}
}

// IsNew reports whether submitting the draft creates a product.
func (d *Draft) IsNew() bool { return d.ProductID == "" }

// IsFirst reports whether the draft is on the first step.
func (d *Draft) IsFirst() bool { return d.Step == Steps[0] }

// IsLast reports whether the draft is on the final step.
func (d *Draft) IsLast() bool { return d.Step == Steps[len(Steps)-1] }

// Next advances one step; it stays on the last step.
func (d *Draft) Next() {
	if !d.IsLast() {
		d.Step++
	}
}

// Back returns one step; it stays on the first step.
func (d *Draft) Back() {
	if !d.IsFirst() {
		d.Step--
	}
}

// GoTo jumps to step, clamped to the valid range.
func (d *Draft) GoTo(step Step) {
	switch {
	case step < Steps[0]:
		d.Step = Steps[0]
	case step > Steps[len(Steps)-1]:
		d.Step = Steps[len(Steps)-1]
	default:
		d.Step = step
	}
}

// SelectPricingModel switches the pricing model and resets the base price to its default.
func (d *Draft) SelectPricingModel(model models.PricingModel) {
	d.Input.PricingModel = model
	d.Input.BasePrice = model.DefaultPrice()
}

// Attach stores a picked file in the slot for fileType.
func (d *Draft) Attach(fileType models.FileType, fileName string, content []byte) {
	att := &Attachment{FileName: fileName, Content: content}
	switch fileType {
	case models.FileTypeSample:
		d.SampleFile = att
	case models.FileTypeDocumentation:
		d.DocumentationFile = att
	}
}

// SubmitVariant selects the status a submission writes.
type SubmitVariant int

const (
	SubmitDraft SubmitVariant = iota
	SubmitPublish
)

// Status returns the product status the variant writes.
func (v SubmitVariant) Status() models.ProductStatus {
	if v == SubmitPublish {
		return models.ProductStatusPublished
	}
	return models.ProductStatusDraft
}

// ValidationError carries one message per invalid form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "".
func (e *ValidationError) Message(field string) string {
	return e.Fields[field]
}

// UploadFailure records an attachment that could not be uploaded after the product was saved.
type UploadFailure struct {
	FileType models.FileType
	FileName string
	Err      error
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	Product        models.Product
	Files          []models.ProductFile
	UploadFailures []UploadFailure
	// StatusRegressed is set when a published product was saved back as a draft.
	StatusRegressed bool
}

// Workflow validates and submits product drafts.
type Workflow struct {
	products ProductService
	validate *validator.Validate
}

// NewWorkflow builds a Workflow submitting through products.
func NewWorkflow(products ProductService) *Workflow {
	return &Workflow{products: products, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

var validationMessages = map[string]string{
	"name.required":         "Name is required",
	"type.required":         "Type is required",
	"type.oneof":            "Type must be one of Service, Dataset, API, Storage",
	"status.oneof":          "Status must be DRAFT or PUBLISHED",
	"pricingModel.required": "Pricing model is required",
	"pricingModel.oneof":    "Pricing model must be one of USAGE_BASED, SUBSCRIPTION, ENTERPRISE, CUSTOM",
	"basePrice.gte":         "Price cannot be negative",
}

// Validate checks form input. It returns a *ValidationError when any field is invalid.
func (w *Workflow) Validate(in models.ProductInput) error {
	err := w.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := validationMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		if _, exists := verr.Fields[fe.Field()]; !exists {
			verr.Fields[fe.Field()] = msg
		}
	}
	return verr
}

// Submit validates the draft, saves it with the variant's status, then uploads the sample
// file and the documentation file in that order. Upload failures never fail the submission;
// they are returned in SubmitResult.UploadFailures.
func (w *Workflow) Submit(ctx context.Context, d *Draft, variant SubmitVariant) (SubmitResult, error) {
	input := d.Input
	input.Status = variant.Status()

	if err := w.Validate(input); err != nil {
		return SubmitResult{}, err
	}

	var (
		product models.Product
		err     error
	)
	if d.IsNew() {
		product, err = w.products.Create(ctx, input)
	} else {
		product, err = w.products.Update(ctx, d.ProductID, input)
	}
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{
		Product:         product,
		StatusRegressed: !d.OriginalStatus.CanTransitionTo(input.Status),
	}
	if result.StatusRegressed {
		logger.WithFields(map[string]interface{}{
			"product_id": product.ID,
			"from":       d.OriginalStatus,
			"to":         input.Status,
		}).Warn("Published product saved back to draft")
	}

	uploads := []struct {
		fileType models.FileType
		att      *Attachment
	}{
		{models.FileTypeSample, d.SampleFile},
		{models.FileTypeDocumentation, d.DocumentationFile},
	}
	for _, up := range uploads {
		if up.att == nil {
			continue
		}
		file, err := w.products.UploadFile(ctx, product.ID, up.fileType, up.att.FileName, bytes.NewReader(up.att.Content))
		if err != nil && !errors.Is(err, ErrUploadEndpointMissing) {
			logger.WithFields(map[string]interface{}{
				"product_id": product.ID,
				"file_type":  up.fileType,
				"file_name":  up.att.FileName,
			}).Error("Error uploading %s: %v", up.fileType.Label(), err)
			result.UploadFailures = append(result.UploadFailures, UploadFailure{
				FileType: up.fileType,
				FileName: up.att.FileName,
				Err:      err,
			})
			continue
		}
		result.Files = append(result.Files, file)
	}

	return result, nil
}
