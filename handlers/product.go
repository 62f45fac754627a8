package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"productconsole/logger"
	"productconsole/models"
	"productconsole/notify"
	"productconsole/services"
)

// formView is the data of the create wizard and the edit form.
type formView struct {
	page
	Edit    bool
	Action  string
	Draft   *services.Draft
	Steps   []services.Step
	Types   []models.ProductType
	Plans   []models.PricingPlan
	Plan    models.PricingPlan
	Errors  map[string]string
	Loading notify.Notice
}

func (h *ConsoleHandler) formView(w http.ResponseWriter, r *http.Request, d *services.Draft, errs map[string]string, extra ...notify.Notice) formView {
	view := formView{
		Edit:   !d.IsNew(),
		Draft:  d,
		Steps:  services.Steps,
		Types:  models.ProductTypes,
		Plans:  models.PricingPlans(),
		Errors: errs,
	}
	view.Plan, _ = d.Input.PricingModel.Plan()
	if view.Edit {
		view.page = h.page(w, r, "Edit Product", "products", extra...)
		view.Action = "/products/" + d.ProductID + "/edit"
		view.Loading = notify.Loading("Updating Product", "Please wait while we update your product...")
	} else {
		view.page = h.page(w, r, "Create Product", "new", extra...)
		view.Action = "/products/new"
		view.Loading = notify.Loading("Creating Product", "Please wait while we create your product...")
	}
	return view
}

// draftSlot is the session key binding a form to its draft.
func draftSlot(productID string) string {
	if productID == "" {
		return newProductSlot
	}
	return "product:" + productID
}

// boundDraft returns the draft the session holds for slot, if it still exists.
func (h *ConsoleHandler) boundDraft(r *http.Request, slot string) (*services.Draft, bool) {
	id := h.sessions.DraftID(r, slot)
	if id == "" {
		return nil, false
	}
	return h.drafts.Get(id)
}

func (h *ConsoleHandler) bindDraft(w http.ResponseWriter, r *http.Request, slot string, d *services.Draft) {
	if err := h.sessions.SetDraftID(w, r, slot, d.ID); err != nil {
		logger.Warn("Failed to bind draft %s: %v", d.ID, err)
	}
}

func (h *ConsoleHandler) dropDraft(w http.ResponseWriter, r *http.Request, d *services.Draft) {
	h.drafts.Delete(d.ID)
	if err := h.sessions.ClearDraftID(w, r, draftSlot(d.ProductID)); err != nil {
		logger.Warn("Failed to unbind draft %s: %v", d.ID, err)
	}
}

// newDraft returns the session's create draft, starting one when none is bound.
func (h *ConsoleHandler) newDraft(w http.ResponseWriter, r *http.Request) *services.Draft {
	if d, ok := h.boundDraft(r, newProductSlot); ok {
		return d
	}
	d := h.drafts.New()
	h.bindDraft(w, r, newProductSlot, d)
	return d
}

// editDraft returns the session's edit draft for id, loading the product when none is bound.
func (h *ConsoleHandler) editDraft(w http.ResponseWriter, r *http.Request, id string) (*services.Draft, error) {
	slot := draftSlot(id)
	if d, ok := h.boundDraft(r, slot); ok {
		return d, nil
	}
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	d := h.drafts.ForProduct(product)
	h.bindDraft(w, r, slot, d)
	return d, nil
}

// NewProductForm 제품 생성 마법사
func (h *ConsoleHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	d := h.newDraft(w, r)
	h.render(w, http.StatusOK, "form", h.formView(w, r, d, nil))
}

// SubmitNewProduct handles the create wizard's navigation and submit buttons.
func (h *ConsoleHandler) SubmitNewProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.redirect(w, r, "/products/new", formError(err))
		return
	}
	h.handleForm(w, r, h.newDraft(w, r))
}

// EditProductForm 제품 수정 폼
func (h *ConsoleHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, err := h.editDraft(w, r, id)
	if err != nil {
		h.productLoadFailed(w, r, id, err)
		return
	}

	if tab := r.URL.Query().Get("tab"); tab != "" {
		if step, ok := services.ParseStep(tab); ok {
			d.GoTo(step)
			h.drafts.Save(d)
		}
	}
	h.render(w, http.StatusOK, "form", h.formView(w, r, d, nil))
}

// SubmitEditProduct handles the edit form's tabs and submit buttons.
func (h *ConsoleHandler) SubmitEditProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.parseForm(w, r); err != nil {
		h.redirect(w, r, "/products/"+id+"/edit", formError(err))
		return
	}
	d, err := h.editDraft(w, r, id)
	if err != nil {
		h.productLoadFailed(w, r, id, err)
		return
	}
	h.handleForm(w, r, d)
}

func (h *ConsoleHandler) productLoadFailed(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, services.ErrProductNotFound) {
		h.redirect(w, r, "/products", notify.Error("Error", "Product not found."))
		return
	}
	logger.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("Failed to load product")
	h.redirect(w, r, "/products", notify.Error("Error", "Failed to load product. Please try again later."))
}

// handleForm applies the posted fields to d and performs the requested action.
func (h *ConsoleHandler) handleForm(w http.ResponseWriter, r *http.Request, d *services.Draft) {
	action := r.PostFormValue("action")
	if action == "" && r.PostFormValue("tab") != "" {
		action = "tab"
	}
	if action == "cancel" {
		h.dropDraft(w, r, d)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	errs := applyForm(d, r.PostForm)
	if err := h.attachFiles(r, d); err != nil {
		errs["attachment"] = failureDetail(err)
	}
	formURL := "/products/new"
	if !d.IsNew() {
		formURL = "/products/" + d.ProductID + "/edit"
	}

	if len(errs) > 0 && action != "back" && action != "tab" {
		d.GoTo(firstInvalidStep(errs, d.Step))
		h.drafts.Save(d)
		h.render(w, http.StatusUnprocessableEntity, "form", h.formView(w, r, d, errs))
		return
	}

	switch action {
	case "next":
		d.Next()
	case "back":
		d.Back()
	case "tab":
		if step, ok := services.ParseStep(r.PostFormValue("tab")); ok {
			d.GoTo(step)
		}
	case "draft":
		h.submit(w, r, d, services.SubmitDraft, formURL)
		return
	case "publish":
		h.submit(w, r, d, services.SubmitPublish, formURL)
		return
	}

	h.drafts.Save(d)
	http.Redirect(w, r, formURL, http.StatusSeeOther)
}

func (h *ConsoleHandler) submit(w http.ResponseWriter, r *http.Request, d *services.Draft, variant services.SubmitVariant, formURL string) {
	result, err := h.workflow.Submit(r.Context(), d, variant)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		d.GoTo(firstInvalidStep(verr.Fields, d.Step))
		h.drafts.Save(d)
		h.render(w, http.StatusUnprocessableEntity, "form", h.formView(w, r, d, verr.Fields,
			notify.Error("Validation Failed", "Please correct the highlighted fields.")))
		return
	case err != nil:
		h.drafts.Save(d)
		logger.WithFields(map[string]interface{}{"draft_id": d.ID, "product_id": d.ProductID, "error": err.Error()}).Error("Failed to save product")
		if d.IsNew() {
			h.redirect(w, r, formURL, notify.Error("Creation Failed", "Failed to create product. Please try again."))
		} else {
			h.redirect(w, r, formURL, notify.Error("Update Failed", "Failed to update product: "+failureDetail(err)))
		}
		return
	}

	h.dropDraft(w, r, d)

	verb := "updated"
	title := "Product Updated"
	if d.IsNew() {
		verb = "created"
		title = "Product Created"
	}
	notices := []notify.Notice{
		notify.Success(title, fmt.Sprintf("%s has been %s successfully!", result.Product.Name, verb)),
	}
	if result.StatusRegressed {
		notices = append(notices, notify.Warning("Status Changed", fmt.Sprintf("%s was published and is now a draft again.", result.Product.Name)))
	}
	for _, f := range result.Files {
		if f.Placeholder {
			notices = append(notices, notify.Info("Upload Unavailable", fmt.Sprintf("%s was not stored: the backend has no upload endpoint.", f.FileName)))
		}
	}
	for _, failure := range result.UploadFailures {
		notices = append(notices, notify.Warning("Upload Failed", fmt.Sprintf("%s (%s) could not be uploaded.", failure.FileName, failure.FileType.Label())))
	}
	h.redirect(w, r, "/products", notices...)
}

// applyForm copies the posted fields present in form into the draft input. It returns
// per-field messages for values that cannot be parsed.
func applyForm(d *services.Draft, form url.Values) map[string]string {
	errs := make(map[string]string)

	text := func(key string, dst *string) {
		if values, ok := form[key]; ok && len(values) > 0 {
			*dst = strings.TrimSpace(values[0])
		}
	}
	text("name", &d.Input.Name)
	text("description", &d.Input.Description)
	text("apiEndpoint", &d.Input.APIEndpoint)
	text("documentation", &d.Input.Documentation)

	if values, ok := form["type"]; ok && len(values) > 0 {
		d.Input.Type = models.ProductType(values[0])
	}

	// A new pricing model resets the price; the posted price belonged to the old model.
	if values, ok := form["pricingModel"]; ok && len(values) > 0 && models.PricingModel(values[0]) != d.Input.PricingModel {
		d.SelectPricingModel(models.PricingModel(values[0]))
		return errs
	}
	if values, ok := form["basePrice"]; ok && len(values) > 0 {
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			d.Input.BasePrice = decimal.Zero
		} else if price, err := decimal.NewFromString(raw); err != nil {
			errs["basePrice"] = "Price must be a number"
		} else {
			d.Input.BasePrice = price
		}
	}
	return errs
}

var attachmentFields = map[string]models.FileType{
	"sampleFile":        models.FileTypeSample,
	"documentationFile": models.FileTypeDocumentation,
}

// attachFiles stores files picked in the form on the draft. They are uploaded on submit.
func (h *ConsoleHandler) attachFiles(r *http.Request, d *services.Draft) error {
	if r.MultipartForm == nil {
		return nil
	}
	for field, fileType := range attachmentFields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", field, err)
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", field, err)
		}
		if header.Filename == "" {
			continue
		}
		d.Attach(fileType, header.Filename, content)
	}
	return nil
}

var fieldSteps = map[string]services.Step{
	"name":          services.StepBasicInfo,
	"type":          services.StepBasicInfo,
	"description":   services.StepBasicInfo,
	"status":        services.StepBasicInfo,
	"apiEndpoint":   services.StepTechnicalDetails,
	"pricingModel":  services.StepPricing,
	"basePrice":     services.StepPricing,
	"documentation": services.StepDocumentation,
}

// firstInvalidStep is the earliest step holding one of the failed fields, or current
// when none of them belongs to a step.
func firstInvalidStep(fields map[string]string, current services.Step) services.Step {
	first, found := current, false
	for field := range fields {
		if step, ok := fieldSteps[field]; ok && (!found || step < first) {
			first, found = step, true
		}
	}
	return first
}

// ConfirmDeleteProduct 제품 삭제 확인
func (h *ConsoleHandler) ConfirmDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.productLoadFailed(w, r, id, err)
		return
	}

	h.render(w, http.StatusOK, "confirm", confirmView{
		page: h.page(w, r, "Delete "+product.Name, "products"),
		Notice: notify.Confirm("Delete Product?",
			"Are you sure you want to delete this product? This action cannot be undone.",
			notify.WithButtons("Yes, delete it", "Cancel")),
		Action: "/products/" + id + "/delete",
	})
}

// DeleteProduct 제품 삭제. The dashboard refetches after the redirect.
func (h *ConsoleHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil || !cast.ToBool(r.PostFormValue("confirm")) {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		logger.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("Failed to delete product")
		h.redirect(w, r, "/products", notify.Error("Error", "Failed to delete product. Please try again."))
		return
	}

	if d, ok := h.boundDraft(r, draftSlot(id)); ok {
		h.dropDraft(w, r, d)
	}
	h.redirect(w, r, "/products", notify.Success("Success!", "Product deleted successfully"))
}

// confirmView is a confirmation dialog page.
type confirmView struct {
	page
	Notice notify.Notice
	Action string
}
