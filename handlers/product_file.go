package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cast"

	"productconsole/logger"
	"productconsole/models"
	"productconsole/notify"
	"productconsole/services"
)

// filesView is the data of a product's attachment page.
type filesView struct {
	page
	ProductID  string
	Product    models.Product
	Files      []models.ProductFile
	FileTypes  []models.FileType
	LoadFailed bool
}

// ProductFiles 제품 첨부 파일 목록
func (h *ConsoleHandler) ProductFiles(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.productLoadFailed(w, r, id, err)
		return
	}

	view := filesView{ProductID: id, Product: product, FileTypes: models.FileTypes}
	files, err := h.products.ListFiles(r.Context(), id)
	if err != nil {
		logger.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("Failed to load product files")
		view.page = h.page(w, r, product.Name+" files", "products", notify.Error("Fetch Failed", failureDetail(err)))
		view.LoadFailed = true
		h.render(w, http.StatusOK, "files", view)
		return
	}

	view.page = h.page(w, r, product.Name+" files", "products")
	view.Files = files
	h.render(w, http.StatusOK, "files", view)
}

// UploadProductFile 제품 첨부 파일 업로드
func (h *ConsoleHandler) UploadProductFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	filesURL := "/products/" + id + "/files"
	if err := h.parseForm(w, r); err != nil {
		h.redirect(w, r, filesURL, formError(err))
		return
	}

	fileType := models.FileType(r.PostFormValue("fileType"))
	if !fileType.Valid() {
		h.redirect(w, r, filesURL, notify.Error("Upload Failed", "Choose a file type."))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.redirect(w, r, filesURL, notify.Error("Upload Failed", "Choose a file to upload."))
		return
	}
	defer file.Close()

	uploaded, err := h.products.UploadFile(r.Context(), id, fileType, header.Filename, file)
	switch {
	case errors.Is(err, services.ErrUploadEndpointMissing):
		h.redirect(w, r, filesURL, notify.Info("Upload Unavailable",
			fmt.Sprintf("%s was not stored: the backend has no upload endpoint.", uploaded.FileName)))
	case err != nil:
		logger.WithFields(map[string]interface{}{"product_id": id, "file_type": fileType, "error": err.Error()}).Error("Failed to upload product file")
		h.redirect(w, r, filesURL, notify.Error("Upload Failed", failureDetail(err)))
	default:
		h.redirect(w, r, filesURL, notify.Success("File Uploaded", fmt.Sprintf("%s has been uploaded.", uploaded.FileName)))
	}
}

// ConfirmDeleteProductFile 첨부 파일 삭제 확인
func (h *ConsoleHandler) ConfirmDeleteProductFile(w http.ResponseWriter, r *http.Request) {
	id, fileID := r.PathValue("id"), r.PathValue("fileId")
	name := fileID
	if files, err := h.products.ListFiles(r.Context(), id); err == nil {
		for _, f := range files {
			if f.ID == fileID {
				name = f.FileName
				break
			}
		}
	}

	h.render(w, http.StatusOK, "confirm", confirmView{
		page: h.page(w, r, "Delete "+name, "products"),
		Notice: notify.Confirm("Delete File?",
			fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", name),
			notify.WithButtons("Yes, delete it", "Cancel")),
		Action: "/products/" + id + "/files/" + fileID + "/delete",
	})
}

// DeleteProductFile 첨부 파일 삭제
func (h *ConsoleHandler) DeleteProductFile(w http.ResponseWriter, r *http.Request) {
	id, fileID := r.PathValue("id"), r.PathValue("fileId")
	filesURL := "/products/" + id + "/files"
	if err := r.ParseForm(); err != nil || !cast.ToBool(r.PostFormValue("confirm")) {
		http.Redirect(w, r, filesURL, http.StatusSeeOther)
		return
	}

	if err := h.products.DeleteFile(r.Context(), fileID); err != nil {
		logger.WithFields(map[string]interface{}{"product_id": id, "file_id": fileID, "error": err.Error()}).Error("Failed to delete product file")
		h.redirect(w, r, filesURL, notify.Error("Deletion Failed", failureDetail(err)))
		return
	}
	h.redirect(w, r, filesURL, notify.Success("File Deleted", "The file has been deleted successfully."))
}
