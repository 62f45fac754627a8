package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"productconsole/logger"
	"productconsole/middleware"
	"productconsole/models"
	"productconsole/utils"
)

const defaultMaxUploadBytes int64 = 100 << 20

// Options configures the HTTP API.
type Options struct {
	// PublicURL is the externally reachable origin used in download links.
	PublicURL         string
	DownloadSecret    string
	DownloadURLExpiry time.Duration
	MaxUploadBytes    int64
	// DeleteFails answers every product delete with 500.
	DeleteFails bool
}

// API는 카탈로그 제품/파일 HTTP 요청을 처리한다.
type API struct {
	store       *Store
	blobs       *BlobStore
	signer      *utils.URLSigner
	publicURL   string
	urlExpiry   time.Duration
	maxUpload   int64
	deleteFails bool
}

// NewAPI builds the handler set.
func NewAPI(store *Store, blobs *BlobStore, opts Options) *API {
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &API{
		store:       store,
		blobs:       blobs,
		signer:      utils.NewURLSigner(opts.DownloadSecret),
		publicURL:   strings.TrimRight(opts.PublicURL, "/"),
		urlExpiry:   opts.DownloadURLExpiry,
		maxUpload:   maxUpload,
		deleteFails: opts.DeleteFails,
	}
}

// Routes registers the API on mux. mws wrap every route; protect additionally wraps
// every route except the signed download.
func (a *API) Routes(mux *http.ServeMux, protect func(http.HandlerFunc) http.HandlerFunc, mws ...func(http.HandlerFunc) http.HandlerFunc) {
	guarded := append(append([]func(http.HandlerFunc) http.HandlerFunc{}, mws...), protect)

	mux.HandleFunc("GET /api/products", middleware.ChainMiddleware(a.ListProducts, guarded...))
	mux.HandleFunc("POST /api/products", middleware.ChainMiddleware(a.CreateProduct, guarded...))
	mux.HandleFunc("GET /api/products/{id}", middleware.ChainMiddleware(a.GetProduct, guarded...))
	mux.HandleFunc("PUT /api/products/{id}", middleware.ChainMiddleware(a.UpdateProduct, guarded...))
	mux.HandleFunc("DELETE /api/products/{id}", middleware.ChainMiddleware(a.DeleteProduct, guarded...))
	mux.HandleFunc("POST /api/products/{id}/files/{fileType}", middleware.ChainMiddleware(a.UploadFile, guarded...))
	mux.HandleFunc("GET /api/products/{id}/files/{fileType}", middleware.ChainMiddleware(a.ListFiles, guarded...))
	mux.HandleFunc("DELETE /api/products/files/{fileId}", middleware.ChainMiddleware(a.DeleteFile, guarded...))
	mux.HandleFunc("GET /api/files/{fileId}/download", middleware.ChainMiddleware(a.DownloadFile, mws...))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, models.ErrorResponse(message, err))
}

// pathID parses a positive numeric path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListProducts 제품 목록 조회
// @Summary 제품 목록 조회
// @Description 모든 제품을 id 순으로 조회합니다
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProductResponse
// @Failure 401 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products [get]
func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.store.ListProducts(r.Context())
	if err != nil {
		logger.Error("Failed to query products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to query products", err)
		return
	}
	logger.Debug("Retrieved %d products", len(products))
	writeJSON(w, http.StatusOK, products)
}

// GetProduct 제품 상세 조회
// @Summary 제품 상세 조회
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/{id} [get]
func (a *API) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}

	product, err := a.store.GetProduct(r.Context(), id)
	if err != nil {
		a.productError(w, id, "Failed to query product", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct 제품 생성
// @Summary 제품 생성
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProductCreateRequest true "제품 정보"
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products [post]
func (a *API) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateCreate(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product", err)
		return
	}

	product, err := a.store.CreateProduct(r.Context(), req)
	if err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error(), "name": req.Name}).Error("Failed to create product")
		writeError(w, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r.Context()),
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct 제품 수정
// @Summary 제품 수정
// @Description 전달된 필드만 변경합니다
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Param request body models.ProductUpdateRequest true "변경할 필드"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/{id} [put]
func (a *API) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}

	var req models.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateUpdate(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product", err)
		return
	}

	product, err := a.store.UpdateProduct(r.Context(), id, req)
	if err != nil {
		a.productError(w, id, "Failed to update product", err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r.Context()),
		"product_id": id,
	}).Info("Product updated")
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct 제품 삭제
// @Summary 제품 삭제
// @Tags products
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Success 204
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/{id} [delete]
func (a *API) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}

	if a.deleteFails {
		logger.WithFields(map[string]interface{}{"product_id": id}).Warn("Product delete disabled, answering 500")
		writeError(w, http.StatusInternalServerError, "Failed to delete product", errors.New("delete not supported"))
		return
	}

	if err := a.store.DeleteProduct(r.Context(), id); err != nil {
		a.productError(w, id, "Failed to delete product", err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r.Context()),
		"product_id": id,
	}).Info("Product deleted")
	w.WriteHeader(http.StatusNoContent)
}

// UploadFile 제품 파일 업로드
// @Summary 제품 파일 업로드
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Param fileType path string true "SAMPLE_FILE 또는 DOCUMENTATION"
// @Param file formData file true "업로드할 파일"
// @Success 201 {object} models.ProductFileResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/{id}/files/{fileType} [post]
func (a *API) UploadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	fileType := models.FileType(r.PathValue("fileType"))
	if !fileType.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid file type", nil)
		return
	}
	if _, err := a.store.GetProduct(r.Context(), id); err != nil {
		a.productError(w, id, "Failed to query product", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload+int64(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large", err)
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to parse upload request", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File field is required", err)
		return
	}
	defer file.Close()

	originalName := filepath.Base(strings.TrimSpace(header.Filename))
	if originalName == "" || originalName == "." {
		writeError(w, http.StatusBadRequest, "Filename is required", nil)
		return
	}
	if header.Size > a.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
		return
	}

	blob, err := a.blobs.Save(originalName, header.Header.Get("Content-Type"), file)
	if err != nil {
		logger.Error("Failed to store upload: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store file", err)
		return
	}

	asset, err := a.store.CreateFile(r.Context(), models.FileAsset{
		ProductID:   id,
		FileType:    fileType,
		FileName:    originalName,
		StoredName:  blob.StoredName,
		ContentType: blob.ContentType,
		Size:        blob.Size,
		Checksum:    blob.Checksum,
		StoragePath: blob.StoragePath,
	})
	if err != nil {
		a.blobs.Remove(blob.StoragePath)
		writeError(w, http.StatusInternalServerError, "Failed to persist file metadata", err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r.Context()),
		"product_id": id,
		"file_id":    asset.ID,
		"file_type":  fileType,
		"size":       utils.FormatFileSize(asset.Size),
	}).Info("File uploaded")

	resp, err := a.fileResponse(asset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign download URL", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListFiles 제품 파일 목록 조회
// @Summary 제품 파일 목록 조회
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Param fileType path string true "SAMPLE_FILE 또는 DOCUMENTATION"
// @Success 200 {array} models.ProductFileResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/{id}/files/{fileType} [get]
func (a *API) ListFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	fileType := models.FileType(r.PathValue("fileType"))
	if !fileType.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid file type", nil)
		return
	}
	if _, err := a.store.GetProduct(r.Context(), id); err != nil {
		a.productError(w, id, "Failed to query product", err)
		return
	}

	assets, err := a.store.ListFiles(r.Context(), id, fileType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to query files", err)
		return
	}

	files := make([]models.ProductFileResponse, 0, len(assets))
	for _, asset := range assets {
		resp, err := a.fileResponse(asset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to sign download URL", err)
			return
		}
		files = append(files, resp)
	}
	writeJSON(w, http.StatusOK, files)
}

// DeleteFile 제품 파일 삭제
// @Summary 제품 파일 삭제
// @Tags files
// @Security BearerAuth
// @Param fileId path int true "파일 ID"
// @Success 204
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/products/files/{fileId} [delete]
func (a *API) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := pathID(r, "fileId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid file id", nil)
		return
	}

	asset, err := a.store.DeleteFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete file", err)
		return
	}

	if err := a.blobs.Remove(asset.StoragePath); err != nil {
		logger.WithFields(map[string]interface{}{
			"file_id": fileID,
			"path":    asset.StoragePath,
			"error":   err.Error(),
		}).Warn("Failed to remove stored file, leaving it for the sweeper")
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r.Context()),
		"file_id":    fileID,
	}).Info("File deleted")
	w.WriteHeader(http.StatusNoContent)
}

// DownloadFile 서명된 URL로 파일 다운로드
// @Summary 서명된 URL로 파일 다운로드
// @Tags files
// @Produce octet-stream
// @Param fileId path int true "파일 ID"
// @Param exp query int true "만료 시각 (unix)"
// @Param nonce query string true "nonce"
// @Param sig query string true "HMAC 서명"
// @Success 200 {file} file
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/files/{fileId}/download [get]
func (a *API) DownloadFile(w http.ResponseWriter, r *http.Request) {
	rawID := r.PathValue("fileId")
	q := r.URL.Query()
	if err := a.signer.Validate(rawID, q.Get("exp"), q.Get("nonce"), q.Get("sig")); err != nil {
		writeError(w, http.StatusForbidden, "Invalid download link", err)
		return
	}

	fileID, ok := pathID(r, "fileId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid file id", nil)
		return
	}
	asset, err := a.store.GetFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to query file", err)
		return
	}

	f, err := a.blobs.Open(asset.StoragePath)
	if err != nil {
		writeError(w, http.StatusNotFound, "Stored file not found", nil)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to stat file", err)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		sanitizeFilename(asset.FileName), url.PathEscape(asset.FileName))
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	http.ServeContent(w, r, asset.FileName, stat.ModTime(), f)
}

func (a *API) productError(w http.ResponseWriter, id int64, message string, err error) {
	if errors.Is(err, ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	logger.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("%s", message)
	writeError(w, http.StatusInternalServerError, message, err)
}

func (a *API) fileResponse(asset models.FileAsset) (models.ProductFileResponse, error) {
	fileID := strconv.FormatInt(asset.ID, 10)
	query, err := a.signer.Sign(fileID, a.urlExpiry)
	if err != nil {
		return models.ProductFileResponse{}, err
	}
	return models.ProductFileResponse{
		ID:          models.IDFromInt(asset.ID),
		FileName:    asset.FileName,
		FileType:    asset.FileType,
		ContentType: asset.ContentType,
		Size:        asset.Size,
		DownloadURL: fmt.Sprintf("%s/api/files/%s/download?%s", a.publicURL, fileID, query),
		CreatedAt:   asset.CreatedAt,
	}, nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\"", "")
	name = strings.ReplaceAll(name, "\\", "")
	return name
}

func validateCreate(req models.ProductCreateRequest) error {
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !req.Type.Valid() {
		problems = append(problems, fmt.Sprintf("unknown type %q", req.Type))
	}
	if req.Status != "" && !req.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", req.Status))
	}
	if !req.PricingModel.Valid() {
		problems = append(problems, fmt.Sprintf("unknown pricing model %q", req.PricingModel))
	}
	if req.BasePrice.IsNegative() {
		problems = append(problems, "base price cannot be negative")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func validateUpdate(req models.ProductUpdateRequest) error {
	var problems []string
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		problems = append(problems, "name cannot be empty")
	}
	if req.Type != nil && !req.Type.Valid() {
		problems = append(problems, fmt.Sprintf("unknown type %q", *req.Type))
	}
	if req.Status != nil && !req.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", *req.Status))
	}
	if req.PricingModel != nil && !req.PricingModel.Valid() {
		problems = append(problems, fmt.Sprintf("unknown pricing model %q", *req.PricingModel))
	}
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		problems = append(problems, "base price cannot be negative")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
