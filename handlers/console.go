package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"productconsole/client"
	"productconsole/logger"
	"productconsole/middleware"
	"productconsole/notify"
	"productconsole/services"
	"productconsole/session"
)

const (
	defaultMaxUploadBytes int64 = 100 << 20
	multipartMemory       int64 = 32 << 20
	newProductSlot              = "new"
	maxNoticeDetail             = 200
)

// ConsoleHandler는 콘솔 페이지 요청을 처리한다.
type ConsoleHandler struct {
	products  services.ProductService
	workflow  *services.Workflow
	drafts    *services.DraftStore
	sessions  *session.Manager
	pages     map[string]*template.Template
	maxUpload int64
}

// NewConsoleHandler는 콘솔 핸들러를 생성한다.
func NewConsoleHandler(products services.ProductService, workflow *services.Workflow, drafts *services.DraftStore, sessions *session.Manager, maxUpload int64) *ConsoleHandler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &ConsoleHandler{
		products:  products,
		workflow:  workflow,
		drafts:    drafts,
		sessions:  sessions,
		pages:     pageTemplates(),
		maxUpload: maxUpload,
	}
}

// Routes registers the console pages on mux, each wrapped by mws.
func (h *ConsoleHandler) Routes(mux *http.ServeMux, mws ...func(http.HandlerFunc) http.HandlerFunc) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.ChainMiddleware(fn, mws...))
	}

	handle("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products", http.StatusFound)
	})
	handle("GET /products", h.Dashboard)
	handle("GET /products/export.csv", h.ExportCSV)
	handle("GET /products/new", h.NewProductForm)
	handle("POST /products/new", h.SubmitNewProduct)
	handle("GET /products/{id}/edit", h.EditProductForm)
	handle("POST /products/{id}/edit", h.SubmitEditProduct)
	handle("GET /products/{id}/delete", h.ConfirmDeleteProduct)
	handle("POST /products/{id}/delete", h.DeleteProduct)
	handle("GET /products/{id}/files", h.ProductFiles)
	handle("POST /products/{id}/files", h.UploadProductFile)
	handle("GET /products/{id}/files/{fileId}/delete", h.ConfirmDeleteProductFile)
	handle("POST /products/{id}/files/{fileId}/delete", h.DeleteProductFile)
}

// page builds the layout data, draining the notices queued by earlier requests.
func (h *ConsoleHandler) page(w http.ResponseWriter, r *http.Request, title, active string, extra ...notify.Notice) page {
	notices := h.sessions.TakeNotices(w, r)
	return page{Title: title, Active: active, Notices: append(notices, extra...)}
}

// redirect queues notices for the next page and sends the browser to location.
// When the session cookie cannot hold them, the notices are queued again without
// their messages so the next page still shows what happened.
func (h *ConsoleHandler) redirect(w http.ResponseWriter, r *http.Request, location string, notices ...notify.Notice) {
	for _, n := range notices {
		if err := h.sessions.AddNotice(w, r, n); err != nil {
			logger.Warn("Failed to queue notice %q: %v", n.Title, err)
			h.queueTitles(w, r, notices)
			break
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *ConsoleHandler) queueTitles(w http.ResponseWriter, r *http.Request, notices []notify.Notice) {
	short := make([]notify.Notice, len(notices))
	for i, n := range notices {
		n.Message = ""
		short[i] = n
	}
	if err := h.sessions.ReplaceNotices(w, r, short...); err != nil {
		logger.Error("Failed to queue notices: %v", err)
	}
}

// failureDetail is the reason shown to the user for err. Backend errors are reduced
// to their status line; the full text only goes to the logs.
func failureDetail(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("The server responded with %d %s.", apiErr.StatusCode, apiErr.StatusText)
	}
	msg := []rune(err.Error())
	if len(msg) > maxNoticeDetail {
		return string(msg[:maxNoticeDetail]) + "..."
	}
	return string(msg)
}

// parseForm reads a urlencoded or multipart body, capped at maxUpload bytes.
func (h *ConsoleHandler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// formError turns a body parsing failure into a notice.
func formError(err error) notify.Notice {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return notify.Error("File Too Large", "The upload exceeds the size limit.")
	}
	return notify.Error("Invalid Form", failureDetail(err))
}
