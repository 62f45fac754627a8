package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"productconsole/client"
	"productconsole/models"
	"productconsole/notify"
	"productconsole/services"
	"productconsole/session"
)

type ConsoleSuite struct {
	suite.Suite
	products *fakeProducts
	drafts   *services.DraftStore
	sessions *session.Manager
	handler  *ConsoleHandler
	mux      *http.ServeMux
	cookies  map[string]*http.Cookie
}

func TestConsoleSuite(t *testing.T) {
	suite.Run(t, new(ConsoleSuite))
}

func (s *ConsoleSuite) SetupTest() {
	sessions, err := session.NewManager("console-test-secret", false)
	s.Require().NoError(err)

	s.sessions = sessions
	s.products = newFakeProducts()
	s.cookies = map[string]*http.Cookie{}
	s.serve(s.products)
}

// serve routes the console to products with a fresh draft store.
func (s *ConsoleSuite) serve(products services.ProductService) {
	s.drafts = services.NewDraftStore(time.Hour)
	s.mux = http.NewServeMux()
	s.handler = NewConsoleHandler(products, services.NewWorkflow(products), s.drafts, s.sessions, 1<<20)
	s.handler.Routes(s.mux)
}

func (s *ConsoleSuite) keepCookies(rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		s.cookies[c.Name] = c
	}
}

// do sends req with the cookies a browser would hold and keeps the ones it sets.
func (s *ConsoleSuite) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	s.keepCookies(rec)
	return rec
}

func (s *ConsoleSuite) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *ConsoleSuite) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *ConsoleSuite) postMultipart(path string, fields map[string]string, fileField, fileName, content string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(fileField, fileName)
	s.Require().NoError(err)
	_, err = io.WriteString(part, content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

func (s *ConsoleSuite) assertRedirect(rec *httptest.ResponseRecorder, location string) {
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal(location, rec.Header().Get("Location"))
}

func (s *ConsoleSuite) seedPublished() models.Product {
	p := models.Product{
		ID:           "7",
		Name:         "Geo API",
		Type:         models.ProductTypeAPI,
		Status:       models.ProductStatusPublished,
		PricingModel: models.PricingEnterprise,
		BasePrice:    decimal.NewFromInt(5000),
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	s.products.put(p)
	return p
}

func (s *ConsoleSuite) TestRootRedirectsToDashboard() {
	rec := s.get("/")
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/products", rec.Header().Get("Location"))
}

func (s *ConsoleSuite) TestDashboardShowsDerivedMetrics() {
	s.seedPublished()

	rec := s.get("/products")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "Geo API")
	s.Contains(body, "$4,000")
	s.Contains(body, "<td>50</td>")
	s.Contains(body, "Mar 1, 2024")
}

func (s *ConsoleSuite) TestDashboardLoadFailureShowsError() {
	s.products.listErr = errors.New("connection refused")

	rec := s.get("/products")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Failed to load products. Please try again later.")
	s.NotContains(rec.Body.String(), "No products yet.")
}

func (s *ConsoleSuite) TestExportCSV() {
	s.seedPublished()

	rec := s.get("/products/export.csv")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	s.Require().Len(lines, 2)
	s.Equal("id,name,type,status,pricing_model,base_price,revenue,active_users,created_at", lines[0])
	s.Equal("7,Geo API,API,PUBLISHED,ENTERPRISE,5000,4000,50,2024-03-01T10:00:00Z", lines[1])
}

func (s *ConsoleSuite) TestExportCSVFailure() {
	s.products.listErr = errors.New("boom")
	s.Equal(http.StatusBadGateway, s.get("/products/export.csv").Code)
}

func (s *ConsoleSuite) TestWizardCreatesAndPublishes() {
	rec := s.get("/products/new")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `name="name"`)

	s.assertRedirect(s.post("/products/new", url.Values{
		"name": {"Geo API"}, "type": {"API"}, "description": {"Geocoding"}, "action": {"next"},
	}), "/products/new")

	s.Contains(s.get("/products/new").Body.String(), `name="apiEndpoint"`)
	s.assertRedirect(s.postMultipart("/products/new",
		map[string]string{"apiEndpoint": "https://geo.example.com", "action": "next"},
		"sampleFile", "sample.json", `{"lat":1}`,
	), "/products/new")

	s.assertRedirect(s.post("/products/new", url.Values{
		"pricingModel": {"SUBSCRIPTION"}, "basePrice": {"250"}, "action": {"next"},
	}), "/products/new")

	s.assertRedirect(s.post("/products/new", url.Values{
		"documentation": {"See the guide"}, "action": {"publish"},
	}), "/products")

	s.Require().Len(s.products.created, 1)
	created := s.products.created[0]
	s.Equal("Geo API", created.Name)
	s.Equal(models.ProductTypeAPI, created.Type)
	s.Equal("https://geo.example.com", created.APIEndpoint)
	s.Equal(models.ProductStatusPublished, created.Status)
	s.True(decimal.NewFromInt(250).Equal(created.BasePrice))
	s.Equal("See the guide", created.Documentation)
	s.Equal([]string{"SAMPLE_FILE:sample.json"}, s.products.uploaded)
	s.Zero(s.drafts.Len())

	body := s.get("/products").Body.String()
	s.Contains(body, "Geo API has been created successfully!")

	// The next wizard starts from scratch.
	s.NotContains(s.get("/products/new").Body.String(), `value="Geo API"`)
}

func (s *ConsoleSuite) TestWizardBackStaysOnFirstStep() {
	s.get("/products/new")
	s.assertRedirect(s.post("/products/new", url.Values{"action": {"back"}}), "/products/new")
	s.Contains(s.get("/products/new").Body.String(), `name="name"`)
}

func (s *ConsoleSuite) TestSubmitValidationRendersInline() {
	s.get("/products/new")

	rec := s.post("/products/new", url.Values{"name": {"  "}, "action": {"draft"}})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Name is required")
	s.Empty(s.products.created)
}

func (s *ConsoleSuite) TestNegativePriceReturnsToPricingStep() {
	s.get("/products/new")
	s.post("/products/new", url.Values{"name": {"Geo API"}, "basePrice": {"-5"}})

	rec := s.post("/products/new", url.Values{"action": {"publish"}})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Price cannot be negative")
	s.Contains(rec.Body.String(), `name="basePrice"`)
	s.Empty(s.products.created)
}

func (s *ConsoleSuite) TestUnparseablePriceBlocksNext() {
	s.get("/products/new")

	rec := s.post("/products/new", url.Values{"basePrice": {"cheap"}, "action": {"next"}})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Price must be a number")
}

func (s *ConsoleSuite) TestChangingPricingModelResetsPrice() {
	s.get("/products/new")
	s.post("/products/new", url.Values{"action": {"next"}})
	s.post("/products/new", url.Values{"action": {"next"}})

	s.assertRedirect(s.post("/products/new", url.Values{
		"pricingModel": {"ENTERPRISE"}, "basePrice": {"5"}, "action": {"pricing"},
	}), "/products/new")

	body := s.get("/products/new").Body.String()
	s.Contains(body, `value="1999"`)
	s.Contains(body, "Annual Enterprise License ($)")
}

func (s *ConsoleSuite) TestCreateFailureKeepsDraft() {
	s.products.createErr = errors.New("api POST /products: 500 Internal Server Error")
	s.get("/products/new")

	s.assertRedirect(s.post("/products/new", url.Values{"name": {"Geo API"}, "action": {"draft"}}), "/products/new")

	body := s.get("/products/new").Body.String()
	s.Contains(body, "Failed to create product. Please try again.")
	s.Contains(body, `value="Geo API"`)
}

func (s *ConsoleSuite) TestCancelDropsDraft() {
	s.get("/products/new")
	s.post("/products/new", url.Values{"name": {"Geo API"}})
	s.Equal(1, s.drafts.Len())

	s.assertRedirect(s.post("/products/new", url.Values{"action": {"cancel"}}), "/products")
	s.Zero(s.drafts.Len())
}

func (s *ConsoleSuite) TestEditTabsAndStatusRegressionWarning() {
	s.seedPublished()

	rec := s.get("/products/7/edit?tab=pricing")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `value="5000"`)

	s.assertRedirect(s.post("/products/7/edit", url.Values{"tab": {"documentation"}}), "/products/7/edit")
	s.Contains(s.get("/products/7/edit").Body.String(), `name="documentation"`)

	s.assertRedirect(s.post("/products/7/edit", url.Values{"documentation": {"v2"}, "action": {"draft"}}), "/products")
	s.Require().Len(s.products.updated, 1)
	s.Equal(models.ProductStatusDraft, s.products.updated[0].Status)
	s.Equal("v2", s.products.updated[0].Documentation)

	body := s.get("/products").Body.String()
	s.Contains(body, "Geo API has been updated successfully!")
	s.Contains(body, "was published and is now a draft again.")
}

func (s *ConsoleSuite) TestEditMissingProductRedirects() {
	rec := s.get("/products/404/edit")
	s.assertRedirect(rec, "/products")
	s.Contains(s.get("/products").Body.String(), "Product not found.")
}

func (s *ConsoleSuite) TestDeleteRequiresConfirmation() {
	s.seedPublished()

	rec := s.get("/products/7/delete")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Delete Product?")

	s.assertRedirect(s.post("/products/7/delete", url.Values{"confirm": {"false"}}), "/products")
	s.Empty(s.products.deleted)

	s.assertRedirect(s.post("/products/7/delete", url.Values{"confirm": {"true"}}), "/products")
	s.Equal([]string{"7"}, s.products.deleted)

	body := s.get("/products").Body.String()
	s.Contains(body, "Product deleted successfully")
	s.NotContains(body, "Geo API</td>")
}

func (s *ConsoleSuite) TestDeleteFailureShowsError() {
	s.seedPublished()
	s.products.deleteErr = errors.New("api DELETE /products/7: 404 Not Found")

	s.assertRedirect(s.post("/products/7/delete", url.Values{"confirm": {"true"}}), "/products")
	s.Contains(s.get("/products").Body.String(), "Failed to delete product. Please try again.")
}

func (s *ConsoleSuite) TestFileUploadListAndDelete() {
	s.seedPublished()

	s.assertRedirect(s.postMultipart("/products/7/files",
		map[string]string{"fileType": "DOCUMENTATION"}, "file", "guide.pdf", "%PDF-1.4"),
		"/products/7/files")

	body := s.get("/products/7/files").Body.String()
	s.Contains(body, "guide.pdf has been uploaded.")
	s.Contains(body, "guide.pdf")
	s.Contains(body, "8 B")

	rec := s.get("/products/7/files/1/delete")
	s.Contains(rec.Body.String(), "Are you sure you want to delete guide.pdf?")

	s.assertRedirect(s.post("/products/7/files/1/delete", url.Values{"confirm": {"true"}}), "/products/7/files")
	body = s.get("/products/7/files").Body.String()
	s.Contains(body, "The file has been deleted successfully.")
	s.Contains(body, "No files uploaded.")
}

func (s *ConsoleSuite) TestFileUploadWithoutEndpoint() {
	s.seedPublished()
	s.products.uploadErr = services.ErrUploadEndpointMissing

	s.assertRedirect(s.postMultipart("/products/7/files",
		map[string]string{"fileType": "SAMPLE_FILE"}, "file", "sample.csv", "a,b"),
		"/products/7/files")
	s.Contains(s.get("/products/7/files").Body.String(), "sample.csv was not stored: the backend has no upload endpoint.")
}

func (s *ConsoleSuite) TestFileUploadRejectsUnknownType() {
	s.seedPublished()

	s.postMultipart("/products/7/files", map[string]string{"fileType": "VIDEO"}, "file", "x.mp4", "x")
	s.Empty(s.products.uploaded)
	s.Contains(s.get("/products/7/files").Body.String(), "Choose a file type.")
}

func (s *ConsoleSuite) TestCreateReportsFailedDocumentationUpload() {
	s.products.uploadErr = errors.New("api POST /products/1/files/DOCUMENTATION: 502 Bad Gateway")
	s.get("/products/new")

	s.assertRedirect(s.postMultipart("/products/new",
		map[string]string{"name": "Geo API", "action": "draft"},
		"documentationFile", "guide.pdf", "%PDF-1.4",
	), "/products")

	s.Require().Len(s.products.created, 1)
	body := s.get("/products").Body.String()
	s.Contains(body, "Geo API has been created successfully!")
	s.Contains(body, "Upload Failed")
	s.Contains(body, "guide.pdf (Documentation) could not be uploaded.")
}

func (s *ConsoleSuite) TestUpdateFailureWithLargeBackendBodyStillNotifies() {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id":7,"name":"Geo API","type":"API","status":"PUBLISHED","pricingModel":"ENTERPRISE","basePrice":5000,"createdAt":"2024-03-01T10:00:00Z"}`)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html><body>"+strings.Repeat("upstream stack frame\n", 250)+"</body></html>")
	}))
	defer backend.Close()
	s.serve(services.NewProductService(client.New(client.Options{BaseURL: backend.URL})))

	rec := s.post("/products/7/edit", url.Values{"documentation": {"v2"}, "action": {"draft"}})
	s.assertRedirect(rec, "/products/7/edit")
	s.NotEmpty(rec.Result().Cookies())

	body := s.get("/products/7/edit").Body.String()
	s.Contains(body, "Update Failed")
	s.Contains(body, "The server responded with 500 Internal Server Error.")
	s.NotContains(body, "upstream stack frame")
}

func (s *ConsoleSuite) TestOversizedNoticeKeepsItsTitle() {
	rec := httptest.NewRecorder()
	s.handler.redirect(rec, httptest.NewRequest(http.MethodPost, "/products/7/edit", nil), "/products",
		notify.Error("Update Failed", strings.Repeat("x", 5000)))
	s.assertRedirect(rec, "/products")
	s.keepCookies(rec)

	body := s.get("/products").Body.String()
	s.Contains(body, "Update Failed")
	s.NotContains(body, strings.Repeat("x", 100))
}

func TestFailureDetail(t *testing.T) {
	apiErr := &client.APIError{Method: "PUT", Path: "/products/7", StatusCode: 500, StatusText: "Internal Server Error", Body: strings.Repeat("<p>", 2000)}
	assert.Equal(t, "The server responded with 500 Internal Server Error.", failureDetail(fmt.Errorf("update: %w", apiErr)))

	long := failureDetail(errors.New(strings.Repeat("é", 500)))
	assert.Equal(t, maxNoticeDetail+3, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "..."))

	assert.Equal(t, "boom", failureDetail(errors.New("boom")))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}
