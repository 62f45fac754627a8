package handlers

import (
	"net/http"

	"productconsole/logger"
	"productconsole/notify"
	"productconsole/services"
)

// dashboardView is the data of the product listing.
type dashboardView struct {
	page
	Dashboard  services.Dashboard
	LoadFailed bool
}

// Dashboard 제품 목록 대시보드. Products are fetched on every view.
func (h *ConsoleHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error()}).Error("Failed to load products")
		view := dashboardView{
			page:       h.page(w, r, "Products", "products", notify.Error("Error", "Failed to load products. Please try again later.")),
			Dashboard:  services.BuildDashboard(nil),
			LoadFailed: true,
		}
		h.render(w, http.StatusOK, "dashboard", view)
		return
	}

	h.render(w, http.StatusOK, "dashboard", dashboardView{
		page:      h.page(w, r, "Products", "products"),
		Dashboard: services.BuildDashboard(products),
	})
}

// ExportCSV 대시보드 CSV 내보내기
func (h *ConsoleHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error()}).Error("Failed to load products for export")
		http.Error(w, "Failed to load products", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := services.BuildDashboard(products).WriteCSV(w); err != nil {
		logger.Error("Failed to write product CSV: %v", err)
	}
}

// Health 헬스체크 핸들러
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Server is healthy"}`))
}
