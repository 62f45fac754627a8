package services

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"productconsole/models"
	"productconsole/utils"
)

var (
	revenueShare    = decimal.RequireFromString("0.8")
	usersPerDollars = decimal.NewFromInt(100)
	half            = decimal.RequireFromString("0.5")
)

// MinActiveUsers is the floor applied to the derived active user count.
const MinActiveUsers = 10

// ProductMetrics are the display-only figures derived from a product's base price.
type ProductMetrics struct {
	Revenue     int64
	ActiveUsers int64
}

// DeriveMetrics computes revenue = round(price*0.8) and activeUsers = max(10, floor(price/100)).
// Halves round up, toward positive infinity.
func DeriveMetrics(price decimal.Decimal) ProductMetrics {
	revenue := price.Mul(revenueShare).Add(half).Floor().IntPart()
	users := price.Div(usersPerDollars).Floor().IntPart()
	if users < MinActiveUsers {
		users = MinActiveUsers
	}
	return ProductMetrics{Revenue: revenue, ActiveUsers: users}
}

// DashboardRow is one product line of the dashboard and of its CSV export.
type DashboardRow struct {
	Product      models.Product `csv:"-"`
	ID           string         `csv:"id"`
	Name         string         `csv:"name"`
	Type         string         `csv:"type"`
	Status       string         `csv:"status"`
	PricingModel string         `csv:"pricing_model"`
	BasePrice    string         `csv:"base_price"`
	Revenue      int64          `csv:"revenue"`
	ActiveUsers  int64          `csv:"active_users"`
	CreatedAt    string         `csv:"created_at"`
}

// DashboardStats are the summary cards above the product table.
type DashboardStats struct {
	TotalProducts  int
	ActiveProducts int
	TotalUsers     int64
	MonthlyRevenue string
}

// Dashboard is the listing view model.
type Dashboard struct {
	Rows  []DashboardRow
	Stats DashboardStats
}

// BuildDashboard derives the per-row metrics and the summary statistics.
func BuildDashboard(products []models.Product) Dashboard {
	dash := Dashboard{Rows: make([]DashboardRow, 0, len(products))}

	var revenue int64
	for _, p := range products {
		metrics := DeriveMetrics(p.BasePrice)
		dash.Rows = append(dash.Rows, DashboardRow{
			Product:      p,
			ID:           p.ID,
			Name:         p.Name,
			Type:         string(p.Type),
			Status:       string(p.Status),
			PricingModel: string(p.PricingModel),
			BasePrice:    p.BasePrice.String(),
			Revenue:      metrics.Revenue,
			ActiveUsers:  metrics.ActiveUsers,
			CreatedAt:    utils.FormatTimestamp(p.CreatedAt),
		})

		if p.Status == models.ProductStatusPublished {
			dash.Stats.ActiveProducts++
		}
		dash.Stats.TotalUsers += metrics.ActiveUsers
		revenue += metrics.Revenue
	}

	dash.Stats.TotalProducts = len(products)
	dash.Stats.MonthlyRevenue = utils.FormatDollars(revenue)
	return dash
}

// WriteCSV writes the dashboard rows as CSV with a header line.
func (d Dashboard) WriteCSV(w io.Writer) error {
	rows := d.Rows
	if rows == nil {
		rows = []DashboardRow{}
	}
	return gocsv.Marshal(&rows, w)
}
