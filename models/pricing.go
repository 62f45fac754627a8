package models

import "github.com/shopspring/decimal"

// PricingModel 가격 정책
type PricingModel string

const (
	PricingUsageBased   PricingModel = "USAGE_BASED"
	PricingSubscription PricingModel = "SUBSCRIPTION"
	PricingEnterprise   PricingModel = "ENTERPRISE"
	PricingCustom       PricingModel = "CUSTOM"
)

// PricingModels lists the pricing models in display order.
var PricingModels = []PricingModel{PricingUsageBased, PricingSubscription, PricingEnterprise, PricingCustom}

// PricingPlan is the descriptive copy and default price for one pricing model.
type PricingPlan struct {
	Model        PricingModel
	Label        string
	PriceLabel   string
	Unit         string
	Step         string
	DefaultPrice decimal.Decimal
	Intro        string
	Features     []string
}

var pricingPlans = map[PricingModel]PricingPlan{
	PricingUsageBased: {
		Model:        PricingUsageBased,
		Label:        "Usage Based",
		PriceLabel:   "Price per Request ($)",
		Unit:         "per request",
		Step:         "0.001",
		DefaultPrice: decimal.RequireFromString("0.01"),
		Intro:        "Usage-based pricing is ideal for:",
		Features:     []string{"Pay-as-you-go services", "Variable usage patterns", "Testing and development"},
	},
	PricingSubscription: {
		Model:        PricingSubscription,
		Label:        "Subscription",
		PriceLabel:   "Monthly Subscription ($)",
		Unit:         "per month",
		Step:         "1",
		DefaultPrice: decimal.NewFromInt(199),
		Intro:        "Monthly subscription includes:",
		Features:     []string{"25,000 requests per month", "Priority support", "Analytics dashboard"},
	},
	PricingEnterprise: {
		Model:        PricingEnterprise,
		Label:        "Enterprise",
		PriceLabel:   "Annual Enterprise License ($)",
		Unit:         "per year",
		Step:         "1",
		DefaultPrice: decimal.NewFromInt(1999),
		Intro:        "Enterprise license includes:",
		Features:     []string{"Unlimited requests", "24/7 dedicated support", "Custom integration assistance", "Service Level Agreement (SLA)"},
	},
	PricingCustom: {
		Model:        PricingCustom,
		Label:        "Custom",
		PriceLabel:   "Custom Base Price ($)",
		Step:         "0.01",
		DefaultPrice: decimal.Zero,
		Intro:        "Custom pricing allows:",
		Features:     []string{"Tailored pricing structure", "Custom feature sets", "Negotiable terms", "Contact sales for details"},
	},
}

// Valid reports whether m is a known pricing model.
func (m PricingModel) Valid() bool {
	_, ok := pricingPlans[m]
	return ok
}

// Plan returns the pricing plan for m and whether it exists.
func (m PricingModel) Plan() (PricingPlan, bool) {
	plan, ok := pricingPlans[m]
	return plan, ok
}

// DefaultPrice is the base price a form resets to when m is selected.
// Unknown models keep a zero price.
func (m PricingModel) DefaultPrice() decimal.Decimal {
	if plan, ok := pricingPlans[m]; ok {
		return plan.DefaultPrice
	}
	return decimal.Zero
}

// PricingPlans returns every plan in display order.
func PricingPlans() []PricingPlan {
	plans := make([]PricingPlan, 0, len(PricingModels))
	for _, m := range PricingModels {
		plans = append(plans, pricingPlans[m])
	}
	return plans
}
