package models

// ReportSummary mirrors the dashboard KPI cards: overall bill, balance of
// all consumers, total income, cubic meters used, and customer count.
type ReportSummary struct {
	TotalCustomers   int     `json:"total_customers"`
	TotalBilled      float64 `json:"total_billed"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalCollected   float64 `json:"total_collected"`
	TotalCubicUsed   float64 `json:"total_cubic_used"`

	Monthly []MonthlyReportRow `json:"monthly"`
}

// MonthlyReportRow is one point of the per-month chart series.
type MonthlyReportRow struct {
	Month     string  `json:"month"` // YYYY-MM
	Billed    float64 `json:"billed"`
	Collected float64 `json:"collected"`
	CubicUsed float64 `json:"cubic_used"`
}
