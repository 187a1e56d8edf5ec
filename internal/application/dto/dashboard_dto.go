package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido en el período.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, más el estado del inventario.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59, zona de negocio)
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayMargin decimal.Decimal `json:"today_margin"`

	// Métricas del mes en curso
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`

	// Top productos del mes por unidades vendidas
	TopProducts []TopProductDTO `json:"top_products"`

	// Valorización del inventario (Σ cantidad * costo de lotes activos)
	InventoryValuation decimal.Decimal `json:"inventory_valuation"`

	// Productos por estado: NORMAL, STOCK_BAJO, POR_VENCER, VENCIDO, AGOTADO
	ProductsByState map[string]int `json:"products_by_state"`
}
