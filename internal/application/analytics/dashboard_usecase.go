// Package analytics contiene los casos de uso de reportes para el dashboard
// de la botica.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso más el estado
// del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). No toca las
// tablas de ventas ni lotes directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clk           clock.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, clk clock.Clock) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, clk: clk}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales + TodayMargin
//  2. GetSalesMetrics(mes)        → MonthlySales + MonthlyMargin
//  3. GetTopProducts(mes, top 5)  → TopProducts
//  4. GetInventoryValuation       → InventoryValuation
//  5. GetStateCounts              → ProductsByState
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.clk.Now()

	// ── Rangos de fecha en la zona del negocio ────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type metricsResult struct {
		revenue decimal.Decimal
		cost    decimal.Decimal
		err     error
	}
	type topResult struct {
		products []dto.TopProductDTO
		err      error
	}
	type valuationResult struct {
		total decimal.Decimal
		err   error
	}
	type statesResult struct {
		counts map[string]int
		err    error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	valCh := make(chan valuationResult, 1)
	statesCh := make(chan statesResult, 1)

	go func() {
		rev, cost, err := uc.analyticsRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		rev, cost, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		monthCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.GetTopProducts(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.GetInventoryValuation(ctx)
		valCh <- valuationResult{total, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.GetStateCounts(ctx)
		statesCh <- statesResult{counts, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	val := <-valCh
	states := <-statesCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if val.err != nil {
		return nil, fmt.Errorf("dashboard: valorización: %w", val.err)
	}
	if states.err != nil {
		return nil, fmt.Errorf("dashboard: estados: %w", states.err)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:         today.revenue.Round(2),
		TodayMargin:        today.revenue.Sub(today.cost).Round(2),
		MonthlySales:       month.revenue.Round(2),
		MonthlyMargin:      month.revenue.Sub(month.cost).Round(2),
		TopProducts:        top.products,
		InventoryValuation: val.total.Round(2),
		ProductsByState:    states.counts,
	}, nil
}
