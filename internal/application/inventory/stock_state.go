package inventory

import (
	"fmt"
	"time"

	"github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// RefreshProductState recalcula el agregado de stock de un producto desde sus
// lotes y reescribe los campos denormalizados (stock, estado, vencimiento más
// próximo). Debe llamarse con repositorios atados a la misma transacción que
// la mutación que lo dispara: agregar y clasificar son un solo paso atómico
// con lo que los gatilló.
func RefreshProductState(
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	productID string,
	now time.Time,
	horizonDays int,
) (inventory.StockSummary, error) {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return inventory.StockSummary{}, err
	}
	if product == nil {
		return inventory.StockSummary{}, fmt.Errorf("refresh state: producto %s no existe", productID)
	}
	lots, err := lotRepo.ListByProduct(productID, "")
	if err != nil {
		return inventory.StockSummary{}, err
	}
	summary := inventory.Summarize(lots, now, horizonDays)
	state := inventory.Classify(summary.Stock, product.MinStock, summary.NearestExpiry, now, horizonDays)
	if err := productRepo.UpdateStockState(productID, summary.Stock, state, summary.NearestExpiry); err != nil {
		return inventory.StockSummary{}, err
	}
	return summary, nil
}
