package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/inventory"
)

// now fijo para todos los casos: mediodía en Lima.
var lima = time.FixedZone("America/Lima", -5*3600)
var nowClassify = time.Date(2026, 3, 15, 12, 0, 0, 0, lima)

func daysFromNow(d int) *time.Time {
	t := nowClassify.AddDate(0, 0, d)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify — precedencia de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Precedencia(t *testing.T) {
	cases := []struct {
		name          string
		stock         int
		minStock      int
		nearestExpiry *time.Time
		want          string
	}{
		{"vencido domina aunque haya stock de sobra", 100, 5, daysFromNow(-1), entity.StateExpired},
		{"vencido domina sobre agotado", 0, 5, daysFromNow(-10), entity.StateExpired},
		{"agotado sin vencimiento", 0, 5, nil, entity.StateOutOfStock},
		{"agotado con vencimiento futuro", 0, 5, daysFromNow(10), entity.StateOutOfStock},
		{"por vencer domina sobre stock bajo", 3, 5, daysFromNow(10), entity.StateExpiring},
		{"por vencer con stock sano", 100, 5, daysFromNow(30), entity.StateExpiring},
		{"stock bajo en el umbral exacto", 5, 5, nil, entity.StateLowStock},
		{"stock bajo con vencimiento lejano", 3, 5, daysFromNow(60), entity.StateLowStock},
		{"normal sin vencimiento", 50, 5, nil, entity.StateNormal},
		{"normal con vencimiento fuera del horizonte", 50, 5, daysFromNow(31), entity.StateNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.Classify(tc.stock, tc.minStock, tc.nearestExpiry, nowClassify, 30)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Granularidad de día: un lote que vence hoy todavía se puede vender; la
// ventana "por vencer" es (0, horizonte] en días calendario.
func TestClassify_VenceHoy_NoEsVencidoNiPorVencer(t *testing.T) {
	endOfToday := time.Date(2026, 3, 15, 23, 59, 0, 0, lima)
	got := inventory.Classify(50, 5, &endOfToday, nowClassify, 30)
	assert.Equal(t, entity.StateNormal, got)

	startOfToday := time.Date(2026, 3, 15, 0, 1, 0, 0, lima)
	got = inventory.Classify(50, 5, &startOfToday, nowClassify, 30)
	assert.Equal(t, entity.StateNormal, got, "la hora del día no cambia la comparación")
}

func TestClassify_HorizonteNoPositivo_UsaElDefecto(t *testing.T) {
	got := inventory.Classify(50, 5, daysFromNow(15), nowClassify, 0)
	assert.Equal(t, entity.StateExpiring, got)

	got = inventory.Classify(50, 5, daysFromNow(45), nowClassify, -3)
	assert.Equal(t, entity.StateNormal, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysUntil / StartOfDay
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntil_ComparaIniciosDeDia(t *testing.T) {
	assert.Equal(t, 0, inventory.DaysUntil(nowClassify, nowClassify.Add(3*time.Hour)))
	assert.Equal(t, 1, inventory.DaysUntil(nowClassify, nowClassify.AddDate(0, 0, 1)))
	assert.Equal(t, -1, inventory.DaysUntil(nowClassify, nowClassify.AddDate(0, 0, -1)))

	// Vence mañana a las 00:00 en punto: ya cuenta como 1 día.
	tomorrow := time.Date(2026, 3, 16, 0, 0, 0, 0, lima)
	assert.Equal(t, 1, inventory.DaysUntil(nowClassify, tomorrow))
}

// La zona de negocio es configurable; en zonas con horario de verano el día
// del cambio dura 23 o 25 horas y el conteo en días calendario no debe
// moverse por eso.
func TestDaysUntil_CambioDeHorarioDeVerano(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08: salto de hora en New York; ese día dura 23 horas.
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, ny)
	assert.Equal(t, 1, inventory.DaysUntil(now, time.Date(2026, 3, 8, 12, 0, 0, 0, ny)))
	assert.Equal(t, 2, inventory.DaysUntil(now, time.Date(2026, 3, 9, 12, 0, 0, 0, ny)))

	// 2026-11-01: retorno de hora; ese día dura 25 horas.
	now = time.Date(2026, 10, 31, 12, 0, 0, 0, ny)
	assert.Equal(t, 2, inventory.DaysUntil(now, time.Date(2026, 11, 2, 12, 0, 0, 0, ny)))
}

func TestStartOfDay(t *testing.T) {
	got := inventory.StartOfDay(nowClassify)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, lima), got)
}
