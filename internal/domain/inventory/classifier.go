// Package inventory contiene los servicios de dominio puros del núcleo de
// inventario por lotes: planificación de asignación FIFO-por-vencimiento,
// agregación de stock y clasificación de estado. Ninguna función hace I/O.
package inventory

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// DefaultExpiryHorizonDays es la ventana de "por vencer" si no se configura otra.
const DefaultExpiryHorizonDays = 30

// StartOfDay trunca un instante al inicio del día en su propia zona horaria.
// Toda comparación de vencimiento del sistema usa granularidad de día: un
// lote que vence hoy todavía no está vencido; lo está desde mañana a las 00:00.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil devuelve los días calendario entre now y la fecha dada,
// comparando inicios de día en la zona de now. Negativo si ya pasó.
// El redondeo absorbe los días de 23/25 horas en zonas con horario de verano.
func DaysUntil(now, t time.Time) int {
	today := StartOfDay(now)
	target := StartOfDay(t.In(now.Location()))
	return int(target.Sub(today).Round(24*time.Hour).Hours() / 24)
}

// Classify determina el estado de un producto a partir de su stock agregado,
// su umbral mínimo y el vencimiento más próximo de sus lotes activos.
//
// Precedencia (primer match gana):
//  1. VENCIDO    — nearestExpiry en el pasado (día calendario).
//  2. AGOTADO    — stock <= 0.
//  3. POR_VENCER — nearestExpiry dentro de (0, horizonDays].
//  4. STOCK_BAJO — 0 < stock <= minStock.
//  5. NORMAL.
//
// Vencimiento y agotamiento dominan sobre stock bajo; "por vencer" se evalúa
// antes que "stock bajo" para que un producto bien surtido pero próximo a
// vencer se marque para gestión de merma en lugar de reportarse sano.
func Classify(stock, minStock int, nearestExpiry *time.Time, now time.Time, horizonDays int) string {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}
	if nearestExpiry != nil {
		days := DaysUntil(now, *nearestExpiry)
		if days < 0 {
			return entity.StateExpired
		}
		if stock <= 0 {
			return entity.StateOutOfStock
		}
		if days > 0 && days <= horizonDays {
			return entity.StateExpiring
		}
	} else if stock <= 0 {
		return entity.StateOutOfStock
	}
	if stock > 0 && stock <= minStock {
		return entity.StateLowStock
	}
	return entity.StateNormal
}
