// Package clock provee la fuente de "hora actual en la zona de negocio".
// El clasificador, el agregador y el barrido de vencimientos dependen de un
// Clock inyectado en lugar de time.Now() para que los tests puedan congelar
// el tiempo y para que toda comparación de vencimiento use una sola zona.
package clock

import (
	"fmt"
	"time"
)

// Clock devuelve la hora actual en la zona horaria configurada del negocio.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// System es el Clock real, anclado a una zona fija (ej. America/Lima).
type System struct {
	loc *time.Location
}

// NewSystem construye el Clock del sistema para la zona indicada.
func NewSystem(timezone string) (*System, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: zona horaria %q: %w", timezone, err)
	}
	return &System{loc: loc}, nil
}

// Now devuelve la hora actual en la zona de negocio.
func (s *System) Now() time.Time { return time.Now().In(s.loc) }

// Location devuelve la zona de negocio.
func (s *System) Location() *time.Location { return s.loc }

// Fixed es un Clock congelado para tests.
type Fixed struct {
	T time.Time
}

// NewFixed construye un Clock congelado en t.
func NewFixed(t time.Time) *Fixed { return &Fixed{T: t} }

// Now devuelve siempre el instante congelado.
func (f *Fixed) Now() time.Time { return f.T }

// Location devuelve la zona del instante congelado.
func (f *Fixed) Location() *time.Location { return f.T.Location() }
