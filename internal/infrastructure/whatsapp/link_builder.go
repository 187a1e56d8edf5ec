// Package whatsapp arma enlaces wa.me para enviar el comprobante de venta al
// cliente. No llama a la API de WhatsApp: el enlace se abre desde el frontend
// del punto de venta.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/farmaviva/botica-api/internal/application/sales"
)

var _ sales.ReceiptLinkBuilder = (*LinkBuilder)(nil)

// LinkBuilder construye enlaces wa.me con el texto del ticket.
type LinkBuilder struct {
	countryCode string // prefijo por defecto si el número no trae código de país
}

// NewLinkBuilder construye el builder con el prefijo de país configurado (ej. "51").
func NewLinkBuilder(countryCode string) *LinkBuilder {
	return &LinkBuilder{countryCode: countryCode}
}

// BuildReceiptLink normaliza el teléfono y devuelve la URL wa.me con el texto
// ya codificado.
func (b *LinkBuilder) BuildReceiptLink(phone, text string) (string, error) {
	normalized, err := b.normalize(phone)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + normalized,
		RawQuery: url.Values{"text": {text}}.Encode(),
	}
	return u.String(), nil
}

// normalize deja solo dígitos y antepone el código de país cuando falta.
// Un número peruano local tiene 9 dígitos; si ya viene con prefijo (más de 9
// dígitos o con +) se respeta tal cual.
func (b *LinkBuilder) normalize(phone string) (string, error) {
	hasPlus := strings.HasPrefix(strings.TrimSpace(phone), "+")
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return "", fmt.Errorf("whatsapp: teléfono vacío")
	}
	if hasPlus || len(d) > 9 {
		return d, nil
	}
	return b.countryCode + d, nil
}
