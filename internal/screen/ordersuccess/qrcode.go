package ordersuccess

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultLinkBase is the deep link prefix the app registers for order tracking.
const DefaultLinkBase = "foodhub://orders"

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// DefaultQRGenerator encodes the tracking link of an order as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Link(orderID string) string {
	base := g.BaseURL
	if base == "" {
		base = DefaultLinkBase
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(orderID)
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(g.Link(orderID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode tracking qr for order %s: %w", orderID, err)
	}
	return png, nil
}
