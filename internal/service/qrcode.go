package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// PaymentQRIssuer derives a scannable payment reference from an order number.
// The payload is a PNG encoding of <base>/payment/<orderNumber>; aside from
// the configured base URL it is a pure function of its input.
type PaymentQRIssuer struct {
	BaseURL string
}

func (g PaymentQRIssuer) PaymentURL(orderNumber string) string {
	return fmt.Sprintf("%s/payment/%s", strings.TrimRight(g.BaseURL, "/"), url.PathEscape(orderNumber))
}

func (g PaymentQRIssuer) Issue(orderNumber string) ([]byte, error) {
	return qrcode.Encode(g.PaymentURL(orderNumber), qrcode.Medium, 256)
}

// OrderNumberFromPaymentURL recovers the order number embedded in a payment
// URL. Inverse of PaymentURL.
func OrderNumberFromPaymentURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	const prefix = "/payment/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return "", fmt.Errorf("not a payment URL: %s", raw)
	}
	number, err := url.PathUnescape(strings.TrimPrefix(parsed.Path, prefix))
	if err != nil {
		return "", err
	}
	if number == "" {
		return "", fmt.Errorf("payment URL carries no order number: %s", raw)
	}
	return number, nil
}
