package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// VoucherQR encode un code de réduction en QR PNG (256px)
func VoucherQR(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, 256)
}

// VoucherQRDataURI renvoie le QR prêt à mettre dans un <img src="...">
func VoucherQRDataURI(code string) (string, error) {
	png, err := VoucherQR(code)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
