package handlers

import (
	"fmt"
	"os"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// generateQRCode encodes url as a PNG QR code
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// The standard writer only targets files.
	tmp, err := os.CreateTemp("", "doordeck-qr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpFile := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpFile)

	w, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	return data, nil
}
