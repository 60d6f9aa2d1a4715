package ledger

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// ErrReceiptInvalid indicates a receipt image that is not valid base64.
var ErrReceiptInvalid = errors.New("ledger: receipt image is not valid base64")

// ErrReceiptTooLarge indicates a decoded receipt over the size limit.
var ErrReceiptTooLarge = errors.New("ledger: receipt image exceeds size limit")

// ErrReceiptUnsupported indicates a receipt that is not a PNG or JPEG.
var ErrReceiptUnsupported = errors.New("ledger: receipt image must be PNG or JPEG")

// NormalizeReceipt validates a base64-encoded receipt image and returns the
// canonical encoding stored on the expense row. Data-URI prefixes are
// stripped; the decoded bytes must sniff as PNG or JPEG and stay under
// maxBytes. An empty input stays empty.
func NormalizeReceipt(encoded string, maxBytes int64) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", nil
	}
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrReceiptInvalid
	}
	if maxBytes > 0 && int64(len(decoded)) > maxBytes {
		return "", ErrReceiptTooLarge
	}

	switch http.DetectContentType(decoded) {
	case "image/png", "image/jpeg":
	default:
		return "", ErrReceiptUnsupported
	}

	return base64.StdEncoding.EncodeToString(decoded), nil
}
