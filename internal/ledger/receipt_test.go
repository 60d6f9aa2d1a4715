package ledger

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

var jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func TestNormalizeReceiptEmpty(t *testing.T) {
	out, err := NormalizeReceipt("", 1024)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestNormalizeReceiptPNG(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	out, err := NormalizeReceipt(encoded, 1024)
	require.NoError(t, err)
	require.Equal(t, encoded, out)
}

func TestNormalizeReceiptDataURI(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(jpegBytes)

	out, err := NormalizeReceipt("data:image/jpeg;base64,"+encoded, 1024)
	require.NoError(t, err)
	require.Equal(t, encoded, out)
}

func TestNormalizeReceiptBadBase64(t *testing.T) {
	_, err := NormalizeReceipt("not-base64!!!", 1024)
	require.ErrorIs(t, err, ErrReceiptInvalid)
}

func TestNormalizeReceiptTooLarge(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	_, err := NormalizeReceipt(encoded, 4)
	require.ErrorIs(t, err, ErrReceiptTooLarge)
}

func TestNormalizeReceiptUnsupportedType(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 not an image"))

	_, err := NormalizeReceipt(encoded, 1024)
	require.ErrorIs(t, err, ErrReceiptUnsupported)
}
