package ticket

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QR encodes the payload as a 256px PNG QR code.
func QR(payload Payload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return qrcode.Encode(string(data), qrcode.Medium, 256)
}
