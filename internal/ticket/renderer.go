package ticket

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/signintech/gopdf"
)

// RenderError is a failed ticket rasterization. The caller's state is
// unchanged: no partial file is left behind.
type RenderError struct {
	cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("ticket render failed: %v", e.cause)
}

func (e *RenderError) Unwrap() error {
	return e.cause
}

// Renderer produces the downloadable ticket file: layout, attendee and
// event fields, and the QR code embedded as an image.
type Renderer struct {
	FontPath string
}

func NewRenderer() *Renderer {
	return &Renderer{FontPath: "./fonts/DejaVuSans.ttf"}
}

// Render builds the ticket PDF for a payload.
func (r *Renderer) Render(payload Payload) ([]byte, error) {
	qrCode, err := QR(payload)
	if err != nil {
		return nil, &RenderError{cause: err}
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont("dejavu", r.FontPath); err != nil {
		return nil, &RenderError{cause: fmt.Errorf("failed to load font: %w", err)}
	}
	if err := pdf.SetFont("dejavu", "", 14); err != nil {
		return nil, &RenderError{cause: fmt.Errorf("failed to set font: %w", err)}
	}

	addHeader(pdf, payload)

	pdf.SetY(70)
	addTicketInfo(pdf, payload)

	pdf.SetY(pdf.GetY() + 20)
	if err := addQRCode(pdf, qrCode); err != nil {
		return nil, &RenderError{cause: err}
	}

	pdf.SetY(760)
	addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, &RenderError{cause: fmt.Errorf("failed to write PDF: %w", err)}
	}

	return buf.Bytes(), nil
}

// WriteFile renders the ticket to path. On any failure the destination
// file is not created.
func (r *Renderer) WriteFile(payload Payload, path string) error {
	data, err := r.Render(payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &RenderError{cause: err}
	}
	return nil
}

func addHeader(pdf *gopdf.GoPdf, payload Payload) {
	pdf.SetX(40)
	pdf.SetY(30)
	pdf.Cell(nil, "EVENT TICKET - "+payload.EventTitle)
}

func addTicketInfo(pdf *gopdf.GoPdf, payload Payload) {
	timeLabel := payload.Time
	if timeLabel == "" {
		timeLabel = "Time TBA"
	}

	info := []struct {
		Label string
		Value string
	}{
		{"Ticket ID", payload.TicketID},
		{"Booking ID", payload.BookingID},
		{"Attendee", payload.Name},
		{"Email", payload.Email},
		{"Phone", payload.PhoneNumber},
		{"Venue", payload.Venue},
		{"Date", payload.Date},
		{"Time", timeLabel},
		{"Amount Paid", fmt.Sprintf("%d", payload.Amount)},
		{"Generated", payload.GeneratedAt},
	}

	for _, item := range info {
		pdf.SetX(40)
		pdf.Cell(nil, item.Label+": "+item.Value)
		pdf.Br(20)
	}
}

func addQRCode(pdf *gopdf.GoPdf, qrCode []byte) error {
	img, err := png.Decode(bytes.NewReader(qrCode))
	if err != nil {
		return fmt.Errorf("failed to decode QR image: %w", err)
	}

	rect := &gopdf.Rect{W: 120, H: 120}
	if err := pdf.ImageFrom(img, 40, pdf.GetY(), rect); err != nil {
		return fmt.Errorf("failed to draw QR code: %w", err)
	}
	return nil
}

func addFooter(pdf *gopdf.GoPdf) {
	pdf.SetX(40)
	pdf.Cell(nil, "Present this ticket at the venue entrance.")
}
