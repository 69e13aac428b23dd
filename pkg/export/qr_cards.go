package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCard is one printable card: the encoded identifier plus display labels.
type QRCard struct {
	QRID     string
	Name     string
	Subtitle string
}

// Card geometry for a 3x3 grid on a Letter page, in inches.
const (
	pageWidth    = 8.5
	pageHeight   = 11.0
	cardWidth    = 2.25
	cardHeight   = 3.25
	qrSize       = 1.9
	cardsPerRow  = 3
	cardsPerPage = 9
)

// QRCardRenderer lays attendance QR cards out on Letter pages.
type QRCardRenderer struct{}

// NewQRCardRenderer constructs a renderer.
func NewQRCardRenderer() *QRCardRenderer {
	return &QRCardRenderer{}
}

// Render produces the printable PDF for the given cards, nine per page.
func (r *QRCardRenderer) Render(cards []QRCard) ([]byte, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("qr cards: nothing to render")
	}

	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	hMargin := (pageWidth - cardsPerRow*cardWidth) / 2
	vMargin := (pageHeight - cardsPerRow*cardHeight) / 2

	for i, card := range cards {
		pageIndex := i % cardsPerPage
		if pageIndex == 0 {
			pdf.AddPage()
		}

		row := pageIndex / cardsPerRow
		col := pageIndex % cardsPerRow

		x := hMargin + float64(col)*cardWidth
		y := vMargin + float64(row)*cardHeight

		if err := r.drawCard(pdf, tr, card, i, x, y); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render qr cards: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *QRCardRenderer) drawCard(pdf *gofpdf.Fpdf, tr func(string) string, card QRCard, index int, x, y float64) error {
	pdf.RoundedRect(x, y, cardWidth, cardHeight, 0.12, "1234", "D")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y+0.28)
	pdf.CellFormat(cardWidth, 0.2, tr(card.Name), "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(x, y+0.48)
	pdf.CellFormat(cardWidth, 0.15, tr(card.Subtitle), "", 0, "C", false, 0, "")

	png, err := qrcode.Encode(card.QRID, qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("encode qr %q: %w", card.QRID, err)
	}

	imageName := fmt.Sprintf("qr-%d", index)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))

	qrX := x + (cardWidth-qrSize)/2
	qrY := y + (cardHeight-qrSize)/2 + 0.05
	pdf.ImageOptions(imageName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(x, qrY+qrSize+0.05)
	pdf.CellFormat(cardWidth, 0.15, card.QRID, "", 0, "C", false, 0, "")

	return pdf.Error()
}
