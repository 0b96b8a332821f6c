package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

type rgb struct{ r, g, b int }

var (
	colorCream    = rgb{253, 249, 240}
	colorWine     = rgb{114, 28, 44}
	colorGold     = rgb{176, 141, 87}
	colorInk      = rgb{40, 33, 30}
	colorMuted    = rgb{110, 100, 95}
	colorHairline = rgb{200, 190, 175}
)

// canvas wraps one fpdf document and exposes drawing in bottom-up coordinates,
// the convention LayoutWrapped works in.
type canvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	width     float64
	height    float64
	images    int
}

func newCanvas(orientation, size string, compress bool) *canvas {
	pdf := fpdf.New(orientation, "pt", size, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCreator("caviste_server", false)

	width, height := pdf.GetPageSize()
	return &canvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		width:     width,
		height:    height,
	}
}

func (c *canvas) setMeta(title string, created time.Time) {
	c.pdf.SetTitle(title, true)
	c.pdf.SetCreationDate(created)
}

func (c *canvas) addPage() {
	c.pdf.AddPage()
}

func style(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// metrics returns the width measurer for the regular or bold face.
func (c *canvas) metrics(bold bool) FontMetrics {
	return canvasMetrics{c: c, style: style(bold)}
}

type canvasMetrics struct {
	c     *canvas
	style string
}

func (m canvasMetrics) TextWidth(text string, size float64) float64 {
	m.c.pdf.SetFont(fontFamily, m.style, size)
	return m.c.pdf.GetStringWidth(m.c.translate(text))
}

func (c *canvas) textWidth(text, fontStyle string, size float64) float64 {
	return canvasMetrics{c: c, style: fontStyle}.TextWidth(text, size)
}

// text draws with its baseline at y measured from the bottom edge.
func (c *canvas) text(s string, x, y float64, fontStyle string, size float64, color rgb) {
	c.pdf.SetFont(fontFamily, fontStyle, size)
	c.pdf.SetTextColor(color.r, color.g, color.b)
	c.pdf.Text(x, c.height-y, c.translate(s))
}

// centered draws s horizontally centered on the page.
func (c *canvas) centered(s string, y float64, fontStyle string, size float64, color rgb) {
	w := c.textWidth(s, fontStyle, size)
	c.text(s, (c.width-w)/2, y, fontStyle, size, color)
}

func (c *canvas) drawOps(ops []DrawOp, color rgb) {
	for _, op := range ops {
		c.text(op.Text, op.X, op.Y, style(op.Bold), op.Size, color)
	}
}

func (c *canvas) fillRect(x, y, w, h float64, color rgb) {
	c.pdf.SetFillColor(color.r, color.g, color.b)
	c.pdf.Rect(x, c.height-y-h, w, h, "F")
}

func (c *canvas) strokeRect(x, y, w, h, lineWidth float64, color rgb) {
	c.pdf.SetDrawColor(color.r, color.g, color.b)
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Rect(x, c.height-y-h, w, h, "D")
}

func (c *canvas) line(x1, y1, x2, y2, lineWidth float64, color rgb) {
	c.pdf.SetDrawColor(color.r, color.g, color.b)
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

// image places a decoded asset with its lower-left corner at (x, y).
func (c *canvas) image(asset *Asset, x, y, w, h float64) {
	c.images++
	name := fmt.Sprintf("img%d", c.images)
	opts := fpdf.ImageOptions{ImageType: asset.ImageType, ReadDpi: false}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(asset.Data))
	c.pdf.ImageOptions(name, x, c.height-y-h, w, h, false, opts, 0, "")
}

// output serializes the document; a failure of any earlier primitive surfaces here.
func (c *canvas) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *canvas) pageCount() int {
	return c.pdf.PageCount()
}
