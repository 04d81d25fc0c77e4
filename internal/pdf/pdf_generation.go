package pdf

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"cadastro/internal/models"
)

// Generator renders the client list export (handy to mock in tests).
type Generator interface {
	Write(w io.Writer, clients []models.Client, generatedAt time.Time) error
}

// ClientListGenerator draws the client table on A4 pages. With a readable
// TTF at FontPath the text is embedded as UTF-8, otherwise Helvetica is used
// with cp1252 translation.
type ClientListGenerator struct {
	FontPath string
	fontName string
}

type column struct {
	title string
	width float64
}

var columns = []column{
	{"ID", 30},
	{"Nome", 35},
	{"E-mail", 42},
	{"Telefone", 28},
	{"Endereço", 47},
}

const (
	margin     = 14.0
	cellPad    = 1.5
	lineHeight = 4.5
)

var headerFill = [3]int{25, 118, 210}

func NewClientListGenerator(fontPath string) *ClientListGenerator {
	return &ClientListGenerator{FontPath: fontPath, fontName: "DejaVu"}
}

// Filename is the attachment name for an export made at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("clientes_%s.pdf", t.Format("02-01-2006"))
}

func (g *ClientListGenerator) Write(w io.Writer, clients []models.Client, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Lista de Clientes", true)
	pdf.SetMargins(margin, 15, margin)
	pdf.SetAutoPageBreak(true, 15)

	d := &document{pdf: pdf}
	g.setupFont(d)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(d.font, "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, d.tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// ===== Title
	pdf.SetFont(d.font, "B", 18)
	pdf.CellFormat(0, 10, d.tr("Lista de Clientes"), "", 1, "L", false, 0, "")
	pdf.SetFont(d.font, "", 10)
	pdf.CellFormat(0, 6, d.tr("Gerado em: "+generatedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ===== Table
	d.header()
	for _, c := range clients {
		d.row([]string{c.ID.String(), c.Name, c.Email, c.Phone, c.Address})
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// setupFont falls back to the core font when the TTF is missing.
func (g *ClientListGenerator) setupFont(d *document) {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			d.pdf.AddUTF8Font(g.fontName, "", g.FontPath)
			d.pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
			d.font = g.fontName
			d.tr = func(s string) string { return s }
			return
		}
	}
	d.font = "Helvetica"
	d.tr = d.pdf.UnicodeTranslatorFromDescriptor("")
}

type document struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (d *document) header() {
	pdf := d.pdf
	pdf.SetFont(d.font, "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, d.tr(col.title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// row draws one record, wrapping long values inside their column. A row never
// splits across pages; the header is repeated on every new page.
func (d *document) row(values []string) {
	pdf := d.pdf
	pdf.SetFont(d.font, "", 9)

	cells := make([][]string, len(columns))
	lines := 1
	for i, col := range columns {
		cells[i] = d.wrap(values[i], col.width-2*cellPad)
		if len(cells[i]) > lines {
			lines = len(cells[i])
		}
	}
	h := float64(lines)*lineHeight + 2*cellPad

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
		d.header()
		pdf.SetFont(d.font, "", 9)
	}

	x, y := margin, pdf.GetY()
	for i, col := range columns {
		pdf.Rect(x, y, col.width, h, "D")
		for j, line := range cells[i] {
			pdf.SetXY(x+cellPad, y+cellPad+float64(j)*lineHeight)
			pdf.CellFormat(col.width-2*cellPad, lineHeight, line, "", 0, "L", false, 0, "")
		}
		x += col.width
	}
	pdf.SetXY(margin, y+h)
}

// wrap splits s into lines no wider than width, preferring word boundaries.
func (d *document) wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if d.width(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for d.width(word) > width {
				cut := d.fit(word, width)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		lines = append(lines, line)
	}
	for i := range lines {
		lines[i] = d.tr(lines[i])
	}
	return lines
}

// fit returns the byte length of the longest prefix of s that fits, at least
// one rune.
func (d *document) fit(s string, width float64) int {
	cut := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if d.width(s[:next]) > width {
			break
		}
		cut = next
	}
	if cut == 0 {
		_, cut = utf8.DecodeRuneInString(s)
	}
	return cut
}

func (d *document) width(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}
