package brief

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDF artifact constants.
const (
	PDFFilename    = "foxytrailz23-growth-brief.pdf"
	PDFContentType = "application/pdf"
)

// WritePDF lays the brief lines out on A4 pages: the first line as the
// title, section headings in bold, everything else as wrapped body text.
func WritePDF(w io.Writer, lines []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetAuthor("FoxyTrailz23", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i, line := range lines {
		switch {
		case i == 0:
			pdf.SetFont("Helvetica", "B", 18)
			pdf.CellFormat(0, 10, tr(line), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		case line == "":
			pdf.Ln(4)
		case isSection(line):
			pdf.SetFont("Helvetica", "B", 13)
			pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("brief: layout pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("brief: write pdf: %w", err)
	}
	return nil
}

// ExportPDF builds the brief as a PDF artifact, resolving the config the
// same way Export does.
func (e *Exporter) ExportPDF(ctx context.Context) (Artifact, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, e.writer.Lines(e.Config(ctx))); err != nil {
		return Artifact{}, err
	}
	return Artifact{Filename: PDFFilename, ContentType: PDFContentType, Body: buf.Bytes()}, nil
}

func isSection(line string) bool {
	return line == SectionStrategy || line == SectionKPIs
}
