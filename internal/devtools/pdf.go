package devtools

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bobmcallan/abacus/internal/calc"
)

// maxPDFText caps the extracted text analysed per document.
const maxPDFText = 2_000_000

// PDFWordCountResult is the word count of a PDF's extracted text.
type PDFWordCountResult struct {
	Pages         int  `json:"pages"`
	PagesWithText int  `json:"pages_with_text"`
	Truncated     bool `json:"truncated"`
	*WordCountResult
}

// PDFWordCount extracts the plain text of every page and counts it.
func PDFWordCount(data []byte, top int) (res *PDFWordCountResult, err error) {
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, calc.Invalid("file", "is not a readable PDF")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, calc.Invalid("file", "is not a readable PDF: %v", err)
	}
	out := &PDFWordCountResult{Pages: r.NumPage()}

	var sb strings.Builder
	for i := 1; i <= out.Pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page, i)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			out.PagesWithText++
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
		if sb.Len() > maxPDFText {
			out.Truncated = true
			break
		}
	}
	out.WordCountResult = WordCount(sb.String(), top)
	return out, nil
}

// plainTexter is the text extraction side of a pdf.Page.
type plainTexter interface {
	GetPlainText(fonts map[string]*pdf.Font) (string, error)
}

// pageText extracts one page. A page the parser cannot read makes the whole
// file unreadable input.
func pageText(page plainTexter, n int) (string, error) {
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", calc.Invalid("file", "is not a readable PDF: page %d: %v", n, err)
	}
	return text, nil
}
