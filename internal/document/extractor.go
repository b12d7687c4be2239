// Package document extracts plain text from application materials. Parsing is
// best-effort: a broken container surfaces ErrCorruptDocument so the caller
// can degrade to empty text instead of failing the submission flow.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("corrupt document")
)

// MaxResumeSize caps uploads at 5MB, matching the submission form contract.
const MaxResumeSize = 5 << 20

var allowedResumeExts = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// AllowedResume reports whether the filename carries an accepted resume
// extension. Rejection happens at the validation boundary; the extraction
// engine is never invoked for other file types.
func AllowedResume(filename string) bool {
	_, ok := allowedResumeExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ExtractText pulls plain text from the document. PDF pages are concatenated
// in page order, DOCX paragraphs in document order, plain text is returned
// as-is. Unknown extensions fail with ErrUnsupportedFormat, unreadable
// containers with ErrCorruptDocument.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case "", ".txt":
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx", ".doc":
		// Legacy .doc has no dedicated parser here; the docx reader handles
		// the common case of a renamed OOXML file and everything else
		// degrades to ErrCorruptDocument.
		return extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs; bound the damage to a
	// recoverable error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: pdf parse panic: %v", ErrCorruptDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDocx(data []byte) (string, error) {
	d, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer d.Close()

	return docxPlainText(d.Editable().GetContent()), nil
}

// docxPlainText flattens the word/document.xml body to text, one line per
// paragraph in document order.
func docxPlainText(content string) string {
	dec := xml.NewDecoder(strings.NewReader(content))

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
