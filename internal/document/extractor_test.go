package document

import (
	"errors"
	"testing"
)

func TestExtractText_PlainPassthrough(t *testing.T) {
	body := "Senior engineer with Go and PostgreSQL experience."

	got, err := ExtractText("cover_letter.txt", []byte(body))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != body {
		t.Fatalf("got %q", got)
	}

	// No extension behaves like plain text.
	got, err = ExtractText("notes", []byte(body))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != body {
		t.Fatalf("got %q", got)
	}
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	_, err := ExtractText("resume.odt", []byte("whatever"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = ExtractText("avatar.png", []byte{0x89, 0x50, 0x4e, 0x47})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("this is not a pdf"))
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}

	_, err = ExtractText("resume.pdf", nil)
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument for empty input, got %v", err)
	}
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("not a zip archive"))
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}

	_, err = ExtractText("resume.doc", []byte{0x00, 0x01, 0x02})
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestAllowedResume(t *testing.T) {
	allowed := []string{"cv.pdf", "cv.PDF", "cv.doc", "cv.docx", "My Resume.DocX"}
	for _, f := range allowed {
		if !AllowedResume(f) {
			t.Fatalf("AllowedResume(%q) = false, want true", f)
		}
	}

	rejected := []string{"cv.txt", "cv.odt", "cv", "cv.pdf.exe", "resume.png"}
	for _, f := range rejected {
		if AllowedResume(f) {
			t.Fatalf("AllowedResume(%q) = true, want false", f)
		}
	}
}

func TestDocxPlainText(t *testing.T) {
	content := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Python and Django.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Docker </w:t></w:r><w:r><w:t>experience.</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := docxPlainText(content)
	want := "Python and Django.\nDocker experience."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
