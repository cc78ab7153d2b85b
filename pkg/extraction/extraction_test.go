package extraction

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/pkg/apperrors"
)

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract([]byte("binary"), "application/octet-stream", "file.bin")
	require.Error(t, err)

	var extractionErr *apperrors.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "application/octet-stream", extractionErr.ContentType)
}

func TestExtract_DetectsByExtensionWhenContentTypeIsGeneric(t *testing.T) {
	doc, err := Extract([]byte("hello world"), "application/octet-stream", "notes.TXT")
	require.NoError(t, err)
	assert.Equal(t, "txt", doc.DetectedType)
}

func TestExtractTXT_Paging(t *testing.T) {
	// 4500 chars at 2000 chars/page -> 3 pages.
	text := strings.Repeat("a", 4500)
	pages := extractTXTPages([]byte(text), 2000)

	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2000, len(pages[0].Text))
	assert.Equal(t, 3, pages[2].Number)
	assert.Equal(t, 500, len(pages[2].Text))
}

func TestExtractTXT_Normalization(t *testing.T) {
	raw := "first\t\tline\r\n\n\n\n\nsecond   line\r"
	pages := extractTXTPages([]byte(raw), 2000)

	require.Len(t, pages, 1)
	assert.Equal(t, "first line\n\nsecond line", pages[0].Text)
}

func TestExtractTXT_Empty(t *testing.T) {
	assert.Empty(t, extractTXTPages([]byte("   \n\n  "), 2000))
}

func TestExtractCSV_HeaderRepeatsPerPage(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,age\n")
	for i := 0; i < 120; i++ {
		sb.WriteString("alice,30\n")
	}

	pages := extractCSVPages([]byte(sb.String()), 50)

	// 120 data rows at 50 rows/page -> 3 pages.
	require.Len(t, pages, 3)
	for _, p := range pages {
		lines := strings.Split(p.Text, "\n")
		assert.Equal(t, "name | age", lines[0])
		assert.Equal(t, strings.Repeat("-", 40), lines[1])
	}
	// Last page holds the remaining 20 rows plus header and separator.
	assert.Len(t, strings.Split(pages[2].Text, "\n"), 22)
}

func TestExtractCSV_ShortRowsArePadded(t *testing.T) {
	pages := extractCSVPages([]byte("a,b,c\n1\n"), 50)

	require.Len(t, pages, 1)
	lines := strings.Split(pages[0].Text, "\n")
	assert.Equal(t, "1 |  | ", lines[2])
}

func TestExtractCSV_Empty(t *testing.T) {
	assert.Empty(t, extractCSVPages([]byte(""), 50))
	// Header-only files have no data rows and produce no pages.
	assert.Empty(t, extractCSVPages([]byte("a,b,c\n"), 50))
}

func docxArchive(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractDOCX_Paragraphs(t *testing.T) {
	xmlDoc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
    <w:p></w:p>
  </w:body>
</w:document>`

	pages, err := extractDOCXPages(docxArchive(t, xmlDoc))
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", pages[0].Text)
}

func TestExtractDOCX_WordCountPaging(t *testing.T) {
	para := strings.Repeat("word ", 500)
	xmlDoc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>` + para + `</w:t></w:r></w:p>
    <w:p><w:r><w:t>` + para + `</w:t></w:r></w:p>
    <w:p><w:r><w:t>tail</w:t></w:r></w:p>
  </w:body>
</w:document>`

	pages, err := extractDOCXPages(docxArchive(t, xmlDoc))
	require.NoError(t, err)

	// Two 500-word paragraphs cross the 900-word bound together; the tail
	// flushes as its own page.
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "tail", pages[1].Text)
}

func TestExtractDOCX_NotAnArchive(t *testing.T) {
	_, err := extractDOCXPages([]byte("plain text, not a zip"))
	require.Error(t, err)
}

func pptxArchive(t *testing.T, slideXMLs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, slideXML := range slideXMLs {
		f, err := w.Create("ppt/slides/slide" + string(rune('1'+i)) + ".xml")
		require.NoError(t, err)
		_, err = f.Write([]byte(slideXML))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractPPTX_OnePagePerSlide(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody>
    <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
  </p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	}

	pages, err := extractPPTXPages(pptxArchive(t, slide("slide one"), slide("slide two")))
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, "slide one", pages[0].Text)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, "slide two", pages[1].Text)
}
