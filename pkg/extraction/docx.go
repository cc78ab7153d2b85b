package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"docuchat-be/pkg/chunker"
)

const docxWordsPerPage = 900

// extractDOCXPages pulls paragraph text out of word/document.xml and splits
// it into word-count based pseudo-pages to stay compatible with the
// PDF-style page abstraction. Table cell text lives in nested paragraphs and
// comes along for free.
func extractDOCXPages(fileBytes []byte) ([]chunker.Page, error) {
	blocks, err := officeXMLParagraphs(fileBytes, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var pages []chunker.Page
	var buffer []string
	wordCount := 0
	pageNum := 1

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		pages = append(pages, chunker.Page{
			Number: pageNum,
			Text:   normalizeText(strings.Join(buffer, "\n")),
		})
		pageNum++
		buffer = nil
		wordCount = 0
	}

	for _, block := range blocks {
		buffer = append(buffer, block)
		wordCount += len(strings.Fields(block))
		if wordCount >= docxWordsPerPage {
			flush()
		}
	}
	flush()

	return pages, nil
}

// officeXMLParagraphs extracts, per <p> element, the concatenated contents
// of its <t> runs from one XML part of an OOXML archive.
func officeXMLParagraphs(fileBytes []byte, partName string) ([]string, error) {
	archive, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	part, err := archive.Open(partName)
	if err != nil {
		return nil, fmt.Errorf("missing part %s: %w", partName, err)
	}
	defer part.Close()

	return parseParagraphs(part)
}

func parseParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	textDepth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				textDepth++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				inParagraph = false
				current.Reset()
			case "t":
				if textDepth > 0 {
					textDepth--
				}
			}
		case xml.CharData:
			if inParagraph && textDepth > 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
