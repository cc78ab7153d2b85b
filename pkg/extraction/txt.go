package extraction

import (
	"strings"

	"docuchat-be/pkg/chunker"
)

const txtCharsPerPage = 2000

// extractTXTPages slices normalized plain text into fixed-size pseudo-pages.
func extractTXTPages(fileBytes []byte, charsPerPage int) []chunker.Page {
	text := string(fileBytes)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = normalizeText(text)

	if text == "" {
		return nil
	}

	runes := []rune(text)

	var pages []chunker.Page
	pageNum := 1

	for i := 0; i < len(runes); i += charsPerPage {
		end := i + charsPerPage
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[i:end]))
		if part == "" {
			continue
		}
		pages = append(pages, chunker.Page{Number: pageNum, Text: part})
		pageNum++
	}

	return pages
}
