package extraction

import (
	"bytes"
	"encoding/csv"
	"strings"

	"docuchat-be/pkg/chunker"
)

const csvRowsPerPage = 50

// extractCSVPages renders CSV data as pipe-separated tables, repeating the
// header on every pseudo-page so each page stands on its own.
func extractCSVPages(fileBytes []byte, rowsPerPage int) []chunker.Page {
	reader := csv.NewReader(bytes.NewReader(fileBytes))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	dataRows := rows[1:]

	var pages []chunker.Page
	pageNum := 1

	for i := 0; i < len(dataRows); i += rowsPerPage {
		end := i + rowsPerPage
		if end > len(dataRows) {
			end = len(dataRows)
		}

		lines := []string{
			strings.Join(header, " | "),
			strings.Repeat("-", 40),
		}
		for _, row := range dataRows[i:end] {
			padded := row
			for len(padded) < len(header) {
				padded = append(padded, "")
			}
			lines = append(lines, strings.Join(padded, " | "))
		}

		pageText := strings.TrimSpace(strings.Join(lines, "\n"))
		if pageText == "" {
			continue
		}
		pages = append(pages, chunker.Page{Number: pageNum, Text: pageText})
		pageNum++
	}

	return pages
}
