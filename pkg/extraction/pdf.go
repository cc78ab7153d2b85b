package extraction

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"docuchat-be/pkg/chunker"
)

var pageNumberLine = regexp.MustCompile(`^\s*\d+\s*$`)

// extractPDFPages reads text per page and strips boilerplate: header and
// footer lines repeated on at least half the pages, plus lines that are only
// a page number.
func extractPDFPages(fileBytes []byte) ([]chunker.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	rawPages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			rawPages = append(rawPages, "")
			continue
		}
		rawPages = append(rawPages, pageText(page))
	}

	commonTops, commonBots := repeatedEdgeLines(rawPages)

	pages := make([]chunker.Page, 0, len(rawPages))
	for i, raw := range rawPages {
		lines := strings.Split(raw, "\n")
		for j := range lines {
			lines[j] = strings.TrimRight(lines[j], " \t")
		}

		if len(lines) > 0 && commonTops[strings.TrimSpace(lines[0])] {
			lines = lines[1:]
		}
		if len(lines) > 0 && commonBots[strings.TrimSpace(lines[len(lines)-1])] {
			lines = lines[:len(lines)-1]
		}

		kept := lines[:0]
		for _, ln := range lines {
			if !pageNumberLine.MatchString(ln) {
				kept = append(kept, ln)
			}
		}

		pages = append(pages, chunker.Page{
			Number: i + 1,
			Text:   normalizeText(strings.Join(kept, "\n")),
		})
	}

	return pages, nil
}

func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var sb strings.Builder
		for _, word := range row.Content {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(word.S)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// repeatedEdgeLines finds the first and last non-empty line of each page and
// reports the ones appearing on at least half the pages (min 2).
func repeatedEdgeLines(rawPages []string) (map[string]bool, map[string]bool) {
	topCounts := map[string]int{}
	botCounts := map[string]int{}

	for _, raw := range rawPages {
		if top := firstNonEmptyLine(raw); top != "" {
			topCounts[top]++
		}
		if bot := lastNonEmptyLine(raw); bot != "" {
			botCounts[bot]++
		}
	}

	threshold := len(rawPages) / 2
	if threshold < 2 {
		threshold = 2
	}

	commonTops := map[string]bool{}
	for line, count := range topCounts {
		if count >= threshold {
			commonTops[line] = true
		}
	}
	commonBots := map[string]bool{}
	for line, count := range botCounts {
		if count >= threshold {
			commonBots[line] = true
		}
	}
	return commonTops, commonBots
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func lastNonEmptyLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
