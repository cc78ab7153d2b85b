package extraction

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docuchat-be/pkg/chunker"
)

var slidePartName = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTXPages extracts slide text, one page per slide, in slide order.
// Slides without text still produce a (blank) page so page numbers line up
// with the deck.
func extractPPTXPages(fileBytes []byte) ([]chunker.Page, error) {
	archive, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	type slide struct {
		number int
		name   string
	}
	var slides []slide
	for _, f := range archive.File {
		m := slidePartName.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{number: n, name: f.Name})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	pages := make([]chunker.Page, 0, len(slides))
	for i, s := range slides {
		part, err := archive.Open(s.name)
		if err != nil {
			return nil, fmt.Errorf("open slide %s: %w", s.name, err)
		}
		paragraphs, err := parseParagraphs(part)
		part.Close()
		if err != nil {
			return nil, err
		}

		pages = append(pages, chunker.Page{
			Number: i + 1,
			Text:   normalizeText(strings.Join(paragraphs, "\n")),
		})
	}

	return pages, nil
}
