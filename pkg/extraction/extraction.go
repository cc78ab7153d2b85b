// Package extraction turns uploaded files into page-structured plain text.
// Formats without native pages (txt, csv, docx) are split into pseudo-pages
// so the rest of the pipeline can treat every format the same way.
package extraction

import (
	"regexp"
	"strings"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/chunker"
)

// ExtractedDocument is the normalized result of extraction: 1-based pages of
// cleaned text plus the type that was actually detected.
type ExtractedDocument struct {
	Pages        []chunker.Page
	DetectedType string
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeTXT  = "text/plain"
	ContentTypeCSV  = "text/csv"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

func matches(contentType, filename, wantType, wantExt string) bool {
	if contentType == wantType {
		return true
	}
	return filename != "" && strings.HasSuffix(strings.ToLower(filename), wantExt)
}

// Extract detects the document type from content type or filename extension
// and runs the matching extractor. Unsupported types fail with an
// ExtractionError.
func Extract(fileBytes []byte, contentType, filename string) (*ExtractedDocument, error) {
	switch {
	case matches(contentType, filename, ContentTypePDF, ".pdf"):
		pages, err := extractPDFPages(fileBytes)
		if err != nil {
			return nil, &apperrors.ExtractionError{ContentType: contentType, Reason: err.Error()}
		}
		return &ExtractedDocument{Pages: pages, DetectedType: "pdf"}, nil

	case matches(contentType, filename, ContentTypeTXT, ".txt"):
		return &ExtractedDocument{Pages: extractTXTPages(fileBytes, txtCharsPerPage), DetectedType: "txt"}, nil

	case matches(contentType, filename, ContentTypeDOCX, ".docx"):
		pages, err := extractDOCXPages(fileBytes)
		if err != nil {
			return nil, &apperrors.ExtractionError{ContentType: contentType, Reason: err.Error()}
		}
		return &ExtractedDocument{Pages: pages, DetectedType: "docx"}, nil

	case matches(contentType, filename, ContentTypePPTX, ".pptx"):
		pages, err := extractPPTXPages(fileBytes)
		if err != nil {
			return nil, &apperrors.ExtractionError{ContentType: contentType, Reason: err.Error()}
		}
		return &ExtractedDocument{Pages: pages, DetectedType: "pptx"}, nil

	case matches(contentType, filename, ContentTypeCSV, ".csv"):
		return &ExtractedDocument{Pages: extractCSVPages(fileBytes, csvRowsPerPage), DetectedType: "csv"}, nil
	}

	return nil, &apperrors.ExtractionError{
		ContentType: contentType,
		Reason:      "unsupported document type",
	}
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// normalizeText strips soft hyphens, collapses space runs and squeezes
// excessive blank lines.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00ad", "") // soft hyphen
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
