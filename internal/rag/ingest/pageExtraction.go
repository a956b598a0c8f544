package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageExtractTimeout = 10 * time.Second

func extractPDF(path string) (string, error) {
	log := logger_i.NewLogger("extract").With("path", path)
	f, err := pdf.Open(path)
	if err != nil {
		log.Error("failed opening of pdf file", "error", err)
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := f.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// one bad page should not sink the document
			log.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}
	if len(pages) == 0 {
		return "", errors.New("pdf has no extractable text")
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractDocxOdtRtf reads a .odt, .docx or .rtf file and returns the content as a string
func extractDocxOdtRtf(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
