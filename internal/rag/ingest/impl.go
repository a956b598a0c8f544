package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

var ErrNotText = errors.New("content is not valid UTF-8 text")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText accepts only valid UTF-8, dropping a leading byte order mark.
func DecodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", ErrNotText
	}
	return string(raw), nil
}

func GetDocType(docPath string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(docPath)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.TXT
	}
}

// ExtractText reads a file from disk and returns its plain text.
func ExtractText(path string) (string, commonModels.DocType, error) {
	docType := GetDocType(path)
	switch docType {
	case commonModels.PDF:
		text, err := extractPDF(path)
		return text, docType, err
	case commonModels.DOCX:
		text, err := extractDocxOdtRtf(path)
		return text, docType, err
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", docType, fmt.Errorf("failed to read file: %w", err)
		}
		text, err := DecodeText(raw)
		return text, docType, err
	}
}
