package pdf

import (
	"bytes"
	"code.sajari.com/docconv"
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	log "github.com/sirupsen/logrus"
	"io"
	"path/filepath"
	"strings"
)

var magic = []byte("%PDF-")

type convertFunc func(r io.Reader) (string, map[string]string, error)

// Extractor turns PDF bytes into plain text. docconv shells out to pdftotext,
// so the binary has to be present on the host.
type Extractor struct {
	convert convertFunc
}

func NewExtractor() *Extractor {
	return &Extractor{convert: docconv.ConvertPDF}
}

// IsPDF checks both the file extension and the PDF header.
func IsPDF(filename string, data []byte) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf") && bytes.HasPrefix(data, magic)
}

func (e *Extractor) Extract(data []byte) (string, error) {
	if !bytes.HasPrefix(data, magic) {
		return "", fmt.Errorf("%w: missing pdf header", models.ErrUnsupportedFormat)
	}

	text, _, err := e.convert(bytes.NewReader(data))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypePdf).Errorf("failed to convert pdf: %v", err)
		return "", fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: document has no text layer", models.ErrExtractionFailed)
	}

	return text, nil
}
