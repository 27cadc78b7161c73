package textlayer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"declara/internal/port"
)

// Strategy pulls the embedded text layer out of a PDF and runs the regex
// and proximity matchers over it. Scanned PDFs with no text layer fail
// here and fall through to the next stage.
type Strategy struct{}

func NewStrategy() *Strategy { return &Strategy{} }

func (s *Strategy) Name() string { return "textlayer" }

func (s *Strategy) Attempt(ctx context.Context, input port.ExtractInput) (map[string]port.FieldResult, error) {
	if input.ContentType != "application/pdf" {
		return nil, fmt.Errorf("textlayer: unsupported content type %s", input.ContentType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := extractText(input.FileBytes)
	if err != nil {
		return nil, fmt.Errorf("textlayer: reading pdf: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("textlayer: no extractable text layer")
	}

	return MatchFields(text, input.DocumentType), nil
}

func extractText(fileBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
