package services

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// CheckFormat returns domain.ErrUnsupportedFormat unless format is a known,
// enabled render format.
func CheckFormat(settings *domain.AppSettings, format string) error {
	if format != domain.FormatJSONAPI && format != domain.FormatPretty {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if settings != nil && !settings.RenderEnabled(format) {
		return fmt.Errorf("%w: %q is disabled", domain.ErrUnsupportedFormat, format)
	}
	return nil
}

// Render writes v as JSON. The pretty format indents by two spaces.
func Render(w io.Writer, v any, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case domain.FormatPretty:
		out, err = json.MarshalIndent(v, "", "  ")
	case domain.FormatJSONAPI:
		out, err = json.Marshal(v)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// RenderError writes err using the configured error mapping.
func RenderError(w io.Writer, err error, mapping, format string) error {
	if mapping == domain.ErrorMappingPlain {
		_, werr := fmt.Fprintf(w, "error: %v\n", err)
		return werr
	}
	return Render(w, ErrorDocument(err), format)
}
