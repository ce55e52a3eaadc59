package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/presentation/tui"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

// ReadDocument loads a portable document from path, or from stdin when path is "-".
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func ReadDocument(path string, stdin io.Reader) (domain.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := portable.FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = portable.FormatYAML
	}
	return portable.Decode(format, data)
}

// Validate reports every problem in doc to w. It returns a non-nil error when doc is invalid.
func Validate(w io.Writer, doc domain.Document) error {
	err := portable.Validate(doc)
	if err == nil {
		fmt.Fprintf(w, "Funnel %q is valid (%d steps) ✅\n", doc.Name, len(doc.Nodes))
		return nil
	}
	for _, fe := range portable.ValidationErrors(err) {
		fmt.Fprintf(w, "  - %v\n", fe)
	}
	return err
}

// Export writes doc to w in the named format.
func Export(ctx context.Context, w io.Writer, doc domain.Document, format string, capturer ports.ImageCapturer) error {
	ed, err := funnelfy.New(funnelfy.WithDocument(doc), funnelfy.WithImageCapturer(capturer))
	if err != nil {
		return err
	}
	out, err := ed.Export(ctx, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Inspect prints the funnel report, styled when w is a terminal.
func Inspect(w io.Writer, doc domain.Document) error {
	if _, err := portable.FromPortable(doc); err != nil {
		return err
	}
	out, err := tui.RendererFor(w)(tui.Report(doc))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
