// internal/platform/ui/select.go
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Select construye el presenter para el modo pedido.
// En modo auto se usa pterm solo si out es una terminal.
// jsonOutput fuerza líneas JSON en los modos no interactivos.
func Select(mode UIMode, out io.Writer, jsonOutput bool) Presenter {
	format := LogFormatText
	if jsonOutput {
		format = LogFormatJSON
	}

	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModePlain:
		return NewRawPresenterWithWriter(out, format)
	case UIModePTerm:
		return NewPTermPresenter()
	default:
		if !jsonOutput && IsTerminal(out) {
			return NewPTermPresenter()
		}
		return NewRawPresenterWithWriter(out, format)
	}
}

// IsTerminal indica si w es un descriptor de terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
