// Package progress renders flash-transfer progress bars, distinct from
// the interactive picker's bubbles-based UI: this is a one-shot,
// non-interactive bar for a copy/write loop, not a TUI component.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar wraps progressbar/v3 for a single artifact transfer.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a byte-counted progress bar titled with the device's
// port, writing to w (stderr in normal operation).
func New(w io.Writer, totalBytes int64, description string) *Bar {
	return &Bar{
		bar: progressbar.NewOptions64(totalBytes,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (b *Bar) Add(n int) error {
	return b.bar.Add(n)
}

func (b *Bar) Finish() error {
	return b.bar.Finish()
}

// Writer returns an io.Writer that advances the bar as bytes pass
// through it, for wrapping an io.Copy destination.
func (b *Bar) Writer(dest io.Writer) io.Writer {
	return io.MultiWriter(dest, b.bar)
}
