package detail

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"github.com/matzehuels/libpanel/pkg/errors"
)

// Opener performs an [Action] on behalf of the host.
type Opener interface {
	Open(ctx context.Context, a Action) error
}

// OpenerFunc adapts a function to [Opener].
type OpenerFunc func(ctx context.Context, a Action) error

func (f OpenerFunc) Open(ctx context.Context, a Action) error { return f(ctx, a) }

// BrowserOpener opens URLs in the system default browser. The application
// hint cannot be honored portably and is only logged.
type BrowserOpener struct {
	Logger *log.Logger
}

// NewBrowserOpener returns an opener whose helper processes write to w.
// A nil w discards their output.
func NewBrowserOpener(logger *log.Logger, w io.Writer) BrowserOpener {
	if w == nil {
		w = io.Discard
	}
	browser.Stdout = w
	browser.Stderr = w
	return BrowserOpener{Logger: logger}
}

func (o BrowserOpener) Open(ctx context.Context, a Action) error {
	if a.URL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "action has no URL")
	}
	if o.Logger != nil {
		o.Logger.Debug("opening url", "url", a.URL, "application", a.Application)
	}
	if err := browser.OpenURL(a.URL); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", a.URL)
	}
	return nil
}
