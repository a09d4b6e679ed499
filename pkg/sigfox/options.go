package sigfox

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	internalopts "github.com/codetaro/SigfoxDecoder/internal/options"
)

// Options configures decoding.
type Options struct {
	// DownlinkData is "payload" (default) to read the acknowledged data from
	// payload bytes 4..11, or "sequence" to reproduce the legacy decoder,
	// which always reported 4..11.
	DownlinkData string
	// Logger receives debug entries about dispatch. Nil disables logging.
	Logger logrus.FieldLogger
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (opts Options) toInternal(ctx context.Context) (context.Context, error) {
	mode, err := internalopts.ParseDownlinkDataMode(opts.DownlinkData)
	if err != nil {
		return ctx, err
	}
	return internalopts.WithDownlinkDataMode(ctx, mode), nil
}

func (opts Options) logger() logrus.FieldLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return discard
}
