// Package htmlclip publishes an HTML fragment, and optionally a plain text
// fallback, to the clipboard in one open/empty/set/close transaction.
package htmlclip

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/labi-le/richclip/pkg/cfhtml"
	"github.com/labi-le/richclip/pkg/clipboard/host"
	"github.com/labi-le/richclip/pkg/ctxlog"
	"github.com/labi-le/richclip/pkg/id"
	"github.com/labi-le/richclip/pkg/pool"
	"github.com/labi-le/richclip/pkg/textenc"
	"github.com/rs/zerolog"
)

const (
	buffersQueue = 4
	// larger buffers are dropped on release instead of kept in the pool
	maxPooledBuffer = 1 << 20
)

var errShortBlock = errors.New("shared block smaller than requested")

// install failure codes for one representation
type steps struct {
	alloc, lock, unlock, set Status
}

var (
	htmlSteps = steps{StatusHTMLAllocFailed, StatusHTMLLockFailed, StatusHTMLUnlockFailed, StatusHTMLInstallFailed}
	textSteps = steps{StatusTextAllocFailed, StatusTextLockFailed, StatusTextUnlockFailed, StatusTextInstallFailed}
)

// Publisher owns the HTML format id for its host. The id is resolved on the
// first publish and kept for the Publisher's lifetime.
type Publisher struct {
	host host.Host
	opts Options

	mu     sync.Mutex
	format host.Format
}

func New(h host.Host, opts ...Option) *Publisher {
	options := NewOptions(opts...)

	if options.Buffers == nil {
		buffers := pool.NewObjectPool[*bytes.Buffer](buffersQueue)
		buffers.New = func() *bytes.Buffer { return new(bytes.Buffer) }
		buffers.Reset = resetBuffer
		options.Buffers = buffers
	}

	return &Publisher{host: h, opts: options}
}

// PublishHTML publishes html with an optional fallback and reports the
// outcome as a Status.
func (p *Publisher) PublishHTML(html []byte, text *string) Status {
	return StatusOf(p.Publish(Content{HTML: html, Text: text}))
}

// Publish replaces the clipboard contents with c. The returned error is
// always an *Error carrying the first failure; cleanup runs on every path.
func (p *Publisher) Publish(c Content) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	logger := ctxlog.Tx(ctxlog.Op(p.opts.Logger, "htmlclip.Publish"), id.New()).
		With().
		Str("host", p.host.Name()).
		Logger()

	logger.Trace().Object("content", c).Msg("publish")
	defer func() {
		if err != nil {
			s := StatusOf(err)
			logger.Debug().Err(err).Int("status", int(s)).Bool("partial", s.Partial()).Msg("publish failed")
			return
		}
		logger.Debug().Msg("published")
	}()

	format, err := p.htmlFormat()
	if err != nil {
		return newError(StatusRegisterFailed, err)
	}

	buf := p.opts.Buffers.Acquire()
	defer p.opts.Buffers.Release(buf)

	if _, err := cfhtml.Build(buf, c.HTML, cfhtml.WithSourceURL(p.opts.SourceURL)); err != nil {
		return newError(StatusBuildFailed, err)
	}

	var text []byte
	if c.Text != nil {
		if text, err = textenc.UTF16(*c.Text); err != nil {
			return newError(StatusTextInvalid, err)
		}
	}

	if err := p.host.Open(); err != nil {
		return newError(StatusAcquireFailed, err)
	}
	defer func() {
		cerr := p.host.Close()
		if cerr == nil {
			return
		}
		if err == nil {
			err = newError(StatusReleaseFailed, cerr)
			return
		}
		logger.Warn().Err(cerr).Msg("close clipboard after failure")
	}()

	if err := p.host.Empty(); err != nil {
		return newError(StatusClearFailed, err)
	}

	if err := p.install(logger, format, buf.Bytes(), htmlSteps); err != nil {
		return err
	}

	if text != nil {
		if err := p.install(logger, host.FormatUnicodeText, text, textSteps); err != nil {
			return err
		}
	}

	return nil
}

// install copies data into a fresh shared block and hands it to the
// clipboard. The block is freed unless the clipboard accepted it.
func (p *Publisher) install(logger zerolog.Logger, f host.Format, data []byte, s steps) error {
	h, err := p.host.Alloc(len(data))
	if err != nil {
		return newError(s.alloc, err)
	}

	owned := false
	defer func() {
		if owned {
			return
		}
		if ferr := p.host.Free(h); ferr != nil {
			logger.Warn().Err(ferr).Uint32("format", uint32(f)).Msg("free shared block")
		}
	}()

	mem, err := p.host.Lock(h)
	if err != nil {
		return newError(s.lock, err)
	}

	if len(mem) < len(data) {
		if uerr := p.host.Unlock(h); uerr != nil {
			logger.Warn().Err(uerr).Msg("unlock short block")
		}
		return newError(s.lock, fmt.Errorf("%w: %d < %d", errShortBlock, len(mem), len(data)))
	}
	copy(mem, data)

	if err := p.host.Unlock(h); err != nil {
		return newError(s.unlock, err)
	}

	if err := p.host.SetData(f, h); err != nil {
		return newError(s.set, err)
	}
	owned = true

	logger.Trace().Uint32("format", uint32(f)).Int("size", len(data)).Msg("installed")
	return nil
}

func resetBuffer(b *bytes.Buffer) {
	if b.Cap() > maxPooledBuffer {
		*b = bytes.Buffer{}
		return
	}
	b.Reset()
}

func (p *Publisher) htmlFormat() (host.Format, error) {
	if p.format != 0 {
		return p.format, nil
	}

	f, err := p.host.RegisterFormat(cfhtml.FormatName)
	if err != nil {
		return 0, err
	}
	p.format = f
	return f, nil
}
