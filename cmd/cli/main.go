package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labi-le/richclip/internal/convert"
	"github.com/labi-le/richclip/internal/metadata"
	"github.com/labi-le/richclip/internal/notification"
	"github.com/labi-le/richclip/pkg/cfhtml"
	"github.com/labi-le/richclip/pkg/htmlclip"
	"github.com/labi-le/richclip/pkg/ptr"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

// exit codes below 64 are the negated htmlclip.Status
const (
	exitUsage   = 64
	exitInput   = 66
	exitUnknown = 70
)

var errTooLarge = errors.New("input exceeds max_size")

type action struct {
	verbose     bool
	showVersion bool
	showHelp    bool
	notify      bool
	dryRun      bool
	sanitize    bool

	text      *string
	textFrom  convert.Mode
	sourceURL string
	maxSize   uint64
	input     string
}

func parseFlags() (action, error) {
	var (
		act        action
		text       string
		textFrom   string
		maxSizeRaw string
		err        error
	)

	flag.StringVarP(&text, "text", "t", "", "Plain text fallback installed next to the HTML")
	flag.StringVar(&textFrom, "text-from-html", "", "Derive the fallback from the HTML: text, markdown")
	flag.BoolVar(&act.sanitize, "sanitize", false, "Strip scripts and unsafe attributes from the HTML")
	flag.StringVar(&act.sourceURL, "source-url", "", "SourceURL recorded in the clipboard header")
	flag.StringVar(&maxSizeRaw, "max_size", "64MiB", "Refuse input larger than this")
	flag.BoolVar(&act.dryRun, "dry-run", false, "Print the clipboard payload instead of publishing it")
	flag.BoolVar(&act.notify, "notify", false, "Show a desktop notification after copying")
	flag.BoolVar(&act.verbose, "verbose", false, "Verbose logs")
	flag.BoolVarP(&act.showVersion, "version", "v", false, "Show version")
	flag.BoolVarP(&act.showHelp, "help", "h", false, "Show help")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: richclip [flags] [file]\n\nCopies HTML from file (or stdin) to the clipboard.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if act.showHelp || act.showVersion {
		return act, nil
	}

	if flag.CommandLine.Changed("text") {
		act.text = ptr.Of(text)
	}

	if act.textFrom, err = convert.ParseMode(textFrom); err != nil {
		return act, err
	}

	if act.maxSize, err = humanize.ParseBytes(maxSizeRaw); err != nil {
		return act, fmt.Errorf("invalid max_size format: %w", err)
	}
	if limit := descriptorLimit(act.sourceURL); act.maxSize > limit {
		act.maxSize = limit
	}

	switch flag.NArg() {
	case 0:
		act.input = "-"
	case 1:
		act.input = flag.Arg(0)
	default:
		return act, fmt.Errorf("expected at most one input file, got %d", flag.NArg())
	}

	return act, nil
}

func main() {
	act, err := parseFlags()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(exitUsage)
	}

	if act.showHelp {
		flag.Usage()
		return
	}

	applyTagsOverrides(&act)
	logger := initLogger(act.verbose)

	logger.Debug().
		Str("v", metadata.Version).
		Str("commit_hash", metadata.CommitHash).
		Str("build_time", metadata.BuildTime).
		Send()

	if act.showVersion {
		fmt.Println(metadata.String())
		return
	}

	os.Exit(run(act, logger))
}

func run(act action, logger zerolog.Logger) int {
	content, err := prepare(act, logger)
	if err != nil {
		logger.Error().Err(err).Str("input", act.input).Msg("failed to prepare content")
		return exitInput
	}

	opts := []htmlclip.Option{
		htmlclip.WithLogger(logger),
		htmlclip.WithSourceURL(act.sourceURL),
	}

	if act.dryRun {
		return exitCode(dryRun(os.Stdout, content, opts))
	}

	status := publish(content, opts, logger)
	if status != htmlclip.StatusOK {
		ev := logger.Error()
		if status.Partial() {
			ev = logger.Warn()
		}
		ev.Int("status", int(status)).
			Stringer("kind", status.Kind()).
			Bool("partial", status.Partial()).
			Msgf("failed to %s", status)
		return exitCode(status)
	}

	logger.Info().Object("content", content).Msg("copied to clipboard")
	notification.New(act.notify, logger).Notify("copied %s of HTML", humanize.Bytes(uint64(len(content.HTML))))

	return 0
}

// prepare reads the input and applies the sanitize and fallback flags.
func prepare(act action, logger zerolog.Logger) (htmlclip.Content, error) {
	src := os.Stdin
	if act.input != "-" {
		f, err := os.Open(act.input)
		if err != nil {
			return htmlclip.Content{}, err
		}
		defer f.Close()
		src = f
	}

	raw, err := io.ReadAll(io.LimitReader(src, int64(act.maxSize)+1))
	if err != nil {
		return htmlclip.Content{}, fmt.Errorf("read input: %w", err)
	}
	if uint64(len(raw)) > act.maxSize {
		return htmlclip.Content{}, fmt.Errorf("%w (%s)", errTooLarge, humanize.IBytes(act.maxSize))
	}

	content := htmlclip.Content{HTML: raw, Text: act.text}

	if act.sanitize {
		content.HTML = convert.Sanitize(content.HTML)
		logger.Trace().Int("before", len(raw)).Int("after", len(content.HTML)).Msg("sanitized")
	}

	if act.textFrom != convert.ModeNone {
		if act.text != nil {
			logger.Warn().Msg("--text given, ignoring --text-from-html")
			return content, nil
		}

		text, err := convert.PlainText(content.HTML, act.textFrom)
		if err != nil {
			return content, err
		}
		content.Text = ptr.Of(text)
	}

	return content, nil
}

// descriptorLimit is the largest fragment whose descriptor still fits the
// offset fields.
func descriptorLimit(sourceURL string) uint64 {
	return uint64(cfhtml.MaxOffset - cfhtml.Size(0, cfhtml.WithSourceURL(sourceURL)))
}

func exitCode(s htmlclip.Status) int {
	if s == htmlclip.StatusUnknown {
		return exitUnknown
	}
	return -int(s)
}

func initLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	if verbose {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			short := file
			for i := len(file) - 1; i > 0; i-- {
				if file[i] == '/' {
					short = file[i+1:]
					break
				}
			}
			file = short
			return fmt.Sprintf("%s:%d", file, line)
		}
		return zerolog.New(output).
			Level(zerolog.TraceLevel).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	return zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}
