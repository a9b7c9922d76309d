package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/apache/arrow/go/v18/arrow"
	"go.uber.org/zap"

	"github.com/data-power-io/esd-documents/cursor"
	"github.com/data-power-io/esd-documents/esd"
	"github.com/data-power-io/esd-documents/internal/config"
	"github.com/data-power-io/esd-documents/internal/sample"
	"github.com/data-power-io/esd-documents/logging"
	"github.com/data-power-io/esd-documents/metrics"
	"github.com/data-power-io/esd-documents/schema"
	"github.com/data-power-io/esd-documents/transcode"
)

const usage = `usage: esd <command> [flags]

commands:
  convert   decode a document and re-encode it in another format
  schema    print the Arrow schema of a document type, or describe an Arrow file
  sample    generate a sample document
  paginate  split a document into cursor-linked pages
  types     list document types`

func main() {
	os.Exit(runMain())
}

func runMain() int {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		logger := logging.NewDefaultLogger()
		logger.Error("Failed to load configuration", zap.Error(err))
		_ = logger.Sync()
		return 1
	}

	logger, err := logging.NewLogger(cfg.LoggingConfig())
	if err != nil {
		logger = logging.NewDefaultLogger()
		logger.Warn("Invalid logging configuration, using defaults", zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.CodecTimeout())
	defer cancel()

	app := &app{
		cfg:    cfg,
		logger: logger,
		tc: transcode.NewTranscoder(logger, metrics.NewCodecMetrics("cli"), transcode.Options{
			XMLIndent:      cfg.XMLIndent(),
			ArrowBatchSize: cfg.ArrowBatchSize(),
		}),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	code := app.run(ctx, os.Args[1], os.Args[2:])

	if path := cfg.MetricsTextfile(); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Error("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	return code
}

type app struct {
	cfg    *config.Config
	logger *logging.Logger
	tc     *transcode.Transcoder
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) int {
	var err error
	switch command {
	case "convert":
		err = a.convert(ctx, args)
	case "schema":
		err = a.schema(args)
	case "sample":
		err = a.sample(ctx, args)
	case "paginate":
		err = a.paginate(ctx, args)
	case "types":
		for _, t := range esd.SupportedDocumentTypes {
			fmt.Fprintln(a.stdout, t)
		}
	case "help", "-h", "--help":
		fmt.Fprintln(a.stdout, usage)
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s\n", command, usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		a.logger.Error("Command failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

func (a *app) convert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	docType := fs.String("type", "", "document type")
	from := fs.String("from", "json", "input format: json, xml or arrow")
	to := fs.String("to", "xml", "output format: json, xml or arrow")
	in := fs.String("in", "", "input file (default stdin)")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fromFormat, err := transcode.ParseFormat(*from)
	if err != nil {
		return err
	}
	toFormat, err := transcode.ParseFormat(*to)
	if err != nil {
		return err
	}

	r, closeIn, err := a.openInput(*in)
	if err != nil {
		return err
	}
	defer closeIn()

	w, closeOut, err := a.openOutput(*out)
	if err != nil {
		return err
	}
	defer closeOut()

	return a.tc.Convert(ctx, esd.DocumentType(*docType), fromFormat, toFormat, r, w)
}

func (a *app) schema(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	docType := fs.String("type", "", "document type")
	format := fs.String("format", "json", "output format: json or ipc")
	in := fs.String("in", "", "describe the schema of an Arrow file instead of a document type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manager := schema.NewArrowSchemaManager()

	var sch *arrow.Schema
	if *in != "" {
		r, closeIn, err := a.openInput(*in)
		if err != nil {
			return err
		}
		defer closeIn()
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read Arrow input: %w", err)
		}
		if sch, err = manager.ArrowSchemaFromBytes(data); err != nil {
			return err
		}
	} else {
		env, err := esd.NewEnvelope(esd.DocumentType(*docType))
		if err != nil {
			return err
		}
		if sch, err = manager.RecordSchema(env.NewRecord(), nil); err != nil {
			return err
		}
	}

	switch *format {
	case "json":
		text, err := manager.SchemaToJSON(sch)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, text)
		return err
	case "ipc":
		data, err := manager.ArrowSchemaToBytes(sch)
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported schema format %q", *format)
	}
}

func (a *app) sample(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	docType := fs.String("type", "", "document type")
	count := fs.Int("n", 3, "number of records")
	format := fs.String("format", "json", "output format: json, xml or arrow")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := transcode.ParseFormat(*format)
	if err != nil {
		return err
	}

	t := esd.DocumentType(*docType)
	env, err := sample.NewGenerator().Document(t, *count)
	if err != nil {
		return err
	}

	w, closeOut, err := a.openOutput(*out)
	if err != nil {
		return err
	}
	defer closeOut()

	return a.tc.Encode(ctx, t, env, f, w)
}

func (a *app) paginate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("paginate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	docType := fs.String("type", "", "document type")
	format := fs.String("format", "json", "input and output format: json, xml or arrow")
	pageSize := fs.Int("page-size", a.cfg.PageSize(), "records per page")
	in := fs.String("in", "", "input file (default stdin)")
	outDir := fs.String("out-dir", ".", "directory for page files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := transcode.ParseFormat(*format)
	if err != nil {
		return err
	}

	r, closeIn, err := a.openInput(*in)
	if err != nil {
		return err
	}
	defer closeIn()

	t := esd.DocumentType(*docType)
	env, err := a.tc.Decode(ctx, t, f, r)
	if err != nil {
		return err
	}

	pages, err := esd.PaginateEnvelope(t, env, *pageSize, cursor.NewManager())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, page := range pages {
		path := filepath.Join(*outDir, fmt.Sprintf("%s-page-%04d.%s", t, i+1, f))
		if err := a.writePage(ctx, t, page, f, path); err != nil {
			return err
		}
	}

	a.logger.Info("Document paginated",
		zap.String("document", string(t)),
		zap.Int("records", env.Len()),
		zap.Int("pages", len(pages)),
		zap.String("out_dir", *outDir))
	return nil
}

func (a *app) writePage(ctx context.Context, t esd.DocumentType, page esd.Envelope, f transcode.Format, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.tc.Encode(ctx, t, page, f, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (a *app) openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return a.stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return file, func() { file.Close() }, nil
}

func (a *app) openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return a.stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return file, func() {
		if err := file.Close(); err != nil {
			a.logger.Warn("Failed to close output", zap.String("path", path), zap.Error(err))
		}
	}, nil
}
