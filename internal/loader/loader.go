package loader

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrHTTPDisabled is returned for URL sources when remote loading is off.
var ErrHTTPDisabled = errors.New("loader: http support disabled")

// Options configures a Loader.
type Options struct {
	// FileSystem backs fs sources.
	FileSystem fs.FS
	// HTTPClient is used for URL sources. When nil and AllowHTTP is set, a
	// client with Timeout is created.
	HTTPClient *http.Client
	AllowHTTP  bool
	Timeout    time.Duration
	// Stdin backs the "-" source. Defaults to os.Stdin.
	Stdin io.Reader
}

// Loader reads schema and value documents from files, an fs.FS, standard
// input or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	stdin   io.Reader
}

// New constructs a Loader.
func New(opts Options) *Loader {
	var client *http.Client
	switch {
	case opts.HTTPClient != nil:
		clone := *opts.HTTPClient
		if opts.Timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = opts.Timeout
		}
		client = &clone
	case opts.AllowHTTP:
		client = &http.Client{Timeout: opts.Timeout}
	}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{fs: opts.FileSystem, http: client, timeout: opts.Timeout, stdin: stdin}
}

// Load fetches the payload behind src.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindStdin:
		data, err = loadReader(ctx, l.stdin)
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.Newf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, errors.Wrapf(err, "loader: load %s", src.Location())
	}
	return schema.NewDocument(src, data)
}

// LoadSchema loads and parses a schema document.
func (l *Loader) LoadSchema(ctx context.Context, src schema.Source) (*schema.Node, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return schema.Parse(doc)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("fs is nil")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return fs.ReadFile(files, name)
}

func loadReader(ctx context.Context, r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("stdin is not available")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
