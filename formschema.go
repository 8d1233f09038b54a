// Package formschema turns schema documents into live forms: it resolves a
// schema from a file, fs.FS, URL or OpenAPI description and builds a form
// controller around it.
package formschema

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrOpenAPIReference is returned when an OpenAPI document is resolved
// without naming the schema to import.
var ErrOpenAPIReference = errors.New("formschema: OpenAPI document requires a schema reference")

// LoaderOptions configures document loading.
type LoaderOptions = loader.Options

// Request describes where a form schema comes from. Document takes
// precedence over Source.
type Request struct {
	Source   schema.Source
	Document *schema.Document
	// OpenAPIRef selects a component schema or an operation's request body
	// when the document is an OpenAPI description.
	OpenAPIRef string
}

// Resolver loads schema and values documents.
type Resolver struct {
	loader   *loader.Loader
	importer *openapi.Importer
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoaderOptions replaces the loader configuration.
func WithLoaderOptions(opts LoaderOptions) Option {
	return func(r *Resolver) {
		r.loader = loader.New(opts)
	}
}

// WithImporter overrides the OpenAPI importer.
func WithImporter(importer *openapi.Importer) Option {
	return func(r *Resolver) {
		if importer != nil {
			r.importer = importer
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.OrDiscard(logger)
	}
}

// NewResolver constructs a Resolver reading local files and standard input.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		loader:   loader.New(loader.Options{}),
		importer: openapi.New(openapi.Options{}),
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve loads the requested document and returns its schema root.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*schema.Node, error) {
	doc, err := r.document(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OpenAPIRef != "" {
		r.logger.Debug("formschema: importing OpenAPI schema", "source", doc.Location(), "ref", req.OpenAPIRef)
		return r.importer.Import(ctx, doc, req.OpenAPIRef)
	}
	if openapi.Detect(doc.Raw()) {
		refs, _ := r.importer.References(ctx, doc)
		return nil, errors.WithHintf(ErrOpenAPIReference, "available references: %v", refs)
	}

	r.logger.Debug("formschema: parsing schema", "source", doc.Location())
	return schema.Parse(doc)
}

// References lists the schema references an OpenAPI document offers.
func (r *Resolver) References(ctx context.Context, req Request) ([]string, error) {
	doc, err := r.document(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.importer.References(ctx, doc)
}

// LoadValues reads a JSON, YAML or TOML value tree.
func (r *Resolver) LoadValues(ctx context.Context, src schema.Source) (map[string]any, error) {
	return r.loader.LoadValues(ctx, src)
}

func (r *Resolver) document(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("formschema: request requires a source or document")
	}
	return r.loader.Load(ctx, req.Source)
}

// NewForm resolves req and builds a form controller over the schema.
func NewForm(ctx context.Context, req Request, resolver *Resolver, opts ...form.Option) (*form.Controller, error) {
	if resolver == nil {
		resolver = NewResolver()
	}
	root, err := resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return form.New(root, opts...)
}
