package openapi

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/schema"
)

const componentPrefix = "#/components/schemas/"

var (
	// ErrSchemaNotFound is returned when a reference matches neither a
	// component schema nor an operation with a request body.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrReferenceRequired is returned when Import is called without a
	// reference.
	ErrReferenceRequired = errors.New("openapi: schema reference is required")
)

// Options configures an Importer.
type Options struct {
	// ResolveReferences allows external $ref resolution and validates the
	// document before conversion.
	ResolveReferences bool
	// MediaTypes lists the request body media types to try, in order.
	MediaTypes []string
}

// Importer converts OpenAPI schemas into schema nodes.
type Importer struct {
	options Options
}

// New constructs an Importer.
func New(opts Options) *Importer {
	if len(opts.MediaTypes) == 0 {
		opts.MediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}
	}
	return &Importer{options: opts}
}

// Detect reports whether raw looks like an OpenAPI or Swagger document.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			_, isOpenAPI := payload["openapi"]
			_, isSwagger := payload["swagger"]
			return isOpenAPI || isSwagger
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.HasPrefix(lower, "openapi:") || strings.Contains(lower, "\nopenapi:") ||
		strings.HasPrefix(lower, "swagger:") || strings.Contains(lower, "\nswagger:")
}

// Import loads the document and converts the schema named by ref:
// "#/components/schemas/Name", a bare component name, or an operationId
// whose request body carries the schema.
func (i *Importer) Import(ctx context.Context, doc schema.Document, ref string) (*schema.Node, error) {
	spec, err := i.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrReferenceRequired
	}

	if source := findSchema(spec, ref, i.options.MediaTypes); source != nil {
		return convert(source, map[*openapi3.Schema]bool{}), nil
	}
	return nil, errors.Wrapf(ErrSchemaNotFound, "reference %q", ref)
}

// References lists what Import accepts for doc: component references first,
// then operation ids with a request body, each group sorted.
func (i *Importer) References(ctx context.Context, doc schema.Document) ([]string, error) {
	spec, err := i.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	var refs []string
	if spec.Components != nil {
		for name := range spec.Components.Schemas {
			refs = append(refs, componentPrefix+name)
		}
	}
	sort.Strings(refs)

	var ops []string
	for _, op := range operations(spec) {
		if op.OperationID != "" && requestSchema(op, i.options.MediaTypes) != nil {
			ops = append(ops, op.OperationID)
		}
	}
	sort.Strings(ops)
	return append(refs, ops...), nil
}

func (i *Importer) load(ctx context.Context, doc schema.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: i.options.ResolveReferences}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, errors.Wrap(err, "openapi: load document")
	}
	if i.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, errors.Wrap(err, "openapi: validate")
		}
	}
	return spec, nil
}

func findSchema(spec *openapi3.T, ref string, mediaTypes []string) *openapi3.SchemaRef {
	name := strings.TrimPrefix(ref, componentPrefix)
	if spec.Components != nil {
		if found, ok := spec.Components.Schemas[name]; ok && found != nil {
			return found
		}
	}
	if strings.HasPrefix(ref, componentPrefix) {
		return nil
	}
	for _, op := range operations(spec) {
		if op.OperationID == ref {
			return requestSchema(op, mediaTypes)
		}
	}
	return nil
}

func operations(spec *openapi3.T) []*openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	var out []*openapi3.Operation
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil {
				out = append(out, op)
			}
		}
	}
	return out
}

func requestSchema(op *openapi3.Operation, mediaTypes []string) *openapi3.SchemaRef {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}
