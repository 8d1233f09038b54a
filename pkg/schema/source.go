package schema

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Source identifies where a schema document originated so loaders can read
// files, fs.FS entries, URLs or standard input behind one interface.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromStdin returns a Source reading the document from standard input.
func SourceFromStdin() Source {
	return source{kind: SourceKindStdin, location: "-"}
}

// SourceFromURL validates raw and returns a URL Source.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, errors.Wrapf(err, "schema: invalid URL %q", raw)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// ParseSource maps a command-line style reference onto a Source: "-" reads
// standard input, http(s) references become URL sources and anything else is
// a file path.
func ParseSource(raw string) (Source, error) {
	ref := strings.TrimSpace(raw)
	switch {
	case ref == "":
		return nil, errors.New("schema: source is required")
	case ref == "-":
		return SourceFromStdin(), nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return SourceFromURL(ref)
	default:
		return SourceFromFile(ref), nil
	}
}
