package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/validation"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag or config value onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("report: unknown format %q (valid: text, json)", raw)
	}
}

// Result is the JSON shape of a validation report.
type Result struct {
	Source string             `json:"source,omitempty"`
	Valid  bool               `json:"valid"`
	Errors []validation.Error `json:"errors"`
}

// Reporter writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes errs found while validating source. An empty list is
// reported as a pass.
func (r *Reporter) Report(source string, errs validation.Errors) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(source, errs)
	default:
		return r.reportText(source, errs)
	}
}

func (r *Reporter) reportJSON(source string, errs validation.Errors) error {
	result := Result{Source: source, Valid: len(errs) == 0, Errors: []validation.Error(errs)}
	if result.Errors == nil {
		result.Errors = []validation.Error{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding JSON report")
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return errors.Wrap(err, "writing JSON report")
}

func (r *Reporter) reportText(source string, errs validation.Errors) error {
	subject := ""
	if source != "" {
		subject = " for " + source
	}
	if len(errs) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed%s", subject))
		return nil
	}

	fmt.Fprintf(r.out, "Validation failed%s: %s\n\n", subject, color.RedString("%d error(s)", len(errs)))
	field := color.New(color.FgRed).SprintFunc()
	muted := color.New(color.FgHiBlack)
	for _, err := range errs {
		var sb strings.Builder
		sb.WriteString("  • ")
		if err.Path != "" {
			sb.WriteString(field(err.Path))
			sb.WriteString(": ")
		}
		sb.WriteString(err.Message)
		if err.Code != "" {
			sb.WriteString(" ")
			sb.WriteString(muted.Sprintf("(%s)", describe(err)))
		}
		fmt.Fprintln(r.out, sb.String())
	}
	fmt.Fprintln(r.out)
	return nil
}

func describe(err validation.Error) string {
	parts := []string{"code=" + string(err.Code)}
	keys := make([]string, 0, len(err.Params))
	for key := range err.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, err.Params[key]))
	}
	return strings.Join(parts, ", ")
}
