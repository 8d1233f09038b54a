package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/internal/report"
	"github.com/goliatone/go-formschema/pkg/terminal"
)

const profileSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "title": "Name", "required": true, "minLength": 2},
    "age": {"type": "integer", "minimum": 18},
    "newsletter": {"type": "boolean", "default": true},
    "address": {
      "type": "object",
      "properties": {
        "city": {"type": "string"}
      }
    }
  }
}`

const petsAPI = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "201":
          description: created
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
`

type result struct {
	code   int
	stdout string
	stderr string
}

// workspace writes files into a fresh directory, makes it the working
// directory and isolates the user config lookup.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	testChdir(t, dir)
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	return dir
}

func execute(t *testing.T, driver terminal.PromptDriver, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(NewRootCommand(driver), args, strings.NewReader(""), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func decodeObject(t *testing.T, data string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &out))
	return out
}

func TestValidate(t *testing.T) {
	workspace(t, map[string]string{
		"profile.json": profileSchema,
		"good.yaml":    "name: Ada\nage: 30\n",
		"bad.toml":     "name = \"A\"\nage = 12\n",
	})

	t.Run("valid", func(t *testing.T) {
		res := execute(t, nil, "validate", "--schema", "profile.json", "--values", "good.yaml")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Validation passed")
	})

	t.Run("invalid json report", func(t *testing.T) {
		res := execute(t, nil, "validate", "--schema", "profile.json", "--values", "bad.toml", "--report", "json")
		require.Equal(t, report.ExitUser, res.code)
		assert.NotContains(t, res.stderr, "Error:")

		var decoded report.Result
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
		assert.False(t, decoded.Valid)
		require.Len(t, decoded.Errors, 2)
		assert.Equal(t, "name should be at least 2 characters", decoded.Errors[0].Message)
		assert.Equal(t, "age should be greater than or equal to 18", decoded.Errors[1].Message)
	})

	t.Run("report format from environment", func(t *testing.T) {
		t.Setenv("FORMSCHEMA_REPORT_FORMAT", "json")
		res := execute(t, nil, "validate", "--schema", "profile.json", "--values", "good.yaml")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, `"valid": true`)
	})

	t.Run("missing schema flag", func(t *testing.T) {
		res := execute(t, nil, "validate", "--values", "good.yaml")
		require.Equal(t, report.ExitUser, res.code)
		assert.Contains(t, res.stderr, "--schema is required")
	})

	t.Run("missing schema file", func(t *testing.T) {
		res := execute(t, nil, "validate", "--schema", "nope.json", "--values", "good.yaml")
		require.Equal(t, report.ExitUser, res.code)
		assert.Contains(t, res.stderr, "Check that the file exists")
	})
}

func TestValidate_OpenAPI(t *testing.T) {
	workspace(t, map[string]string{
		"pets.yaml": petsAPI,
		"pet.json":  `{"name": ""}`,
	})

	res := execute(t, nil, "validate", "--schema", "pets.yaml", "--values", "pet.json")
	require.Equal(t, report.ExitUser, res.code)
	assert.Contains(t, res.stderr, "Hint: available references: [#/components/schemas/Pet createPet]")

	res = execute(t, nil, "validate", "--schema", "pets.yaml", "--openapi", "createPet", "--values", "pet.json")
	require.Equal(t, report.ExitUser, res.code)
	assert.Contains(t, res.stdout, "name is required")
}

func TestInspect(t *testing.T) {
	workspace(t, map[string]string{
		"profile.json": profileSchema,
		"pets.yaml":    petsAPI,
	})

	t.Run("text", func(t *testing.T) {
		res := execute(t, nil, "inspect", "--schema", "profile.json")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)

		lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
		require.Len(t, lines, 6)
		assert.True(t, strings.HasPrefix(lines[0], "PATH"))
		assert.Regexp(t, `^name\s+string\s+yes\s+text$`, lines[1])
		assert.Regexp(t, `^newsletter\s+boolean\s+true\s+checkbox$`, lines[3])
		assert.Regexp(t, `^  address\.city\s+string\s+text$`, lines[5])
	})

	t.Run("json", func(t *testing.T) {
		res := execute(t, nil, "inspect", "--schema", "profile.json", "--json")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)

		var rows []fieldInfo
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
		require.Len(t, rows, 5)
		assert.Equal(t, "age", rows[1].Path)
		assert.Equal(t, "number", rows[1].Handler)
		assert.Equal(t, "fieldset", rows[3].Handler)
	})

	t.Run("references", func(t *testing.T) {
		res := execute(t, nil, "inspect", "--schema", "pets.yaml", "--references")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "#/components/schemas/Pet\ncreatePet\n", res.stdout)
	})
}

func TestSet(t *testing.T) {
	dir := workspace(t, map[string]string{
		"profile.json": profileSchema,
		"values.yaml":  "name: Ada\nage: 30\n",
	})

	t.Run("writes parsed values", func(t *testing.T) {
		res := execute(t, nil, "set", "--schema", "profile.json", "--values", "values.yaml",
			"age=42", "newsletter=yes", "address.city=Paris")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)

		assert.Equal(t, map[string]any{
			"name":       "Ada",
			"age":        float64(42),
			"newsletter": true,
			"address":    map[string]any{"city": "Paris"},
		}, decodeObject(t, res.stdout))
	})

	t.Run("writes yaml to file", func(t *testing.T) {
		out := filepath.Join(dir, "out.yaml")
		res := execute(t, nil, "set", "--schema", "profile.json", "--values", "values.yaml",
			"--format", "yaml", "-o", out, "name=Grace")
		require.Equal(t, report.ExitSuccess, res.code, res.stderr)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "age: 30\nname: Grace\n", string(data))
	})

	t.Run("invalid value", func(t *testing.T) {
		res := execute(t, nil, "set", "--schema", "profile.json", "--values", "values.yaml", "age=12")
		require.Equal(t, report.ExitUser, res.code)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "age should be greater than or equal to 18")
	})

	t.Run("unparsable value", func(t *testing.T) {
		res := execute(t, nil, "set", "--schema", "profile.json", "age=old")
		require.Equal(t, report.ExitUser, res.code)
		assert.Contains(t, res.stderr, `"old" is not a number`)
	})

	t.Run("unknown field", func(t *testing.T) {
		res := execute(t, nil, "set", "--schema", "profile.json", "nickname=Ada")
		require.Equal(t, report.ExitUser, res.code)
		assert.Contains(t, res.stderr, `unknown field "nickname"`)
	})

	t.Run("malformed assignment", func(t *testing.T) {
		res := execute(t, nil, "set", "--schema", "profile.json", "age")
		require.Equal(t, report.ExitUser, res.code)
		assert.Contains(t, res.stderr, "expected PATH=VALUE")
	})
}

type scriptedDriver struct {
	inputs  []string
	confirm []bool
	info    []string
}

func (d *scriptedDriver) next() string {
	if len(d.inputs) == 0 {
		return ""
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	return val
}

func (d *scriptedDriver) Input(context.Context, terminal.InputConfig) (string, error) {
	return d.next(), nil
}

func (d *scriptedDriver) Password(context.Context, terminal.InputConfig) (string, error) {
	return d.next(), nil
}

func (d *scriptedDriver) TextArea(context.Context, terminal.TextAreaConfig) (string, error) {
	return d.next(), nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg terminal.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return cfg.Default, nil
	}
	val := d.confirm[0]
	d.confirm = d.confirm[1:]
	return val, nil
}

func (d *scriptedDriver) Select(context.Context, terminal.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func TestFill(t *testing.T) {
	workspace(t, map[string]string{"profile.json": profileSchema})

	driver := &scriptedDriver{inputs: []string{"Ada", "16", "21", "Paris"}, confirm: []bool{false}}
	res := execute(t, driver, "fill", "--schema", "profile.json")
	require.Equal(t, report.ExitSuccess, res.code, res.stderr)

	assert.Equal(t, map[string]any{
		"name":       "Ada",
		"age":        float64(21),
		"newsletter": false,
		"address":    map[string]any{"city": "Paris"},
	}, decodeObject(t, res.stdout))
	assert.Contains(t, driver.info, "✗ age should be greater than or equal to 18")
	assert.Contains(t, driver.info, "== address ==")
}

func TestRootHelp(t *testing.T) {
	workspace(t, nil)
	res := execute(t, nil)
	require.Equal(t, report.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Usage:")

	res = execute(t, nil, "--version")
	require.Equal(t, report.ExitSuccess, res.code)
	assert.Equal(t, "formschema version "+version+"\n", res.stdout)
}

func TestInvalidConfig(t *testing.T) {
	workspace(t, map[string]string{"config.yaml": "log:\n  level: loud\n"})
	res := execute(t, nil, "inspect", "--schema", "profile.json")
	require.Equal(t, report.ExitUser, res.code)
	assert.Contains(t, res.stderr, "log.level")
}
