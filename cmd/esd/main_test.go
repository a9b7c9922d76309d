package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/data-power-io/esd-documents/esd"
	"github.com/data-power-io/esd-documents/internal/config"
	"github.com/data-power-io/esd-documents/logging"
	"github.com/data-power-io/esd-documents/metrics"
	"github.com/data-power-io/esd-documents/schema"
	"github.com/data-power-io/esd-documents/transcode"
)

type testApp struct {
	*app
	stdin  *bytes.Buffer
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, values map[string]string) *testApp {
	t.Helper()

	cfg := config.FromMap(values)
	logger := logging.NewNop()
	ta := &testApp{
		stdin:  &bytes.Buffer{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	ta.app = &app{
		cfg:    cfg,
		logger: logger,
		tc: transcode.NewTranscoder(logger, metrics.NewCodecMetrics("test-cli"), transcode.Options{
			XMLIndent:      cfg.XMLIndent(),
			ArrowBatchSize: cfg.ArrowBatchSize(),
		}),
		stdin:  ta.stdin,
		stdout: ta.stdout,
		stderr: ta.stderr,
	}
	return ta
}

func (ta *testApp) exec(args ...string) int {
	return ta.run(context.Background(), args[0], args[1:])
}

func taxcodeJSON(n int) string {
	records := make([]string, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, fmt.Sprintf(`{"keyTaxcodeID":"T%d","taxcode":"GST"}`, i))
	}
	return `{"resultStatus":1,"message":"export","dataRecords":[` + strings.Join(records, ",") + `]}`
}

func TestRun_Commands(t *testing.T) {
	t.Run("types lists every document type", func(t *testing.T) {
		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("types"))

		lines := strings.Split(strings.TrimSpace(ta.stdout.String()), "\n")
		require.Len(t, lines, len(esd.SupportedDocumentTypes))
		for i, docType := range esd.SupportedDocumentTypes {
			assert.Equal(t, string(docType), lines[i])
		}
	})

	t.Run("help prints usage", func(t *testing.T) {
		for _, cmd := range []string{"help", "-h", "--help"} {
			ta := newTestApp(t, nil)
			assert.Equal(t, 0, ta.exec(cmd))
			assert.Contains(t, ta.stdout.String(), "usage: esd <command>")
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 2, ta.exec("bogus"))
		assert.Contains(t, ta.stderr.String(), `unknown command "bogus"`)
		assert.Empty(t, ta.stdout.String())
	})

	t.Run("subcommand help exits cleanly", func(t *testing.T) {
		for _, cmd := range []string{"convert", "schema", "sample", "paginate"} {
			ta := newTestApp(t, nil)
			assert.Equal(t, 0, ta.exec(cmd, "-h"), cmd)
			assert.Contains(t, ta.stderr.String(), "-type", cmd)
		}
	})

	t.Run("bad flags fail", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("sample", "-type", "taxcode", "-n", "many"))
		assert.Equal(t, 1, ta.exec("convert", "-unknown"))
	})
}

func TestRun_Schema(t *testing.T) {
	t.Run("json description", func(t *testing.T) {
		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("schema", "-type", "taxcode"))

		var desc struct {
			Type   string `json:"type"`
			Fields []struct {
				Name     string `json:"name"`
				Presence string `json:"presence"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &desc))
		assert.Equal(t, "object", desc.Type)
		require.NotEmpty(t, desc.Fields)
		assert.Equal(t, "keyTaxcodeID", desc.Fields[0].Name)
	})

	t.Run("ipc output is a readable Arrow schema", func(t *testing.T) {
		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("schema", "-type", "taxcode", "-format", "ipc"))

		manager := schema.NewArrowSchemaManager()
		got, err := manager.ArrowSchemaFromBytes(ta.stdout.Bytes())
		require.NoError(t, err)

		want, err := manager.RecordSchema(&esd.Taxcode{}, nil)
		require.NoError(t, err)
		require.Equal(t, want.NumFields(), got.NumFields())
		for i := 0; i < want.NumFields(); i++ {
			assert.Equal(t, want.Field(i).Name, got.Field(i).Name)
		}
	})

	t.Run("describes an Arrow document file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "taxcodes.arrow")

		ta := newTestApp(t, nil)
		ta.stdin.WriteString(taxcodeJSON(3))
		require.Equal(t, 0, ta.exec("convert", "-type", "taxcode", "-from", "json", "-to", "arrow", "-out", path))

		ta = newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("schema", "-in", path))
		assert.Contains(t, ta.stdout.String(), `"keyTaxcodeID"`)
	})

	t.Run("unknown type", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("schema", "-type", "invoice"))
		assert.Empty(t, ta.stdout.String())
	})

	t.Run("unknown output format", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("schema", "-type", "taxcode", "-format", "yaml"))
	})

	t.Run("input that is not Arrow", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.arrow")
		require.NoError(t, os.WriteFile(path, []byte("not arrow"), 0o644))

		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("schema", "-in", path))
	})
}

func TestRun_Sample(t *testing.T) {
	t.Run("json to stdout", func(t *testing.T) {
		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("sample", "-type", "price-level", "-n", "2"))

		var doc esd.PriceLevelDocument
		require.NoError(t, schema.UnmarshalJSON(ta.stdout.Bytes(), &doc))
		assert.Len(t, doc.DataRecords, 2)
		assert.Equal(t, esd.ResultSuccess, doc.ResultStatus)
		assert.Equal(t, "2", doc.Configs["count"])
	})

	t.Run("xml to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.xml")

		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("sample", "-type", "taxcode", "-n", "1", "-format", "xml", "-out", path))
		assert.Empty(t, ta.stdout.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<?xml"))
		assert.Contains(t, string(data), "<taxcode>GST1</taxcode>")
	})

	t.Run("unknown format", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("sample", "-type", "taxcode", "-format", "yaml"))
	})

	t.Run("unknown type", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.Equal(t, 1, ta.exec("sample", "-type", "invoice"))
	})
}

func TestRun_Convert(t *testing.T) {
	t.Run("json to xml and back", func(t *testing.T) {
		ta := newTestApp(t, nil)
		ta.stdin.WriteString(taxcodeJSON(2))
		require.Equal(t, 0, ta.exec("convert", "-type", "taxcode"))

		xmlOut := ta.stdout.String()
		assert.True(t, strings.HasPrefix(xmlOut, "<?xml"))
		assert.Contains(t, xmlOut, "<keyTaxcodeID>T1</keyTaxcodeID>")
		assert.Contains(t, xmlOut, "\n  <message>export</message>")

		back := newTestApp(t, nil)
		back.stdin.WriteString(xmlOut)
		require.Equal(t, 0, back.exec("convert", "-type", "taxcode", "-from", "xml", "-to", "json"))

		var doc esd.TaxcodeDocument
		require.NoError(t, schema.UnmarshalJSON(back.stdout.Bytes(), &doc))
		require.Len(t, doc.DataRecords, 2)
		assert.Equal(t, "T0", doc.DataRecords[0].KeyTaxcodeID)
		assert.Equal(t, "export", doc.Message)
	})

	t.Run("xml indentation follows config", func(t *testing.T) {
		ta := newTestApp(t, map[string]string{"ESD_XML_INDENT": "false"})
		ta.stdin.WriteString(taxcodeJSON(1))
		require.Equal(t, 0, ta.exec("convert", "-type", "taxcode"))
		assert.Contains(t, ta.stdout.String(), "<document><resultStatus>1</resultStatus>")
	})

	t.Run("file input and output", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "in.json")
		out := filepath.Join(dir, "out.xml")
		require.NoError(t, os.WriteFile(in, []byte(taxcodeJSON(1)), 0o644))

		ta := newTestApp(t, nil)
		require.Equal(t, 0, ta.exec("convert", "-type", "taxcode", "-in", in, "-out", out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<keyTaxcodeID>T0</keyTaxcodeID>")
	})

	t.Run("failures", func(t *testing.T) {
		tests := []struct {
			name  string
			args  []string
			stdin string
		}{
			{"unknown input format", []string{"convert", "-type", "taxcode", "-from", "yaml"}, taxcodeJSON(1)},
			{"unknown output format", []string{"convert", "-type", "taxcode", "-to", "csv"}, taxcodeJSON(1)},
			{"unknown type", []string{"convert", "-type", "invoice"}, taxcodeJSON(1)},
			{"missing input file", []string{"convert", "-type", "taxcode", "-in", filepath.Join(t.TempDir(), "missing.json")}, ""},
			{"malformed input", []string{"convert", "-type", "taxcode"}, `{"dataRecords":`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ta := newTestApp(t, nil)
				ta.stdin.WriteString(tt.stdin)
				assert.Equal(t, 1, ta.exec(tt.args...))
			})
		}
	})
}

func TestRun_Paginate(t *testing.T) {
	readPage := func(t *testing.T, path string) esd.TaxcodeDocument {
		t.Helper()
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc esd.TaxcodeDocument
		require.NoError(t, schema.UnmarshalJSON(data, &doc))
		return doc
	}

	t.Run("writes numbered page files", func(t *testing.T) {
		dir := t.TempDir()
		ta := newTestApp(t, nil)
		ta.stdin.WriteString(taxcodeJSON(5))
		require.Equal(t, 0, ta.exec("paginate", "-type", "taxcode", "-page-size", "2", "-out-dir", dir))

		files, err := filepath.Glob(filepath.Join(dir, "*"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "taxcode-page-0001.json"),
			filepath.Join(dir, "taxcode-page-0002.json"),
			filepath.Join(dir, "taxcode-page-0003.json"),
		}, files)

		last := readPage(t, files[2])
		require.Len(t, last.DataRecords, 1)
		assert.Equal(t, "T4", last.DataRecords[0].KeyTaxcodeID)
		assert.Equal(t, "3", last.Configs[esd.ConfigPage])
		assert.Equal(t, "export", last.Message)
	})

	t.Run("page size defaults to config", func(t *testing.T) {
		dir := t.TempDir()
		ta := newTestApp(t, map[string]string{"ESD_PAGE_SIZE": "4"})
		ta.stdin.WriteString(taxcodeJSON(5))
		require.Equal(t, 0, ta.exec("paginate", "-type", "taxcode", "-out-dir", dir))

		files, err := filepath.Glob(filepath.Join(dir, "taxcode-page-*.json"))
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Len(t, readPage(t, files[0]).DataRecords, 4)
	})

	t.Run("creates nested output directory and uses format extension", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "pages", "xml")
		ta := newTestApp(t, nil)
		ta.stdin.WriteString(`<document><resultStatus>1</resultStatus><dataRecords>` +
			`<dataRecord><keyTaxcodeID>A</keyTaxcodeID></dataRecord>` +
			`</dataRecords></document>`)
		require.Equal(t, 0, ta.exec("paginate", "-type", "taxcode", "-format", "xml", "-page-size", "10", "-out-dir", dir))

		_, err := os.Stat(filepath.Join(dir, "taxcode-page-0001.xml"))
		assert.NoError(t, err)
	})

	t.Run("invalid page size", func(t *testing.T) {
		dir := t.TempDir()
		ta := newTestApp(t, nil)
		ta.stdin.WriteString(taxcodeJSON(2))
		assert.Equal(t, 1, ta.exec("paginate", "-type", "taxcode", "-page-size", "0", "-out-dir", dir))

		files, err := filepath.Glob(filepath.Join(dir, "*"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
