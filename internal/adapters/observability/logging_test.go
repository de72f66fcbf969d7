package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_AttachesServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod")
	l.Info().Msg("boot")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if line["service"] != "pousada-manicaca" {
		t.Fatalf("service field = %v", line["service"])
	}
}

func TestNewLogger_DevUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "dev")
	l.Info().Msg("boot")

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("dev logger must render console output, got JSON: %s", buf.String())
	}
}
