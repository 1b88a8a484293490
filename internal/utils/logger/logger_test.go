package logger

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

var lineRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - report written$`)

func TestTextLineShape(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Infof("report written")

	line := strings.TrimSuffix(buf.String(), "\n")
	if !lineRe.MatchString(line) {
		t.Fatalf("log line %q does not match date - message shape", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Debugf("dropped")
	log.Infof("dropped too")
	log.Warnf("kept")
	log.Errorf("kept too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected line count: got %d want 2 (%q)", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "kept") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Errorf("disk check failed")

	var payload map[string]string
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if payload["level"] != "ERROR" {
		t.Fatalf("unexpected level: got %q want %q", payload["level"], "ERROR")
	}
	if payload["msg"] != "disk check failed" {
		t.Fatalf("unexpected msg: %q", payload["msg"])
	}
}
