package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrissnell/humifix/pkg/salt"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, []salt.Salt{salt.KCl, salt.H2O}, 0, 10, 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected header plus 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "KCl") || !strings.Contains(lines[0], "H2O") {
		t.Errorf("header = %q", lines[0])
	}
	// 0 °C is below the KCl range
	if !strings.Contains(lines[1], "NaN") || !strings.Contains(lines[1], "100.00") {
		t.Errorf("row for 0 °C = %q", lines[1])
	}
	if strings.Contains(lines[2], "NaN") {
		t.Errorf("row for 5 °C = %q", lines[2])
	}
}
