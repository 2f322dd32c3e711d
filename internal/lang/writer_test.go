package lang

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(config.OutputConfig{Dir: dir, Indent: 4})

	doc, err := NewDocument(testURN, "ru", map[string]string{
		"service:002": "Вентилятор",
	})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	t.Run("default path named by urn", func(t *testing.T) {
		path, err := w.Write(doc, "")
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		want := filepath.Join(dir, testURN+".json")
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file not written: %v", err)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(dir, "sub", "custom.json")
		got, err := w.Write(doc, path)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file not written: %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		path, err := w.Write(doc, "")
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}

		var got Document
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if !reflect.DeepEqual(got, doc) {
			t.Errorf("round trip = %v, want %v", got, doc)
		}
	})

	t.Run("empty document rejected", func(t *testing.T) {
		if _, err := w.Write(Document{}, ""); err == nil {
			t.Error("Write() of empty document succeeded")
		}
	})
}

func TestWriter_Marshal_PreservesNonASCII(t *testing.T) {
	w := NewWriter(config.OutputConfig{Dir: ".", Indent: 4})

	doc, err := NewDocument(testURN, "zh", map[string]string{
		"service:002": "风扇",
		"service:003": "Чайник <и> 壶",
	})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	data, err := w.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, literal := range []string{"风扇", "Чайник <и> 壶"} {
		if !strings.Contains(out, literal) {
			t.Errorf("output does not contain %q literally:\n%s", literal, out)
		}
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("output contains escaped unicode:\n%s", out)
	}
}

func TestWriter_Marshal_Deterministic(t *testing.T) {
	w := NewWriter(config.OutputConfig{Dir: ".", Indent: 2})

	doc, err := NewDocument(testURN, "ru", map[string]string{
		"service:002":              "B",
		"service:001":              "A",
		"service:002:property:001": "C",
	})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	first, err := w.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := w.Marshal(doc)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(next) != string(first) {
			t.Fatal("Marshal() output differs between runs")
		}
	}

	// Keys appear in sorted order
	if strings.Index(string(first), "service:001") > strings.Index(string(first), "service:002") {
		t.Error("object keys not sorted")
	}
}

func TestWriter_Marshal_Indent(t *testing.T) {
	w := NewWriter(config.OutputConfig{Dir: ".", Indent: 4})

	doc, err := NewDocument(testURN, "ru", map[string]string{"service:001": "A"})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	data, err := w.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if !strings.Contains(string(data), "\n    \"") {
		t.Errorf("output not indented with 4 spaces:\n%s", data)
	}
}
