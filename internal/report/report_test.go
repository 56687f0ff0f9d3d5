package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"exam-points/internal/models"
)

func writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	color.NoColor = true
	path := writeResults(t, "ID;Exercise 1;Total\n1001;2;2.0\n1002;10;10.0\n1003;1;1.0\n")

	tests := []struct {
		name  string
		opts  Options
		order []string
	}{
		{"file order", Options{}, []string{"1001", "1002", "1003"}},
		{"numeric ascending", Options{SortColumn: "total"}, []string{"1003", "1001", "1002"}},
		{"numeric descending", Options{SortColumn: "Total", Descending: true}, []string{"1002", "1001", "1003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Path, opts.Exercises, opts.Comma = path, 1, ';'

			var buf bytes.Buffer
			if err := Render(&buf, opts); err != nil {
				t.Fatalf("Render: %v", err)
			}
			out := buf.String()

			if !strings.Contains(out, "(3 students)") {
				t.Errorf("missing title in:\n%s", out)
			}
			if !strings.Contains(out, "Exercise 1") {
				t.Fatalf("header not kept verbatim in:\n%s", out)
			}
			if !strings.Contains(out, "4.3") {
				t.Errorf("missing mean total in:\n%s", out)
			}

			body := out[strings.Index(out, "Exercise 1"):]
			last := -1
			for _, id := range tt.order {
				i := strings.Index(body, id)
				if i <= last {
					t.Errorf("%s out of order in:\n%s", id, body)
				}
				last = i
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	good := writeResults(t, "ID;Exercise 1;Total\n")
	bad := writeResults(t, "ID;Exercise 1\n")

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "none.csv")
		err := Render(&bytes.Buffer{}, Options{Path: missing, Exercises: 1, Comma: ';'})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want not exist", err)
		}
		if _, statErr := os.Stat(missing); statErr == nil {
			t.Error("Render created the results file")
		}
	})

	t.Run("header mismatch", func(t *testing.T) {
		err := Render(&bytes.Buffer{}, Options{Path: bad, Exercises: 1, Comma: ';'})
		if !errors.Is(err, models.ErrFormatMismatch) {
			t.Errorf("err = %v, want ErrFormatMismatch", err)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		err := Render(&bytes.Buffer{}, Options{Path: good, Exercises: 1, Comma: ';', SortColumn: "Grade"})
		if err == nil || !strings.Contains(err.Error(), "Grade") {
			t.Errorf("err = %v, want unknown column", err)
		}
	})
}
