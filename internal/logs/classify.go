package logs

import (
	"io"
	"os"
	"strings"
)

// Category is the coarse outcome a saved log is filed under.
type Category string

const (
	CategoryError   Category = "error"
	CategoryWarning Category = "warning"
	CategorySuccess Category = "success"
	CategoryOther   Category = "other"
)

// Filters lists the categories a listing can be narrowed to.
var Filters = []Category{CategoryError, CategoryWarning, CategorySuccess}

// ParseCategory accepts a filter name; "" and "all" mean no filter.
func ParseCategory(name string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(name))); c {
	case "", "all":
		return "", true
	case CategoryError, CategoryWarning, CategorySuccess, CategoryOther:
		return c, true
	}
	return "", false
}

// classifyHeadSize is how much of a log is inspected.
const classifyHeadSize = 4096

// categoryNeedles are checked in order; the first category with a match wins.
var categoryNeedles = []struct {
	category Category
	needles  []string
}{
	{CategoryError, []string{"error", "exception", "traceback"}},
	{CategoryWarning, []string{"warning"}},
	{CategorySuccess, []string{"success", "done"}},
}

// ClassifyText files text by the keywords it contains, case-insensitively.
func ClassifyText(text string) Category {
	text = strings.ToLower(text)
	for _, c := range categoryNeedles {
		for _, n := range c.needles {
			if strings.Contains(text, n) {
				return c.category
			}
		}
	}
	return CategoryOther
}

// Classify reads the head of the file at path and classifies it. Unreadable
// files are CategoryOther.
func Classify(path string) Category {
	f, err := os.Open(path)
	if err != nil {
		return CategoryOther
	}
	defer f.Close()

	head := make([]byte, classifyHeadSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return CategoryOther
	}
	return ClassifyText(string(head[:n]))
}
