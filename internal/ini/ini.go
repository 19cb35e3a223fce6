package ini

import (
	"fmt"
	"strings"
)

// Entry is one `key = value` line. HasValue is false for bare lines with
// no '='.
type Entry struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	HasValue bool   `json:"has_value"`
	Line     int    `json:"line"`
}

// Section is one `[name]` block with its entries in file order.
type Section struct {
	Name    string  `json:"name"`
	Line    int     `json:"line"`
	Entries []Entry `json:"entries"`
}

// File is the ordered result of tokenizing one config text.
type File struct {
	Sections []Section `json:"sections"`
}

// Parse tokenizes config text. Lines outside any section are ignored;
// a malformed section header is an error.
func Parse(text string) (*File, error) {
	f := &File{}
	var cur *Section

	for i, raw := range strings.Split(text, "\n") {
		lnum := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header: %s", lnum, line)
			}
			f.Sections = append(f.Sections, Section{
				Name: line[1 : len(line)-1],
				Line: lnum,
			})
			cur = &f.Sections[len(f.Sections)-1]
			continue
		}

		if cur == nil {
			continue
		}

		key, val, found := strings.Cut(line, "=")
		ent := Entry{
			Key:  strings.TrimSpace(key),
			Line: lnum,
		}
		if found {
			ent.Value = strings.TrimSpace(val)
			ent.HasValue = true
		}
		cur.Entries = append(cur.Entries, ent)
	}

	return f, nil
}
