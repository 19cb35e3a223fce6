// Package compose maps Unicode code points to compose-sequence indices.
//
// The table data is embedded as YAML; the index of a code point is its
// position across the concatenated codepoint runs. The runtime engine
// carries the matching sequence table, so indices must stay stable: new
// code points are appended, never inserted.
package compose

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/remapd/remapd/internal/ir"
)

//go:embed compose.yaml
var rawTable []byte

type tableData struct {
	Codepoints []string `yaml:"codepoints"`
}

var index = load()

func load() map[rune]ir.ComposeIndex {
	var data tableData
	if err := yaml.Unmarshal(rawTable, &data); err != nil {
		panic("compose: bad embedded table: " + err.Error())
	}

	idx := make(map[rune]ir.ComposeIndex)
	n := 0
	for _, run := range data.Codepoints {
		for _, r := range run {
			if _, dup := idx[r]; dup {
				panic("compose: duplicate code point in embedded table: " + string(r))
			}
			idx[r] = ir.ComposeIndex(n)
			n++
		}
	}
	return idx
}

// Lookup returns the compose-sequence index for a code point.
func Lookup(r rune) (ir.ComposeIndex, bool) {
	i, ok := index[r]
	return i, ok
}

// Size reports the number of code points in the table.
func Size() int {
	return len(index)
}
