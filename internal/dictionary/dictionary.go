// Package dictionary holds the canonical skill vocabulary used by every
// extraction call. The dictionary is loaded once at process start from a JSON
// data file and is immutable afterwards, so it can be shared read-only across
// concurrent requests.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed skills.json
var defaultData []byte

type entry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type file struct {
	Skills []entry `json:"skills"`
}

type Dictionary struct {
	// normalized surface form -> canonical name
	byAlias map[string]string
	// space-free surface form -> canonical name, for phrases whose tokens a
	// detector split apart ("node . js" vs "node.js")
	bySquashed map[string]string
	names      []string
}

// Load reads a skills JSON file from path, or the embedded default when path
// is empty. Every alias must resolve to exactly one canonical name; duplicates
// are a configuration error.
func Load(path string) (*Dictionary, error) {
	data := defaultData
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read skill dictionary: %w", err)
		}
		data = b
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse skill dictionary: %w", err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("skill dictionary is empty")
	}

	d := &Dictionary{
		byAlias:    make(map[string]string, len(f.Skills)*2),
		bySquashed: make(map[string]string, len(f.Skills)*2),
	}

	for _, e := range f.Skills {
		canonical := strings.TrimSpace(e.Name)
		if canonical == "" {
			return nil, fmt.Errorf("skill dictionary entry with empty name")
		}
		d.names = append(d.names, canonical)

		surfaces := append([]string{canonical}, e.Aliases...)
		for _, s := range surfaces {
			key := NormalizePhrase(s)
			if key == "" {
				continue
			}
			if prev, ok := d.byAlias[key]; ok && prev != canonical {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", key, prev, canonical)
			}
			d.byAlias[key] = canonical

			sq := squash(key)
			if prev, ok := d.bySquashed[sq]; ok && prev != canonical {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", sq, prev, canonical)
			}
			d.bySquashed[sq] = canonical
		}
	}

	sort.Strings(d.names)
	return d, nil
}

// Normalize maps a free-text phrase to its canonical skill name. The second
// return is false when the phrase is not a recognized skill; the caller
// decides whether to drop it.
func (d *Dictionary) Normalize(phrase string) (string, bool) {
	if d == nil {
		return "", false
	}
	key := NormalizePhrase(phrase)
	if key == "" {
		return "", false
	}
	if c, ok := d.byAlias[key]; ok {
		return c, true
	}
	if c, ok := d.bySquashed[squash(key)]; ok {
		return c, true
	}
	return "", false
}

// Names returns the canonical skill names in sorted order.
func (d *Dictionary) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dictionary) Size() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// NormalizePhrase lowercases, trims, and collapses internal whitespace.
func NormalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func squash(s string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(s)
}
