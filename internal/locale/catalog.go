package locale

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/protocatalog/internal/fsutil"
)

// Catalog holds `section.key -> text` entries for one language.
type Catalog struct {
	entries map[string]string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]string)}
}

// Set adds or replaces a text.
func (c *Catalog) Set(section, key, text string) {
	c.entries[section+"."+key] = text
}

// Lookup returns the text stored under a full `section.key`.
func (c *Catalog) Lookup(fullKey string) (string, bool) {
	if c == nil {
		return "", false
	}
	text, ok := c.entries[fullKey]
	return text, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Keys returns every full key in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, c.Len())
	if c != nil {
		for k := range c.entries {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every entry of other into c, replacing existing ones.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for k, v := range other.entries {
		c.entries[k] = v
	}
}

// Decode reads a YAML document of the form `section: {key: text}`.
func Decode(r io.Reader) (*Catalog, error) {
	var doc map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to decode locale document: %w", err)
	}

	c := New()
	for section, keys := range doc {
		for key, text := range keys {
			c.Set(section, key, text)
		}
	}
	return c, nil
}

// LoadFile reads a YAML locale file from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open locale file %s: %w", path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("locale file %s: %w", path, err)
	}
	return c, nil
}

// Load reads a locale file, or every .yaml file below a directory in
// lexical order. Later files override earlier ones.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list locale files in %s: %w", path, err)
	}
	c := New()
	for _, f := range files {
		part, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		c.Merge(part)
	}
	return c, nil
}
