package persona

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// catalogFile mirrors the on-disk TOML layout:
//
//	[[persona]]
//	id = "teacher-einstein"
//	name = "爱因斯坦老师"
//	...
//	[persona.template]
//	prefix = "..."
type catalogFile struct {
	Personas []Persona `toml:"persona"`
}

// LoadFile reads a persona catalog from a TOML file.
func LoadFile(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona catalog %s: %w", path, err)
	}
	return Decode(string(data))
}

// Decode parses a TOML persona catalog. Unknown keys are rejected so that
// typos in field names do not silently drop framing text.
func Decode(data string) ([]Persona, error) {
	var file catalogFile
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidCatalog, strings.Join(keys, ", "))
	}

	return file.Personas, nil
}
