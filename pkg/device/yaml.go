package device

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadCatalog decodes a YAML catalog and overlays it on the built-ins.
// Entries with a new id are added; entries reusing a built-in id replace
// that record wholesale. Adding hardware therefore needs no recompile.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	var overlay Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil {
		return nil, fmt.Errorf("device: decode catalog: %w", err)
	}

	cat := DefaultCatalog()
	for id, m := range overlay.Sensors {
		cat.Sensors[id] = m
	}
	for id, m := range overlay.Positioning {
		cat.Positioning[id] = m
	}
	for id, m := range overlay.Cellular {
		cat.Cellular[id] = m
	}
	for id, m := range overlay.Mesh {
		cat.Mesh[id] = m
	}
	for id, m := range overlay.Coprocessors {
		cat.Coprocessors[id] = m
	}
	for id, m := range overlay.Batteries {
		cat.Batteries[id] = m
	}
	return cat, nil
}

// LoadCatalog reads a YAML catalog file and overlays it on the built-ins.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("device: open catalog: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}
