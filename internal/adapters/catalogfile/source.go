// Package catalogfile loads the perfume catalog from CSV or YAML files, or from
// the sample catalog compiled into the binary.
package catalogfile

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"scentquiz/internal/application"
	"scentquiz/internal/ports"
)

//go:embed default_catalog.csv
var defaultFS embed.FS

const defaultName = "default_catalog.csv"

// Open returns the source for path, chosen by extension. An empty path selects
// the embedded sample catalog.
func Open(path string) (ports.CatalogSource, error) {
	if path == "" {
		return Default(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVSource(path), nil
	case ".yaml", ".yml":
		return NewYAMLSource(path), nil
	default:
		return nil, &application.CatalogLoadError{
			Source: path,
			Err:    fmt.Errorf("unsupported catalog format %q (want .csv, .yaml or .yml)", filepath.Ext(path)),
		}
	}
}

// Default returns the sample catalog embedded in the binary
func Default() *CSVSource {
	return &CSVSource{
		name: "embedded:" + defaultName,
		open: func() (io.ReadCloser, error) {
			return defaultFS.Open(defaultName)
		},
	}
}

// DefaultBytes returns the raw embedded sample catalog, for seeding a new catalog file
func DefaultBytes() []byte {
	data, err := defaultFS.ReadFile(defaultName)
	if err != nil {
		panic(err)
	}
	return bytes.Clone(data)
}

func openFile(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func loadError(source string, err error) error {
	return &application.CatalogLoadError{Source: source, Err: err}
}
