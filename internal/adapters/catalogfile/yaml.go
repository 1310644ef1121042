package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"scentquiz/internal/domain"
)

// YAMLSource reads a catalog written as a sequence of mappings. Keys follow the
// CSV header rules, so "Name", "name" and "image_url"/"Image URL" all match.
// Every item needs a name and a brand; notes may be a string or a list.
type YAMLSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewYAMLSource creates a source for the YAML file at path
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{name: path, open: openFile(path)}
}

// Name identifies the source in errors and logs
func (s *YAMLSource) Name() string { return s.name }

// Load reads and parses the whole file
func (s *YAMLSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := s.open()
	if err != nil {
		return nil, loadError(s.name, err)
	}
	defer rc.Close()

	var raw []map[string]any
	if err := yaml.NewDecoder(rc).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, loadError(s.name, err)
	}

	items := make([]domain.CatalogItem, len(raw))
	for i, fields := range raw {
		item, err := yamlItem(fields)
		if err != nil {
			return nil, loadError(s.name, fmt.Errorf("item %d: %w", i, err))
		}
		items[i] = item
	}
	return domain.NewCatalog(items), nil
}

func yamlItem(fields map[string]any) (domain.CatalogItem, error) {
	var item domain.CatalogItem
	for k, v := range fields {
		var dst *string
		switch normalizeHeader(k) {
		case "name":
			dst = &item.Name
		case "brand":
			dst = &item.Brand
		case "description":
			dst = &item.Description
		case "notes":
			dst = &item.Notes
		case "imageurl", "image":
			dst = &item.ImageURL
		default:
			continue
		}
		s, err := yamlString(v)
		if err != nil {
			return item, fmt.Errorf("field %s: %w", k, err)
		}
		*dst = s
	}

	switch {
	case item.Name == "":
		return item, errors.New("missing required field name")
	case item.Brand == "":
		return item, errors.New("missing required field brand")
	}
	return item, nil
}

func yamlString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case int, int64, uint64, float64, bool, time.Time:
		return fmt.Sprint(v), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			s, err := yamlString(e)
			if err != nil {
				return "", err
			}
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
