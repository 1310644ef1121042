package catalogfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"scentquiz/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads a catalog with a header row. Columns are matched by name,
// ignoring case: Name, Brand and Description are required, Notes and
// Image URL are optional.
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewCSVSource creates a source for the CSV file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{name: path, open: openFile(path)}
}

// Name identifies the source in errors and logs
func (s *CSVSource) Name() string { return s.name }

// Load reads and parses the whole file
func (s *CSVSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := s.open()
	if err != nil {
		return nil, loadError(s.name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, loadError(s.name, err)
	}

	items, err := parseCSV(decode(data))
	if err != nil {
		return nil, loadError(s.name, err)
	}
	return domain.NewCatalog(items), nil
}

// decode strips a UTF-8 BOM and falls back to ISO-8859-1 for input that is not UTF-8
func decode(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

type columns struct {
	name, brand, description, notes, imageURL int
}

func parseCSV(data []byte) ([]domain.CatalogItem, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var items []domain.CatalogItem
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(items)+2, err)
		}
		items = append(items, domain.CatalogItem{
			Name:        cell(record, cols.name),
			Brand:       cell(record, cols.brand),
			Description: cell(record, cols.description),
			Notes:       cell(record, cols.notes),
			ImageURL:    cell(record, cols.imageURL),
		})
	}
	return items, nil
}

func mapColumns(header []string) (columns, error) {
	cols := columns{-1, -1, -1, -1, -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "name":
			cols.name = i
		case "brand":
			cols.brand = i
		case "description":
			cols.description = i
		case "notes":
			cols.notes = i
		case "imageurl", "image":
			cols.imageURL = i
		}
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, "Name")
	}
	if cols.brand < 0 {
		missing = append(missing, "Brand")
	}
	if cols.description < 0 {
		missing = append(missing, "Description")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// normalizeHeader lower-cases a header and drops spaces, dashes and underscores,
// so "Image URL", "image_url" and "ImageURL" are the same column
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
