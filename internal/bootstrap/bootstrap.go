// Package bootstrap loads the initial catalog dataset into the store at
// startup. Two formats are supported: the JSON products container and a flat
// CSV export. Rows that fail to parse are skipped with a log line so one bad
// record does not block the whole dataset.
package bootstrap

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
)

// Inserter is the write half of the product store.
type Inserter interface {
	Insert(ctx context.Context, p domain.Product) error
}

// Container is the top-level shape of the JSON dataset file.
type Container struct {
	Products []domain.Product `json:"products"`
}

// Load reads the dataset at path and inserts its products. The format is
// picked by extension (.json or .csv). It returns the number of products
// inserted.
func Load(ctx context.Context, path string, store Inserter, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var products []domain.Product
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		products, err = parseJSON(f)
	case ".csv":
		products, err = parseCSV(f, logger)
	default:
		return 0, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, p := range products {
		if err := store.Insert(ctx, p); err != nil {
			logger.Printf("bootstrap: skipping id=%s: %v", p.ID, err)
			continue
		}
		inserted++
	}
	logger.Printf("bootstrap: loaded %d of %d products from %s", inserted, len(products), path)
	return inserted, nil
}

func parseJSON(r io.Reader) ([]domain.Product, error) {
	var container Container
	if err := json.NewDecoder(r).Decode(&container); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return container.Products, nil
}

// parseCSV reads rows with columns id, title, description, price,
// currency_id, condition, status, thumbnail, brand. The brand column becomes
// a BRAND attribute.
func parseCSV(r io.Reader, logger *log.Logger) ([]domain.Product, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas

	headers, err := csvr.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var products []domain.Product
	for {
		record, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return products, fmt.Errorf("read row: %w", err)
		}
		p, err := parseRow(record, index)
		if err != nil {
			logger.Printf("bootstrap: skipping row: %v", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	id := pick(record, index, "id")
	title := pick(record, index, "title")
	priceStr := pick(record, index, "price")

	if id == "" || title == "" || priceStr == "" {
		return domain.Product{}, fmt.Errorf("missing required fields for id %q", id)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price for id %q: %w", id, err)
	}

	status := pick(record, index, "status")
	if status == "" {
		status = domain.StatusActive
	}
	condition := pick(record, index, "condition")
	if condition == "" {
		condition = domain.ConditionNotSpecified
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:          id,
		Title:       title,
		Description: pick(record, index, "description"),
		Price:       price,
		CurrencyID:  pick(record, index, "currency_id"),
		Condition:   condition,
		Status:      status,
		Thumbnail:   pick(record, index, "thumbnail"),
		DateCreated: now,
		LastUpdated: now,
	}
	if brand := pick(record, index, "brand"); brand != "" {
		p.Attributes = []domain.Attribute{{ID: domain.AttributeBrand, Name: "Marca", ValueName: brand}}
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
