// Package catalog seeds a store from a YAML description of promotions and
// products.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/promotion"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

//go:embed default.yaml
var defaultCatalog []byte

// File is the YAML document layout.
type File struct {
	Promotions []PromotionSpec `yaml:"promotions"`
	Products   []ProductSpec   `yaml:"products"`
}

// PromotionSpec declares a promotion that products refer to by name.
type PromotionSpec struct {
	Name    string         `yaml:"name"`
	Kind    promotion.Kind `yaml:"kind"`
	Percent float64        `yaml:"percent,omitempty"`
}

// ProductSpec declares one catalog entry. Kind defaults to standard.
type ProductSpec struct {
	Name        string          `yaml:"name"`
	Kind        product.Kind    `yaml:"kind,omitempty"`
	Price       decimal.Decimal `yaml:"price"`
	Quantity    int             `yaml:"quantity,omitempty"`
	MaxPerOrder int             `yaml:"max_per_order,omitempty"`
	Promotion   string          `yaml:"promotion,omitempty"`
}

// LoadFile reads and builds the catalog at path.
func LoadFile(path string) (*store.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a YAML catalog and builds a store from it. Unknown fields are
// rejected.
func Load(r io.Reader) (*store.Store, error) {
	file, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(file)
}

// Default returns a fresh store holding the built-in catalog.
func Default() *store.Store {
	s, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return s
}

// Parse decodes a catalog document without building it.
func Parse(r io.Reader) (*File, error) {
	var file File

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return &file, nil
}

// Build creates every promotion once and attaches the shared values to the
// products that reference them.
func Build(file *File) (*store.Store, error) {
	promos := make(map[string]promotion.Promotion, len(file.Promotions))
	for _, spec := range file.Promotions {
		if _, dup := promos[spec.Name]; dup {
			return nil, commerce.NewErrorf(commerce.KindInvalidProductSpec, "Duplicate promotion %q", spec.Name)
		}
		p, err := promotion.New(spec.Kind, spec.Name, spec.Percent)
		if err != nil {
			return nil, err
		}
		promos[spec.Name] = p
	}

	s := store.New()
	for _, spec := range file.Products {
		p, err := newProduct(spec)
		if err != nil {
			return nil, err
		}
		if spec.Promotion != "" {
			promo, ok := promos[spec.Promotion]
			if !ok {
				return nil, commerce.NewErrorf(commerce.KindInvalidProductSpec,
					"Product %q refers to unknown promotion %q", spec.Name, spec.Promotion)
			}
			p.SetPromotion(promo)
		}
		s.AddProduct(p)
	}
	return s, nil
}

func newProduct(spec ProductSpec) (product.Product, error) {
	var (
		p   product.Product
		err error
	)
	switch spec.Kind {
	case product.KindStandard, "":
		p, err = product.NewStandard(spec.Name, spec.Price, spec.Quantity)
	case product.KindUnlimited:
		p, err = product.NewUnlimited(spec.Name, spec.Price)
	case product.KindCapped:
		p, err = product.NewCapped(spec.Name, spec.Price, spec.Quantity, spec.MaxPerOrder)
	default:
		return nil, commerce.NewErrorf(commerce.KindInvalidProductSpec, "Unknown product kind %q for %q", spec.Kind, spec.Name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
