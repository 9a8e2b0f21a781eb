package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.yaml.in/yaml/v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrUnknownFabricType is returned when a fabric type is not in the catalog.
var ErrUnknownFabricType = errors.New("unknown fabric type")

// Catalog is the product configuration the pricing engine reads.
type Catalog struct {
	Product          string             `yaml:"product"`
	FabricTypes      []string           `yaml:"fabric_types"`
	LightFilterTypes []string           `yaml:"light_filter_types"`
	HeavyDutyArea    int                `yaml:"heavy_duty_area"`
	Validation       Validation         `yaml:"validation"`
	AccessoryPrices  map[string]float64 `yaml:"accessory_prices"`
	AccessoryCosts   map[string]float64 `yaml:"accessory_costs"`
	Fees             Fees               `yaml:"fees"`
	PriceMatrices    map[string]Matrix  `yaml:"price_matrices"`
}

// Validation bounds keypad input, in millimetres.
type Validation struct {
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
}

// Fees are the F2 surcharge unit prices.
type Fees struct {
	Wifi     float64 `yaml:"wifi"`
	Delivery float64 `yaml:"delivery"`
	Install  float64 `yaml:"install"`
	Removal  float64 `yaml:"removal"`
}

// Matrix prices one fabric type. Prices is indexed [drop][width].
type Matrix struct {
	AliasFor string      `yaml:"alias_for,omitempty"`
	Widths   []int       `yaml:"widths,omitempty"`
	Drops    []int       `yaml:"drops,omitempty"`
	Prices   [][]float64 `yaml:"prices,omitempty"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads the catalog at path, or the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.FabricTypes) == 0 {
		return errors.New("catalog: no fabric types")
	}
	for name, m := range c.PriceMatrices {
		if m.AliasFor != "" {
			target, ok := c.PriceMatrices[m.AliasFor]
			if !ok {
				return fmt.Errorf("catalog: matrix %s aliases missing %s", name, m.AliasFor)
			}
			if target.AliasFor != "" {
				return fmt.Errorf("catalog: matrix %s aliases another alias %s", name, m.AliasFor)
			}
			continue
		}
		if len(m.Prices) != len(m.Drops) {
			return fmt.Errorf("catalog: matrix %s has %d price rows for %d drops", name, len(m.Prices), len(m.Drops))
		}
		if !sort.IntsAreSorted(m.Widths) || !sort.IntsAreSorted(m.Drops) {
			return fmt.Errorf("catalog: matrix %s buckets must be ascending", name)
		}
	}
	return nil
}

// PriceMatrix returns the matrix for fabricType, following an alias.
func (c *Catalog) PriceMatrix(fabricType string) (*Matrix, bool) {
	m, ok := c.PriceMatrices[fabricType]
	if !ok {
		return nil, false
	}
	if m.AliasFor != "" {
		if m, ok = c.PriceMatrices[m.AliasFor]; !ok {
			return nil, false
		}
	}
	return &m, true
}

// AccessoryPrice returns the sale price for a price key.
func (c *Catalog) AccessoryPrice(key string) (float64, bool) {
	p, ok := c.AccessoryPrices[key]
	return p, ok
}

// AccessoryCost returns the cost price for a price key.
func (c *Catalog) AccessoryCost(key string) (float64, bool) {
	p, ok := c.AccessoryCosts[key]
	return p, ok
}

// IsLightFilterEligible reports whether fabricType accepts light-filter fabric.
func (c *Catalog) IsLightFilterEligible(fabricType string) bool {
	for _, t := range c.LightFilterTypes {
		if t == fabricType {
			return true
		}
	}
	return false
}

// ResolveFabricType matches input against the configured types ignoring case.
// On a miss the error names the closest type.
func (c *Catalog) ResolveFabricType(input string) (string, error) {
	needle := strings.ToUpper(strings.TrimSpace(input))
	if needle == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownFabricType)
	}
	best, bestDist := "", -1
	for _, t := range c.FabricTypes {
		upper := strings.ToUpper(t)
		if upper == needle {
			return t, nil
		}
		if d := levenshtein.ComputeDistance(needle, upper); bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownFabricType, input)
	}
	return "", fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownFabricType, input, best)
}
