package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dharmasatrya/tripform/internal/models"
)

//go:embed data/catalog.json
var defaultData []byte

const (
	TripOneWay    = "one-way"
	TripRoundTrip = "round-trip"
)

// Catalog is read-only reference data shared by every form instance.
// Accessors return copies so callers cannot mutate it.
type Catalog struct {
	destinations []string
	classes      []string
	tripTypes    []string
	relations    []string
	prices       map[string]float64
	currency     string
	emails       map[string]struct{}
}

// Data is the decoded shape of a catalog file.
type Data struct {
	Destinations   []string           `json:"destinations"`
	Classes        []string           `json:"classes"`
	TripTypes      []string           `json:"trip_types"`
	Relations      []string           `json:"relations"`
	Prices         map[string]float64 `json:"prices"`
	Currency       string             `json:"currency"`
	ExistingEmails []string           `json:"existing_emails"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a JSON file. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f Data
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Destinations) == 0 {
		return nil, models.ErrEmptyCatalog
	}
	return New(f), nil
}

// New builds a catalog from already decoded data. Missing trip types fall back
// to one-way/round-trip and a missing currency to EUR.
func New(f Data) *Catalog {
	c := &Catalog{
		destinations: clone(f.Destinations),
		classes:      clone(f.Classes),
		tripTypes:    clone(f.TripTypes),
		relations:    clone(f.Relations),
		prices:       make(map[string]float64, len(f.Prices)),
		currency:     f.Currency,
		emails:       make(map[string]struct{}, len(f.ExistingEmails)),
	}
	if len(c.tripTypes) == 0 {
		c.tripTypes = []string{TripOneWay, TripRoundTrip}
	}
	if c.currency == "" {
		c.currency = "EUR"
	}
	for k, v := range f.Prices {
		c.prices[k] = v
	}
	for _, e := range f.ExistingEmails {
		c.emails[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return c
}

func (c *Catalog) Destinations() []string { return clone(c.destinations) }
func (c *Catalog) Classes() []string      { return clone(c.classes) }
func (c *Catalog) TripTypes() []string    { return clone(c.tripTypes) }
func (c *Catalog) Relations() []string    { return clone(c.relations) }
func (c *Catalog) Currency() string       { return c.currency }

func (c *Catalog) Prices() map[string]float64 {
	out := make(map[string]float64, len(c.prices))
	for k, v := range c.prices {
		out[k] = v
	}
	return out
}

// PricePerPerson returns the table price for a class, or 0 when the class is unknown.
func (c *Catalog) PricePerPerson(class string) float64 {
	return c.prices[class]
}

// EmailExists reports whether address is already registered.
func (c *Catalog) EmailExists(address string) bool {
	_, ok := c.emails[strings.ToLower(strings.TrimSpace(address))]
	return ok
}

func (c *Catalog) Response() models.CatalogResponse {
	return models.CatalogResponse{
		Destinations: c.Destinations(),
		Classes:      c.Classes(),
		TripTypes:    c.TripTypes(),
		Relations:    c.Relations(),
		Prices:       c.Prices(),
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
