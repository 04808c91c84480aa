package out

import (
	_ "embed"
	"fmt"
	"slices"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"vclock/internal/modules/worldclock/domain"
	apperrors "vclock/internal/platform/errors"
)

//go:embed timezones.yaml
var embeddedDataset []byte

type dataset struct {
	Cities []domain.City `yaml:"cities"`
}

// EmbeddedCatalog serves the dataset compiled into the binary.
type EmbeddedCatalog struct {
	cities     []domain.City
	byID       map[string]int
	byTimezone map[string]int
}

func NewEmbeddedCatalog() (*EmbeddedCatalog, error) {
	return ParseCatalog(embeddedDataset)
}

// ParseCatalog builds a catalog from YAML. Every id must be unique and every
// timezone must load.
func ParseCatalog(raw []byte) (*EmbeddedCatalog, error) {
	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse city dataset: %w", err)
	}
	c := &EmbeddedCatalog{
		cities:     ds.Cities,
		byID:       make(map[string]int, len(ds.Cities)),
		byTimezone: make(map[string]int, len(ds.Cities)),
	}
	for i, city := range ds.Cities {
		if city.ID == "" || city.Timezone == "" {
			return nil, fmt.Errorf("city %d has no id or timezone: %w", i, apperrors.ErrInvalidInput)
		}
		if _, dup := c.byID[city.ID]; dup {
			return nil, fmt.Errorf("duplicate city id %q: %w", city.ID, apperrors.ErrDuplicate)
		}
		if _, err := time.LoadLocation(city.Timezone); err != nil {
			return nil, fmt.Errorf("city %q timezone %q: %w", city.ID, city.Timezone, err)
		}
		c.byID[city.ID] = i
		if _, seen := c.byTimezone[city.Timezone]; !seen {
			c.byTimezone[city.Timezone] = i
		}
	}
	return c, nil
}

func (c *EmbeddedCatalog) All() []domain.City {
	return slices.Clone(c.cities)
}

func (c *EmbeddedCatalog) ByID(id string) (domain.City, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.City{}, false
	}
	return c.cities[i], true
}

func (c *EmbeddedCatalog) ByTimezone(timezone string) (domain.City, bool) {
	i, ok := c.byTimezone[timezone]
	if !ok {
		return domain.City{}, false
	}
	return c.cities[i], true
}
