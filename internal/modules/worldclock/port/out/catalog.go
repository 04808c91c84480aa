package out

import "vclock/internal/modules/worldclock/domain"

// CityCatalog is the read-only timezone dataset.
type CityCatalog interface {
	All() []domain.City
	ByID(id string) (domain.City, bool)
	ByTimezone(timezone string) (domain.City, bool)
}
