package out

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vclock/internal/modules/worldclock/domain"
	apperrors "vclock/internal/platform/errors"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	t.Parallel()

	c, err := NewEmbeddedCatalog()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(c.All()), 50)

	for _, id := range domain.DefaultCityIDs {
		_, ok := c.ByID(id)
		assert.True(t, ok, "default city %s missing", id)
	}
	assert.Equal(t,
		[]string{"Africa", "Asia", "Europe", "North America", "Oceania", "South America"},
		domain.Continents(c.All()))
}

func TestEmbeddedCatalogLookups(t *testing.T) {
	t.Parallel()

	c, err := NewEmbeddedCatalog()
	require.NoError(t, err)

	tokyo, ok := c.ByID("tokyo")
	require.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", tokyo.Timezone)
	assert.Equal(t, "UTC+09:00", tokyo.UTCOffset)

	mumbai, ok := c.ByTimezone("Asia/Kolkata")
	require.True(t, ok)
	assert.Equal(t, "mumbai", mumbai.ID)

	_, ok = c.ByID("atlantis")
	assert.False(t, ok)
	_, ok = c.ByTimezone("Mars/Olympus_Mons")
	assert.False(t, ok)
}

func TestParseCatalogRejectsBadData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "missing timezone", raw: "cities:\n  - id: x\n", want: apperrors.ErrInvalidInput},
		{name: "duplicate id", raw: "cities:\n  - {id: x, timezone: UTC}\n  - {id: x, timezone: UTC}\n", want: apperrors.ErrDuplicate},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCatalog([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := ParseCatalog([]byte("cities:\n  - {id: x, timezone: Nowhere/Land}\n"))
	assert.Error(t, err)
	_, err = ParseCatalog([]byte("cities: [oops"))
	assert.Error(t, err)
}
