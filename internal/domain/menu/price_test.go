package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$3.50", FormatUSD(3.5))
	assert.Equal(t, "$18.99", FormatUSD(18.99))
}

func TestFormatPrice(t *testing.T) {
	zero := 0.0
	assert.Equal(t, "$0.00", FormatPrice(&zero))
	assert.Equal(t, "", FormatPrice(nil))
}

func TestPriceRange(t *testing.T) {
	assert.Equal(t, "$0.00 - $18.50", PriceRange([]float64{4.25, 0, 18.5, 3.5}))
	assert.Equal(t, "$5.00", PriceRange([]float64{5}))
	assert.Equal(t, "$5.00", PriceRange([]float64{5, 5, 5}))

	empty := PriceRange(nil)
	assert.Equal(t, "", empty)
	assert.False(t, strings.Contains(empty, "Inf"))
	assert.False(t, strings.Contains(empty, "NaN"))
}
