package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackQueryEscapesSearchTerm(t *testing.T) {
	assert.Equal(t, "search=red+shirt", fallbackQuery("red shirt"))

	// les métacaractères de query string ne doivent pas casser le parsing
	assert.Equal(t, "search=red%26blue", fallbackQuery("red&blue"))
	assert.Equal(t, "search=a%3Db", fallbackQuery("a=b"))
	assert.Equal(t, "search=50%25+laine", fallbackQuery("50% laine"))
}
