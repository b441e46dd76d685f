package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameToColorHexPassthrough(t *testing.T) {
	assert.Equal(t, "#ff0000", NameToColor("#ff0000"))
	assert.Equal(t, "#ff0000", NameToColor("ff0000"))
	assert.Equal(t, "#F0A", NameToColor("F0A"))
}

func TestNameToColorEmpty(t *testing.T) {
	assert.Equal(t, "", NameToColor(""))
	assert.Equal(t, "", NameToColor("   "))
}

func TestNameToColorBaseAndSynonym(t *testing.T) {
	blue := NameToColor("blue")
	assert.Equal(t, "#368ce2", blue)

	// "navy" est un synonyme direct de blue, pas un modificateur ici
	assert.Equal(t, blue, NameToColor("navy"))
	assert.Equal(t, blue, NameToColor("Blue"))
	assert.Equal(t, blue, NameToColor("  blue  "))
}

func TestNameToColorModifiers(t *testing.T) {
	assert.Equal(t, "#1a66b3", NameToColor("dark blue"))
	assert.NotEqual(t, NameToColor("blue"), NameToColor("light blue"))
}

func TestNameToColorUnknownIsDeterministic(t *testing.T) {
	a := NameToColor("zigzag chartreuse dream")
	b := NameToColor("zigzag chartreuse dream")
	assert.Equal(t, a, b)
	assert.Len(t, a, 7)
	assert.Equal(t, byte('#'), a[0])

	// deux textes différents ne doivent pas systématiquement se télescoper
	assert.NotEqual(t, NameToColor("qwerty"), NameToColor("azerty"))
}

func TestColorLabelFreeText(t *testing.T) {
	assert.Equal(t, "Forest Green", ColorLabel("forest-green"))
	assert.Equal(t, "Light Sky Blue", ColorLabel("light__sky-blue"))
	assert.Equal(t, "Zzz", ColorLabel("zzz"))
	assert.Equal(t, "", ColorLabel("  "))
}

func TestColorLabelHexToName(t *testing.T) {
	assert.Equal(t, "Blue", ColorLabel("#368ce2"))
	assert.Equal(t, "Black", ColorLabel("#000000"))
	assert.Equal(t, "White", ColorLabel("#ffffff"))
	assert.Equal(t, "Gray", ColorLabel("#808080"))
	assert.Equal(t, "Brown", ColorLabel("#8b4513"))
}

func TestHexToNiceNameGrayScale(t *testing.T) {
	assert.Equal(t, "Dark Gray", hexToNiceName("#404040"))
	assert.Equal(t, "Light Gray", hexToNiceName("#c0c0c0"))
}
