package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Normalisation couleur : transforme une saisie libre ("dark navy blue",
// "#d4a5b2", "pêche") en hex affichable et en libellé lisible.

type hsl struct {
	h, s, l float64
}

var baseColors = map[string]hsl{
	"red":    {0, 75, 55},
	"orange": {30, 80, 55},
	"yellow": {50, 90, 60},
	"green":  {120, 70, 50},
	"teal":   {170, 70, 50},
	"cyan":   {190, 80, 55},
	"blue":   {210, 75, 55},
	"purple": {270, 70, 55},
	"violet": {285, 70, 55},
	"pink":   {320, 75, 65},
	"brown":  {25, 55, 40},
	"gray":   {0, 0, 50},
	"black":  {0, 0, 10},
	"white":  {0, 0, 95},
}

var colorSynonyms = map[string]string{
	"aqua":      "cyan",
	"turquoise": "teal",
	"sky":       "blue",
	"ocean":     "blue",
	"sea":       "teal",
	"mint":      "green",
	"lime":      "green",
	"olive":     "green",
	"forest":    "green",
	"navy":      "blue",
	"indigo":    "purple",
	"lavender":  "violet",
	"lilac":     "violet",
	"rose":      "pink",
	"magenta":   "pink",
	"fuchsia":   "pink",
	"chocolate": "brown",
	"coffee":    "brown",
	"sand":      "brown",
	"beige":     "brown",
	"gold":      "yellow",
	"silver":    "gray",
	"slate":     "gray",
	"charcoal":  "gray",
}

var (
	lightWords  = map[string]bool{"light": true, "pale": true, "soft": true, "pastel": true, "baby": true, "sky": true}
	darkWords   = map[string]bool{"dark": true, "deep": true, "navy": true}
	brightWords = map[string]bool{"bright": true, "vibrant": true, "neon": true, "hot": true, "intense": true}
)

var (
	hexRe   = regexp.MustCompile(`^#?[0-9a-fA-F]{3,8}$`)
	tokenRe = regexp.MustCompile(`[^a-z]+`)
	sepRe   = regexp.MustCompile(`[_-]+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

func hslToHex(h, s, l float64) string {
	s /= 100
	l /= 100
	k := func(n float64) float64 { return math.Mod(n+h/30, 12) }
	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		return l - a*math.Max(-1, math.Min(k(n)-3, math.Min(9-k(n), 1)))
	}
	r := int(math.Round(255 * f(0)))
	g := int(math.Round(255 * f(8)))
	b := int(math.Round(255 * f(4)))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// stringToColor : teinte déterministe pour un texte sans couleur connue
func stringToColor(str string) string {
	var hash int32
	for _, c := range str {
		hash = int32(c) + (hash << 5) - hash
	}
	hue := float64(hash)
	if hue < 0 {
		hue = -hue
	}
	hue = math.Mod(hue, 360)
	return hslToHex(hue, 65, 55)
}

// NameToColor convertit une saisie libre en valeur hex affichable.
// Un hex (avec ou sans #) passe tel quel.
func NameToColor(input string) string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return ""
	}
	if hexRe.MatchString(raw) {
		return "#" + strings.TrimPrefix(raw, "#")
	}

	tokens := tokenRe.Split(strings.ToLower(raw), -1)
	var bases []hsl
	var lightAdjust, satAdjust float64
	matched := false

	for _, t := range tokens {
		if t == "" {
			continue
		}
		matched = true
		if c, ok := baseColors[t]; ok {
			bases = append(bases, c)
			continue
		}
		if syn, ok := colorSynonyms[t]; ok {
			if c, ok := baseColors[syn]; ok {
				bases = append(bases, c)
				continue
			}
		}
		if lightWords[t] {
			lightAdjust += 15
			satAdjust -= 10
			continue
		}
		if darkWords[t] {
			lightAdjust -= 15
			continue
		}
		if brightWords[t] {
			satAdjust += 10
		}
	}

	if !matched || len(bases) == 0 {
		return stringToColor(raw)
	}

	var h, s, l float64
	for _, c := range bases {
		h += c.h
		s += c.s
		l += c.l
	}
	n := float64(len(bases))
	h /= n
	s = s/n + satAdjust
	l = l/n + lightAdjust

	s = math.Max(20, math.Min(100, s))
	l = math.Max(20, math.Min(80, l))

	return hslToHex(h, s, l)
}

func hexToRGB(hexStr string) (r, g, b int) {
	h := strings.TrimPrefix(hexStr, "#")
	if len(h) == 3 {
		var sb strings.Builder
		for _, c := range h {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		h = sb.String()
	}
	if len(h) > 6 {
		h = h[:6]
	}
	v, err := strconv.ParseInt(h, 16, 64)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 255), int(v >> 8 & 255), int(v & 255)
}

func rgbToHSL(ri, gi, bi int) (h, s, l float64) {
	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l * 100
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return h, s * 100, l * 100
}

func baseNameFromHue(h float64) string {
	switch {
	case h >= 0 && h < 15:
		return "Red"
	case h >= 15 && h < 35:
		return "Orange"
	case h >= 35 && h < 65:
		return "Yellow"
	case h >= 65 && h < 160:
		return "Green"
	case h >= 160 && h < 190:
		return "Teal"
	case h >= 190 && h < 230:
		return "Blue"
	case h >= 230 && h < 260:
		return "Indigo"
	case h >= 260 && h < 290:
		return "Purple"
	case h >= 290 && h < 330:
		return "Magenta"
	default:
		return "Pink"
	}
}

func hexToNiceName(hexInput string) string {
	clean := strings.TrimPrefix(hexInput, "#")
	if !hexRe.MatchString(clean) {
		return ""
	}

	h, s, l := rgbToHSL(hexToRGB(clean))

	if s < 10 {
		switch {
		case l > 85:
			return "White"
		case l < 20:
			return "Black"
		case l < 40:
			return "Dark Gray"
		case l > 70:
			return "Light Gray"
		default:
			return "Gray"
		}
	}

	if h >= 20 && h < 55 {
		switch {
		case l < 30:
			return "Dark Brown"
		case l < 55:
			return "Brown"
		case l > 75 && s < 60:
			return "Beige"
		case l > 65:
			return "Light Brown"
		default:
			return "Brown"
		}
	}

	base := baseNameFromHue(h)
	prefix := ""
	switch {
	case l < 25:
		prefix = "Dark "
	case l > 75:
		prefix = "Light "
	case s > 80 && l > 45 && l < 70:
		prefix = "Bright "
	}

	return strings.TrimSpace(prefix + base)
}

// ColorLabel retourne un libellé lisible : un hex devient un nom de couleur,
// un texte libre est remis en Title Case
func ColorLabel(input string) string {
	str := strings.TrimSpace(input)
	if str == "" {
		return ""
	}

	if hexRe.MatchString(str) {
		if name := hexToNiceName(str); name != "" {
			return name
		}
		return "Custom Color"
	}

	str = sepRe.ReplaceAllString(str, " ")
	str = spaceRe.ReplaceAllString(str, " ")
	words := strings.Split(strings.TrimSpace(str), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
