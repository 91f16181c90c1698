package normalize

// colorAliases maps short authoring aliases to canonical color names.
var colorAliases = map[string]string{
	"grn":  "green",
	"ylw":  "yellow",
	"org":  "orange",
	"prpl": "purple",
	"blu":  "blue",
}

// colorHex maps color names without a stable representation in the target
// tool's palette to fixed hex values. Names absent from this table (and
// hex strings) pass through unchanged.
var colorHex = map[string]string{
	"yellow": "#EAB839",
	"orange": "#FF9830",
	"purple": "#B877D9",
}

// Color canonicalizes a color string: short aliases are expanded, mapped
// names become their fixed hex value, and everything else passes through
// unchanged.
func Color(c string) string {
	if name, ok := colorAliases[c]; ok {
		c = name
	}
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return c
}
