package config

import (
	"sort"

	"github.com/charmbracelet/log"
)

// DefaultLayout is used when no layout, or an unknown one, is configured.
const DefaultLayout = "qwerty"

// Layouts maps keyboard layout names to hint alphabets, most comfortable keys first.
var Layouts = map[string]string{
	"qwerty":             "asdfqwerzxcvjklmiuopghtybn",
	"qwerty-homerow":     "asdfjklgh",
	"qwerty-left-hand":   "asdfqwerzcxv",
	"qwerty-right-hand":  "jkluiopmyhn",
	"azerty":             "qsdfazerwxcvjklmuiopghtybn",
	"azerty-homerow":     "qsdfjkmgh",
	"azerty-left-hand":   "qsdfazerwxcv",
	"azerty-right-hand":  "jklmuiophyn",
	"qwertz":             "asdfqweryxcvjkluiopmghtzbn",
	"qwertz-homerow":     "asdfghjkl",
	"qwertz-left-hand":   "asdfqweryxcv",
	"qwertz-right-hand":  "jkluiopmhzn",
	"dvorak":             "aoeuqjkxpyhtnsgcrlmwvzfidb",
	"dvorak-homerow":     "aoeuhtnsid",
	"dvorak-left-hand":   "aoeupqjkyix",
	"dvorak-right-hand":  "htnsgcrlmwvz",
	"colemak":            "arstqwfpzxcvneioluymdhgjbk",
	"colemak-homerow":    "arstneiodh",
	"colemak-left-hand":  "arstqwfpzxcv",
	"colemak-right-hand": "neioluymjhk",
}

// AlphabetFor returns the alphabet of layout, falling back to qwerty.
func AlphabetFor(layout string) string {
	if alphabet, ok := Layouts[layout]; ok {
		return alphabet
	}
	log.Warnf("Unknown keyboard layout %q, using %s", layout, DefaultLayout)
	return Layouts[DefaultLayout]
}

// LayoutNames returns the known layouts sorted by name.
func LayoutNames() []string {
	names := make([]string, 0, len(Layouts))
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
