package language

import (
	"regexp"

	xlanguage "golang.org/x/text/language"
)

var italianTokenPattern = regexp.MustCompile(`(?i)[a-zàèéìòóù'’]+`)

var italianStopWords = []string{
	"che", "e", "di", "a", "da", "in", "un", "una", "il", "lo", "la", "i", "gli", "le",
	"mi", "ti", "si", "ci", "vi", "non", "per", "con", "su", "ma", "o", "ora", "poi",
	"sono", "sei", "era", "hai", "ho", "ha", "abbiamo", "avete", "hanno", "del", "della", "dei", "delle",
	"al", "allo", "alla", "ai", "agli", "alle", "nel", "nello", "nella", "nei", "negli", "nelle",
	"un'", "l'", "d'", "c'", "m'", "t'", "s'", "e'", "è",
}

// Truncated masculine forms and their full dictionary forms.
var italianApocope = map[string]string{
	"buon":      "buono",
	"bel":       "bello",
	"quel":      "quello",
	"gran":      "grande",
	"san":       "santo",
	"nessun":    "nessuno",
	"alcun":     "alcuno",
	"ciascun":   "ciascuno",
	"ognun":     "ognuno",
	"qualcun":   "qualcuno",
	"tal":       "tale",
	"qual":      "quale",
	"signor":    "signore",
	"dottor":    "dottore",
	"professor": "professore",
}

// Plural and gender endings, longest first so -che/-ghi win over -e/-i.
var italianSuffixRules = []SuffixRule{
	{From: "che", To: "ca"},
	{From: "ghe", To: "ga"},
	{From: "chi", To: "co"},
	{From: "ghi", To: "go"},
	{From: "i", To: "o"},
	{From: "i", To: "e"},
	{From: "i", To: "a"},
	{From: "e", To: "a"},
	{From: "e", To: "o"},
	{From: "a", To: "o"},
	{From: "o", To: "a"},
}

func italianProfile() Profile {
	stop := make(map[string]struct{}, len(italianStopWords))
	for _, w := range italianStopWords {
		stop[w] = struct{}{}
	}
	apocope := make(map[string]string, len(italianApocope))
	for k, v := range italianApocope {
		apocope[k] = v
	}
	rules := make([]SuffixRule, len(italianSuffixRules))
	copy(rules, italianSuffixRules)
	return Profile{
		Code:         "it",
		StopWords:    stop,
		Apocope:      apocope,
		SuffixRules:  rules,
		TokenPattern: italianTokenPattern,
		tag:          xlanguage.Italian,
	}
}
