package search

import "strings"

// irregularNouns maps plural forms that suffix rules get wrong.
var irregularNouns = map[string]string{
	"children":   "child",
	"men":        "man",
	"women":      "woman",
	"people":     "people",
	"feet":       "foot",
	"teeth":      "tooth",
	"mice":       "mouse",
	"geese":      "goose",
	"analyses":   "analysis",
	"bases":      "basis",
	"crises":     "crisis",
	"theses":     "thesis",
	"hypotheses": "hypothesis",
	"criteria":   "criterion",
	"phenomena":  "phenomenon",
	"indices":    "index",
	"matrices":   "matrix",
	"vertices":   "vertex",
	"appendices": "appendix",
	"leaves":     "leaf",
	"lives":      "life",
	"wives":      "wife",
	"knives":     "knife",
	"halves":     "half",
	"selves":     "self",
}

// ieNouns are singulars ending in "ie", whose plurals the "-ies" rule would
// turn into "-y".
var ieNouns = wordSet(
	"movie", "cookie", "tie", "pie", "lie", "die", "calorie", "rookie",
	"selfie", "zombie", "genie", "hoodie", "goalie", "newbie", "freebie",
	"smoothie", "prairie", "sortie", "brownie", "lassie", "auntie",
	"boogie", "techie", "foodie", "birdie", "budgie", "specie", "yuppie",
)

// invariantNouns end in "s" but are already singular.
var invariantNouns = wordSet(
	"news", "series", "species", "physics", "mathematics", "economics",
	"statistics", "analytics", "ethics", "logistics", "electronics", "robotics",
	"graphics", "kubernetes", "aws", "sales", "chaos", "canvas", "atlas", "alias",
	"bias", "gas", "lens", "ios", "macos", "redis", "jenkins", "postgres", "sass",
	"less", "express", "nodejs", "vuejs", "reactjs", "nextjs", "js", "css", "cms",
	"saas", "paas", "iaas", "ops", "devops", "mlops", "gitops", "yes", "this",
	"always", "perhaps", "thus", "across", "various", "previous", "numerous",
	"serious", "famous",
)

// Lemmatize reduces a lowercase noun to its dictionary form. Unknown words
// are returned unchanged; regular plurals are singularized by suffix rules.
func Lemmatize(word string) string {
	if len(word) <= 3 {
		return word
	}
	if base, ok := irregularNouns[word]; ok {
		return base
	}
	if _, ok := invariantNouns[word]; ok {
		return word
	}
	if !strings.HasSuffix(word, "s") {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ss"),
		strings.HasSuffix(word, "us"),
		strings.HasSuffix(word, "is"),
		strings.HasSuffix(word, "ous"):
		return word
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		if _, ok := ieNouns[word[:len(word)-1]]; ok {
			return word[:len(word)-1]
		}
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"),
		strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"):
		return word[:len(word)-2]
	default:
		return word[:len(word)-1]
	}
}
