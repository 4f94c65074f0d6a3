package variants

// SynonymGroup ties a canonical dish or ingredient term to the spellings
// people actually type for it.
type SynonymGroup struct {
	Canonical string
	Synonyms  []string
}

// DefaultSynonyms is the built-in free-text dictionary.
var DefaultSynonyms = []SynonymGroup{
	{"pizza", []string{"pizze", "pizzu", "pica", "pice", "picu", "pizzeria", "pizzas"}},
	{"burger", []string{"burgeri", "burgera", "hamburger", "hamburgeri", "cheeseburger", "pljeskavica"}},
	{"ćevapi", []string{"ćevapčići", "čevapi", "cevapcici", "cevape", "ćevapa", "kebab"}},
	{"juha", []string{"juhe", "juhu", "soup", "soups", "čorba", "varivo"}},
	{"tjestenina", []string{"pasta", "paste", "špageti", "spaghetti", "njoki", "gnocchi"}},
	{"riba", []string{"ribe", "ribu", "fish", "plodovi mora", "seafood"}},
	{"piletina", []string{"chicken", "pile", "piletinu", "pileći", "pohana piletina"}},
	{"salata", []string{"salate", "salatu", "salad", "salads"}},
	{"odrezak", []string{"odresci", "steak", "steaks", "biftek", "šnicla"}},
	{"kolač", []string{"kolači", "kolaci", "torta", "cake", "cakes", "dessert", "desert"}},
	{"sladoled", []string{"ice cream", "gelato", "sladoleda"}},
	{"doručak", []string{"breakfast", "dorucak", "brunch"}},
	{"sushi", []string{"suši", "maki", "nigiri"}},
	{"kava", []string{"coffee", "kave", "kavu", "espresso", "cappuccino"}},
	{"pivo", []string{"beer", "piva", "craft beer"}},
	{"vino", []string{"wine", "vina", "vinski"}},
}

// HighValueStems are domain keyword stems whose presence in a variant earns a
// ranking bonus.
var HighValueStems = []string{
	"pizz", "pica", "burger", "cevap", "juh", "soup", "corb",
	"pasta", "tjesten", "salat", "salad", "steak", "odrez", "sushi",
}

// suffixRule rewrites a word ending: the stem (word minus Suffix) is joined
// with each replacement.
type suffixRule struct {
	Suffix       string
	Replacements []string
}

// croatianRules are tried longest suffix first; only the first matching rule
// applies to a word.
var croatianRules = []suffixRule{
	{"ci", []string{"c", "ca", "ce", "k"}},
	{"he", []string{"ha", "hi", "hu"}},
	{"pe", []string{"pa", "pi", "pu"}},
	{"e", []string{"a", "i"}},
	{"i", []string{"", "a", "e"}},
	{"a", []string{"e", "i", "u"}},
}

// croatianConsonantEndings are appended to words ending in a consonant
// (burger -> burgeri, burgera).
var croatianConsonantEndings = []string{"i", "a"}

// englishSibilants take "es" in the plural.
var englishSibilants = []string{"ch", "sh", "x", "z", "s", "o"}

const vowels = "aeiou"
