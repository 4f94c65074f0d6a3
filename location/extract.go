package location

import (
	"regexp"
	"strconv"
	"strings"

	"menufind/textnorm"
)

var reLetterWords = regexp.MustCompile(`\p{L}+`)

// nearMePhrases signal that results should be relative to the device
// location. Matched against latinized text.
var nearMePhrases = []string{
	"near me", "nearby", "near by", "close to me", "close by", "around here",
	"around me", "in my area", "near my location", "closest to me", "nearest to me",
	"blizu mene", "blizu mog", "u blizini", "u mojoj blizini", "u mojoj okolici",
	"oko mene", "pored mene", "kraj mene", "najblize meni", "u mom kvartu",
}

var reNearMe = buildPhrasePattern(nearMePhrases)

func buildPhrasePattern(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

var radiusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`within\s+(\d+)\s*(?:km|kilomet)`),
	regexp.MustCompile(`(?:^|[^\p{L}])(?:do|up to)\s+(\d+)\s*km`),
	regexp.MustCompile(`u\s+radijusu\s+(?:od\s+)?(\d+)\s*km`),
	regexp.MustCompile(`(\d+)\s*km(?:$|[^\p{L}])`),
	regexp.MustCompile(`(\d+)\s*(?:kilometers?|kilometres?|kilo(?:metar|metra|metara|metri))`),
}

var (
	englishPrepositions  = map[string]bool{"in": true}
	croatianPrepositions = map[string]bool{"u": true, "na": true, "iz": true, "do": true}
	areaSuffixes         = map[string]bool{
		"area": true, "center": true, "centre": true, "centar": true, "centru": true, "centra": true,
	}
)

// placeStopwords never start or end a city mention.
var placeStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "your": true, "our": true,
	"this": true, "that": true, "town": true, "city": true, "old": true,
	"downtown": true, "here": true, "there": true, "tonight": true, "today": true,
	"and": true, "or": true, "with": true, "for": true,
	"near": true, "around": true, "area": true, "center": true, "centre": true,
	"grad": true, "gradu": true, "grada": true, "centar": true, "centru": true,
	"blizini": true, "okolici": true, "kvartu": true, "radijusu": true,
	"restoran": true, "restoranu": true, "i": true, "ili": true, "sa": true, "s": true,
}

// nonPlaceWords commonly follow "in" or "u/na/iz/do" in food searches without
// naming a place. Matched on the diacritic-free lowercase form.
var nonPlaceWords = map[string]bool{
	"style": true, "season": true, "bulk": true, "person": true, "stock": true,
	"time": true, "house": true, "english": true, "croatian": true, "minutes": true,
	"oven": true, "bread": true, "bun": true, "sauce": true, "miles": true,
	"kuca": true, "kuce": true, "kuci": true, "kucu": true, "tanko": true, "debelo": true,
	"brzinu": true, "pola": true, "podne": true, "ponoc": true, "jutro": true,
	"vecer": true, "veceri": true, "vikend": true, "vikendu": true, "subotu": true,
	"nedjelju": true, "ponedjeljak": true, "utorak": true, "srijedu": true,
	"cetvrtak": true, "petak": true, "meni": true, "mene": true, "posao": true,
	"poslu": true, "dostavu": true, "dostava": true, "ruke": true, "ruku": true,
	"van": true, "stol": true, "stolu": true, "terasi": true, "tanjur": true,
	"tanjuru": true, "lepinji": true, "kruhu": true, "peci": true, "pecnici": true,
	"rostilju": true, "zaru": true, "moru": true, "plazi": true, "jelovniku": true,
	"km": true, "kilometar": true, "kilometra": true, "kilometara": true,
	"kilometri": true, "kilometers": true, "eura": true, "eur": true,
}

func isPlaceWord(w string) bool {
	return !placeStopwords[w] && !nonPlaceWords[textnorm.StripDiacritics(w)]
}

// tokenize returns the lowercased letter runs of text.
func tokenize(text string) []string {
	return reLetterWords.FindAllString(strings.ToLower(text), -1)
}

// ExtractCity finds a city mention in text. Pattern families are tried in
// order: English "in X", Croatian "u/na/iz/do X", "X area/center", then a scan
// of every word and word pair against the city tables. The first family to
// produce a city wins and the result is canonicalized with NormalizeCityName.
func ExtractCity(text string) (string, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", false
	}

	if city, ok := afterPreposition(tokens, englishPrepositions); ok {
		return city, true
	}
	if city, ok := afterPreposition(tokens, croatianPrepositions); ok {
		return city, true
	}
	if city, ok := beforeAreaWord(tokens); ok {
		return city, true
	}
	return scanKnown(tokens)
}

func afterPreposition(tokens []string, preps map[string]bool) (string, bool) {
	for i, t := range tokens {
		if !preps[t] || i+1 >= len(tokens) {
			continue
		}
		end := i + 3
		if end > len(tokens) {
			end = len(tokens)
		}
		if city, ok := resolveCandidate(tokens[i+1 : end]); ok {
			return city, true
		}
	}
	return "", false
}

// beforeAreaWord only accepts names from the city tables: the word before
// "center" is too often a dish.
func beforeAreaWord(tokens []string) (string, bool) {
	for i, t := range tokens {
		if !areaSuffixes[t] || i == 0 {
			continue
		}
		if i >= 2 {
			if city, ok := lookupCity(tokens[i-2] + " " + tokens[i-1]); ok {
				return city, true
			}
		}
		if city, ok := lookupCity(tokens[i-1]); ok {
			return city, true
		}
	}
	return "", false
}

// resolveCandidate turns up to two words following a preposition into a city.
// Known names win; otherwise a single word of at least three letters that is
// neither a stopword nor a common non-place word is taken as a place outside
// the tables, so it can still be geocoded.
func resolveCandidate(words []string) (string, bool) {
	if len(words) == 0 || !isPlaceWord(words[0]) {
		return "", false
	}
	if len(words) > 1 && !placeStopwords[words[1]] {
		if city, ok := lookupCity(words[0] + " " + words[1]); ok {
			return city, true
		}
	}
	if city, ok := lookupCity(words[0]); ok {
		return city, true
	}
	if textnorm.RuneLen(words[0]) < 3 {
		return "", false
	}
	return NormalizeCityName(words[0]), true
}

func scanKnown(tokens []string) (string, bool) {
	for i := range tokens {
		if i+1 < len(tokens) {
			if city, ok := lookupCity(tokens[i] + " " + tokens[i+1]); ok {
				return city, true
			}
		}
		if city, ok := lookupCity(tokens[i]); ok {
			return city, true
		}
	}
	return "", false
}

// IsNearMe reports whether text asks for results around the device location.
func IsNearMe(text string) bool {
	return reNearMe.MatchString(textnorm.Latinize(text))
}

// ExtractRadiusKm returns an explicit search radius stated in text.
func ExtractRadiusKm(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, re := range radiusPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return n, true
	}
	return 0, false
}
