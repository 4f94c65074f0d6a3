package location

import (
	"sort"
	"strings"

	"menufind/models"
	"menufind/textnorm"
)

// knownCities are canonical lowercase city names recognized in free text.
var knownCities = []string{
	"zagreb", "split", "rijeka", "osijek", "zadar", "pula", "slavonski brod",
	"karlovac", "varaždin", "šibenik", "sisak", "dubrovnik", "velika gorica",
	"vinkovci", "vukovar", "bjelovar", "koprivnica", "čakovec", "požega",
	"đakovo", "samobor", "makarska", "poreč", "rovinj", "opatija", "trogir",
	"hvar", "korčula", "krk", "umag", "metković", "knin", "virovitica",
	"gospić", "nova gradiška", "solin", "kaštela", "zaprešić", "labin",
	"novalja", "omiš", "crikvenica",
}

// cityAliases maps inflected and colloquial forms to a canonical name.
var cityAliases = map[string]string{
	"zagrebu": "zagreb", "zagreba": "zagreb", "zg": "zagreb",
	"splitu": "split", "splita": "split",
	"rijeci": "rijeka", "rijeke": "rijeka", "rijeku": "rijeka",
	"osijeku": "osijek", "osijeka": "osijek",
	"zadru": "zadar", "zadra": "zadar",
	"puli": "pula", "pule": "pula", "pulu": "pula",
	"slavonskom brodu": "slavonski brod", "slavonskog broda": "slavonski brod", "sb": "slavonski brod",
	"karlovcu": "karlovac", "karlovca": "karlovac",
	"varaždinu": "varaždin", "varaždina": "varaždin",
	"šibeniku": "šibenik", "šibenika": "šibenik",
	"sisku": "sisak", "siska": "sisak",
	"dubrovniku": "dubrovnik", "dubrovnika": "dubrovnik",
	"velikoj gorici": "velika gorica", "velike gorice": "velika gorica",
	"vinkovcima": "vinkovci", "vukovaru": "vukovar", "bjelovaru": "bjelovar",
	"koprivnici": "koprivnica", "čakovcu": "čakovec", "požegi": "požega",
	"đakovu": "đakovo", "samoboru": "samobor", "makarskoj": "makarska",
	"poreču": "poreč", "rovinju": "rovinj", "opatiji": "opatija",
	"trogiru": "trogir", "hvaru": "hvar", "korčuli": "korčula", "krku": "krk",
	"umagu": "umag", "metkoviću": "metković", "kninu": "knin",
	"virovitici": "virovitica", "gospiću": "gospić", "solinu": "solin",
	"kaštelima": "kaštela", "zaprešiću": "zaprešić", "labinu": "labin",
	"novalji": "novalja", "omišu": "omiš", "crikvenici": "crikvenica",
}

type fallbackCity struct {
	lat, lng float64
	address  string
}

// fallbackCoordinates back the resolver when the geocoding service is not
// configured or fails.
var fallbackCoordinates = map[string]fallbackCity{
	"zagreb":         {45.8150, 15.9819, "Zagreb, Croatia"},
	"split":          {43.5081, 16.4402, "Split, Croatia"},
	"rijeka":         {45.3271, 14.4422, "Rijeka, Croatia"},
	"osijek":         {45.5550, 18.6955, "Osijek, Croatia"},
	"zadar":          {44.1194, 15.2314, "Zadar, Croatia"},
	"pula":           {44.8666, 13.8496, "Pula, Croatia"},
	"slavonski brod": {45.1603, 18.0156, "Slavonski Brod, Croatia"},
	"karlovac":       {45.4929, 15.5553, "Karlovac, Croatia"},
	"varaždin":       {46.3057, 16.3366, "Varaždin, Croatia"},
	"šibenik":        {43.7350, 15.8952, "Šibenik, Croatia"},
	"dubrovnik":      {42.6507, 18.0944, "Dubrovnik, Croatia"},
	"sisak":          {45.4851, 16.3731, "Sisak, Croatia"},
	"velika gorica":  {45.7125, 16.0756, "Velika Gorica, Croatia"},
}

var (
	knownSet      = make(map[string]string)
	knownStripped = make(map[string]string)
	aliasStripped = make(map[string]string)
)

func init() {
	for _, c := range knownCities {
		knownSet[c] = c
		knownStripped[textnorm.StripDiacritics(c)] = c
	}
	for alias, c := range cityAliases {
		aliasStripped[textnorm.StripDiacritics(alias)] = c
	}
}

func cleanCity(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// lookupCity resolves name through the alias and known-city tables, exact
// form first and diacritic-stripped form second.
func lookupCity(name string) (string, bool) {
	lower := cleanCity(name)
	if lower == "" {
		return "", false
	}
	stripped := textnorm.StripDiacritics(lower)
	if c, ok := cityAliases[lower]; ok {
		return c, true
	}
	if c, ok := aliasStripped[stripped]; ok {
		return c, true
	}
	if c, ok := knownSet[lower]; ok {
		return c, true
	}
	if c, ok := knownStripped[stripped]; ok {
		return c, true
	}
	return "", false
}

// NormalizeCityName maps a city mention to its canonical name. Unknown names
// come back lowercased and trimmed, diacritics kept.
func NormalizeCityName(name string) string {
	if c, ok := lookupCity(name); ok {
		return c
	}
	return cleanCity(name)
}

// IsKnownCity reports whether name resolves through the city tables.
func IsKnownCity(name string) bool {
	_, ok := lookupCity(name)
	return ok
}

// FallbackCities lists the cities that have built-in coordinates.
func FallbackCities() []string {
	out := make([]string, 0, len(fallbackCoordinates))
	for c := range fallbackCoordinates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func fallbackFor(city string) (models.GeocodeResult, bool) {
	f, ok := fallbackCoordinates[city]
	if !ok {
		return models.GeocodeResult{}, false
	}
	return models.GeocodeResult{
		Latitude:         f.lat,
		Longitude:        f.lng,
		FormattedAddress: f.address,
		CanonicalCity:    city,
		Source:           models.GeocodeFallback,
	}, true
}
