package taxonomy

import "menufind/models"

// SynonymTable maps a canonical taxonomy label (English or Croatian name as
// stored upstream) to the extra strings that should resolve to it.
type SynonymTable map[string][]string

// DefaultSynonyms is the curated dictionary compiled into the program.
var DefaultSynonyms = map[models.Category]SynonymTable{
	models.FoodTypes: {
		"pizza":       {"pizze", "pizzu", "pica", "pizzas"},
		"burger":      {"burgeri", "burgere", "hamburger", "hamburgeri", "burgers"},
		"grill":       {"roštilj", "rostilj", "ćevapi", "cevapi", "grilled", "bbq", "barbecue"},
		"seafood":     {"plodovi mora", "riba", "ribe", "fish", "školjke", "skampi"},
		"pasta":       {"tjestenina", "paste", "špageti", "spaghetti", "rizoto", "risotto"},
		"sushi":       {"suši", "japanska hrana", "japanese"},
		"desserts":    {"deserti", "desert", "kolači", "kolaci", "slastice", "dessert", "sweets"},
		"traditional": {"tradicionalno", "domaća kuhinja", "domaca kuhinja", "domaće", "local food"},
		"italian":     {"talijanska", "talijanska kuhinja", "italian food"},
		"chinese":     {"kineska", "kineska hrana", "chinese food"},
		"mexican":     {"meksička", "meksicka", "tacos", "burrito"},
		"salads":      {"salate", "salata", "salad"},
		"soups":       {"juhe", "juha", "soup", "čorba", "varivo"},
		"steak":       {"odrezak", "steakovi", "biftek", "steaks"},
		"sandwiches":  {"sendviči", "sendvici", "sendvič", "sandwich"},
		"ice cream":   {"sladoled", "sladoledi", "gelato"},
	},
	models.EstablishmentTypes: {
		"restaurant": {"restoran", "restorani", "restaurants"},
		"cafe":       {"kafić", "kafic", "caffe bar", "kava", "coffee shop", "café"},
		"bar":        {"pub", "pivnica", "bars"},
		"fast food":  {"brza hrana", "fast-food", "zalogajnica"},
		"bakery":     {"pekara", "pekarnica", "pekarna"},
		"pizzeria":   {"pizzerija", "picerija", "pizzerije"},
		"tavern":     {"konoba", "konobe", "gostionica", "krčma"},
		"bistro":     {"bistroi", "bistroa"},
		"food truck": {"food trucks", "kombi s hranom"},
	},
	models.EstablishmentPerks: {
		"outdoor seating":   {"terasa", "terrace", "terasom", "vanjska terasa", "na otvorenom", "outdoor"},
		"parking":           {"parkiralište", "parkiraliste", "free parking", "besplatni parking"},
		"wifi":              {"wi-fi", "wi fi", "besplatni wifi", "internet"},
		"pet friendly":      {"kućni ljubimci", "psi dozvoljeni", "dog friendly", "pets allowed"},
		"delivery":          {"dostava", "dostava hrane", "home delivery"},
		"takeaway":          {"za van", "take away", "take-away", "takeout"},
		"live music":        {"glazba uživo", "glazba uzivo", "live svirka"},
		"kids friendly":     {"za djecu", "dječji kutak", "djecji kutak", "child friendly", "family friendly"},
		"wheelchair access": {"pristup invalidima", "invalidska kolica", "accessible"},
		"reservations":      {"rezervacija", "rezervacije", "booking"},
		"sea view":          {"pogled na more", "uz more", "ocean view"},
	},
	models.MealTypes: {
		"breakfast": {"doručak", "dorucak"},
		"lunch":     {"ručak", "rucak", "gablec", "marenda"},
		"dinner":    {"večera", "vecera", "supper"},
		"snack":     {"užina", "uzina", "grickalice", "snacks"},
		"brunch":    {"kasni doručak"},
	},
	models.DietaryTypes: {
		"vegan":        {"veganski", "veganska", "vegansko", "vegana", "biljno"},
		"vegetarian":   {"vegetarijanski", "vegetarijanska", "vegetarijansko", "veggie"},
		"gluten free":  {"bez glutena", "gluten-free", "bezglutensko"},
		"halal":        {"halal hrana"},
		"kosher":       {"košer", "koser"},
		"lactose free": {"bez laktoze", "lactose-free"},
		"keto":         {"keto dijeta", "low carb"},
	},
	models.Allergens: {
		"gluten":    {"glutena"},
		"nuts":      {"orašasti plodovi", "orasasti plodovi", "orasi", "lješnjaci", "peanuts", "kikiriki"},
		"milk":      {"mlijeko", "mliječni proizvodi", "dairy"},
		"eggs":      {"jaja", "jaje", "egg"},
		"fish":      {"riba"},
		"shellfish": {"rakovi", "školjkaši", "crustaceans"},
		"soy":       {"soja", "soya"},
		"sesame":    {"sezam"},
		"celery":    {"celer"},
		"mustard":   {"senf", "gorušica"},
	},
	models.PriceCategories: {
		"cheap":     {"jeftino", "jeftini", "povoljno", "budget", "affordable"},
		"moderate":  {"srednje", "umjereno", "mid-range"},
		"expensive": {"skupo", "luksuzno", "fine dining", "premium"},
	},
}
