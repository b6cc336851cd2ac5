package catalog

// AirlineOption is one carrier used when synthesizing flight offers.
type AirlineOption struct {
	Name     string  `mapstructure:"name"`
	Code     string  `mapstructure:"code"`
	PriceMod float64 `mapstructure:"price_mod"`
	Stops    int     `mapstructure:"stops"`
}

// HotelType is one accommodation archetype used when synthesizing hotels.
type HotelType struct {
	Suffix   string  `mapstructure:"suffix"`
	Rating   float64 `mapstructure:"rating"`
	PriceMod float64 `mapstructure:"price_mod"`
}

// Tables is the full static route/city knowledge base. It is read-only after
// construction and injected into the catalog so alternate tables can be
// swapped without code changes.
type Tables struct {
	// RoutePrices is keyed by "city|city" in lower case; lookups try both
	// orderings. Values are base one-way fares in INR.
	RoutePrices map[string]float64 `mapstructure:"route_prices"`
	// RouteMinutes is the nonstop flight time per route, same keying.
	RouteMinutes        map[string]int `mapstructure:"route_minutes"`
	DefaultFlightPrice  float64        `mapstructure:"default_flight_price"`
	DefaultRouteMinutes int            `mapstructure:"default_route_minutes"`

	// HotelBasePrices is the per-night baseline by destination city.
	HotelBasePrices   map[string]float64 `mapstructure:"hotel_base_prices"`
	DefaultHotelPrice float64            `mapstructure:"default_hotel_price"`

	AirportCodes       map[string]string `mapstructure:"airport_codes"`
	DefaultAirportCode string            `mapstructure:"default_airport_code"`

	// Activities maps destination city -> category -> activity names.
	Activities        map[string]map[string][]string `mapstructure:"-"`
	DefaultActivities map[string][]string            `mapstructure:"-"`

	Airlines         []AirlineOption    `mapstructure:"-"`
	HotelTypes       []HotelType        `mapstructure:"-"`
	ClassMultipliers map[string]float64 `mapstructure:"class_multipliers"`

	// FallbackHotelCount is how many hotels a synthesis run produces.
	FallbackHotelCount int `mapstructure:"fallback_hotel_count"`
}

// DefaultTables returns the canonical knowledge base covering the major
// Indian domestic routes.
func DefaultTables() Tables {
	return Tables{
		RoutePrices: map[string]float64{
			"delhi|mumbai":        6000,
			"delhi|bangalore":     7000,
			"delhi|chennai":       8000,
			"delhi|kolkata":       5500,
			"delhi|goa":           7500,
			"delhi|hyderabad":     6500,
			"mumbai|bangalore":    4500,
			"mumbai|chennai":      5500,
			"mumbai|kolkata":      6500,
			"mumbai|goa":          3500,
			"mumbai|hyderabad":    4000,
			"bangalore|chennai":   3000,
			"bangalore|kolkata":   6000,
			"bangalore|goa":       4000,
			"bangalore|hyderabad": 2500,
			"chennai|kolkata":     5500,
			"chennai|hyderabad":   3500,
		},
		RouteMinutes: map[string]int{
			"delhi|mumbai":        130,
			"delhi|bangalore":     165,
			"delhi|chennai":       170,
			"delhi|kolkata":       125,
			"delhi|goa":           150,
			"delhi|hyderabad":     125,
			"mumbai|bangalore":    100,
			"mumbai|chennai":      115,
			"mumbai|kolkata":      160,
			"mumbai|goa":          70,
			"mumbai|hyderabad":    85,
			"bangalore|chennai":   60,
			"bangalore|kolkata":   150,
			"bangalore|goa":       75,
			"bangalore|hyderabad": 70,
			"chennai|kolkata":     135,
			"chennai|hyderabad":   75,
		},
		DefaultFlightPrice:  6000,
		DefaultRouteMinutes: 120,

		HotelBasePrices: map[string]float64{
			"mumbai":    4500,
			"delhi":     4000,
			"bangalore": 3500,
			"chennai":   3000,
			"kolkata":   2500,
			"goa":       5000,
			"hyderabad": 3200,
			"jaipur":    3500,
			"udaipur":   4500,
			"kochi":     4000,
			"manali":    3000,
		},
		DefaultHotelPrice: 3500,

		AirportCodes: map[string]string{
			"delhi":     "DEL",
			"new delhi": "DEL",
			"mumbai":    "BOM",
			"kolkata":   "CCU",
			"chennai":   "MAA",
			"bangalore": "BLR",
			"hyderabad": "HYD",
			"goa":       "GOI",
			"ahmedabad": "AMD",
			"pune":      "PNQ",
			"jaipur":    "JAI",
			"lucknow":   "LKO",
			"guwahati":  "GAU",
			"varanasi":  "VNS",
			"indore":    "IDR",
			"patna":     "PAT",
			"nagpur":    "NAG",
			"kochi":     "COK",
		},
		DefaultAirportCode: "DEL",

		Activities: map[string]map[string][]string{
			"Mumbai": {
				"sightseeing": {"Gateway of India", "Marine Drive", "Elephanta Caves", "Chhatrapati Shivaji Terminus"},
				"food":        {"Street food at Mohammed Ali Road", "Seafood at Koliwada", "Vada Pav tasting tour"},
				"culture":     {"Bollywood studio tour", "Crawford Market", "Dhobi Ghat"},
				"beaches":     {"Juhu Beach", "Versova Beach", "Aksa Beach"},
				"nightlife":   {"Colaba Causeway", "Bandra bars", "Marine Drive evening walk"},
			},
			"Delhi": {
				"sightseeing": {"Red Fort", "India Gate", "Qutub Minar", "Lotus Temple"},
				"food":        {"Chandni Chowk food walk", "Karim's for Mughlai", "Paranthe Wali Gali"},
				"culture":     {"National Museum", "Humayun's Tomb", "Akshardham Temple"},
				"shopping":    {"Connaught Place", "Khan Market", "Dilli Haat"},
				"heritage":    {"Old Delhi heritage walk", "Raj Ghat", "Jama Masjid"},
			},
			"Goa": {
				"beaches":   {"Baga Beach", "Calangute Beach", "Anjuna Beach", "Palolem Beach"},
				"nightlife": {"Tito's Club", "Club Cubana", "Beach shacks"},
				"culture":   {"Basilica of Bom Jesus", "Se Cathedral", "Fontainhas heritage walk"},
				"adventure": {"Water sports", "Dudhsagar Falls", "Spice plantation tour"},
				"food":      {"Goan fish curry", "Bebinca dessert", "Feni tasting"},
			},
			"Kolkata": {
				"culture":     {"Victoria Memorial", "Howrah Bridge", "Kalighat Temple"},
				"food":        {"Bengali sweets", "Fish market", "Street food tour"},
				"sightseeing": {"Indian Museum", "Dakshineswar Temple", "Park Street"},
				"heritage":    {"College Street book market", "Kumartuli pottery", "Marble Palace"},
			},
		},
		DefaultActivities: map[string][]string{
			"sightseeing": {"Local monuments", "City center", "Historical sites"},
			"culture":     {"Local museums", "Traditional markets", "Religious sites"},
			"food":        {"Local cuisine tasting", "Street food tour", "Traditional restaurants"},
			"adventure":   {"Local adventures", "Nature walks", "Outdoor activities"},
		},

		Airlines: []AirlineOption{
			{Name: "IndiGo", Code: "6E", PriceMod: 0.90, Stops: 0},
			{Name: "Air India", Code: "AI", PriceMod: 1.00, Stops: 0},
			{Name: "Vistara", Code: "UK", PriceMod: 1.20, Stops: 0},
			{Name: "SpiceJet", Code: "SG", PriceMod: 0.80, Stops: 1},
			{Name: "AkasaAir", Code: "QP", PriceMod: 0.85, Stops: 0},
		},
		HotelTypes: []HotelType{
			{Suffix: "Grand Hotel", Rating: 4.5, PriceMod: 1.5},
			{Suffix: "Palace", Rating: 4.8, PriceMod: 2.0},
			{Suffix: "Inn", Rating: 4.0, PriceMod: 0.8},
			{Suffix: "Resort", Rating: 4.3, PriceMod: 1.3},
			{Suffix: "Suites", Rating: 4.2, PriceMod: 1.1},
			{Suffix: "Lodge", Rating: 3.8, PriceMod: 0.7},
			{Suffix: "Heritage Hotel", Rating: 4.6, PriceMod: 1.7},
			{Suffix: "Business Hotel", Rating: 4.1, PriceMod: 1.0},
		},
		ClassMultipliers: map[string]float64{
			"economy":  1.0,
			"business": 2.5,
			"first":    4.0,
		},
		FallbackHotelCount: 5,
	}
}

// amenityPool is the full set of amenities synthesized hotels draw from.
var amenityPool = []struct{ Icon, Label string }{
	{"wifi", "Free WiFi"},
	{"pool", "Swimming Pool"},
	{"gym", "Fitness Center"},
	{"spa", "Spa & Wellness"},
	{"restaurant", "Restaurant"},
	{"parking", "Free Parking"},
	{"ac", "Air Conditioning"},
	{"room_service", "24/7 Room Service"},
	{"laundry", "Laundry Service"},
	{"concierge", "Concierge"},
	{"business", "Business Center"},
	{"airport", "Airport Shuttle"},
}
