package extract

// Lookup tables for country canonicalization. Alias keys are stored in
// folded form (lowercase, diacritics stripped); see foldCountry.

// countryAliases maps folded alternate spellings, translations, typos and
// development-bank codes to canonical English names.
var countryAliases = map[string]string{
	// Abbreviations
	"usa":           "United States",
	"us":            "United States",
	"u s a":         "United States",
	"united states of america": "United States",
	"uk":            "United Kingdom",
	"great britain": "United Kingdom",
	"uae":           "United Arab Emirates",
	"drc":           "Democratic Republic of the Congo",
	"rdc":           "Democratic Republic of the Congo",
	"dr congo":      "Democratic Republic of the Congo",
	"congo dr":      "Democratic Republic of the Congo",
	"republic of korea": "South Korea",
	"korea":         "South Korea",
	"korea rep":     "South Korea",
	"russian federation": "Russia",
	"lao pdr":       "Laos",
	"lao people s democratic republic": "Laos",
	"viet nam":      "Vietnam",
	"cote d ivoire": "Ivory Coast",
	"cote divoire":  "Ivory Coast",
	"ivory coast":   "Ivory Coast",
	"burma":         "Myanmar",
	"cabo verde":    "Cape Verde",
	"czechia":       "Czech Republic",
	"turkiye":       "Turkey",
	"kyrgyz republic": "Kyrgyzstan",
	"slovak republic": "Slovakia",
	"macedonia":     "North Macedonia",
	"swaziland":     "Eswatini",
	"timor leste":   "East Timor",
	"east timor":    "East Timor",
	"palestine":     "Palestinian Territories",
	"west bank and gaza": "Palestinian Territories",

	// Common typos seen in source data
	"bostwana":  "Botswana",
	"nigiria":   "Nigeria",
	"cameroun":  "Cameroon",
	"tanzanie":  "Tanzania",
	"ethiopie":  "Ethiopia",

	// French names
	"republique democratique du congo": "Democratic Republic of the Congo",
	"maroc":      "Morocco",
	"tunisie":    "Tunisia",
	"algerie":    "Algeria",
	"egypte":     "Egypt",
	"mauritanie": "Mauritania",
	"tchad":      "Chad",
	"guinee":     "Guinea",
	"senegal":    "Senegal",
	"cote d ivoire republique de": "Ivory Coast",
	"burkina":    "Burkina Faso",
	"comores":    "Comoros",
	"djibouti republique de": "Djibouti",
	"haiti republique d": "Haiti",
	"liban":      "Lebanon",
	"madagasikara": "Madagascar",

	// Spanish / Portuguese names
	"mexico df":            "Mexico",
	"brasil":               "Brazil",
	"republica dominicana": "Dominican Republic",
	"peru republica del":   "Peru",
	"espana":               "Spain",
	"mocambique":           "Mozambique",

	// Development-bank operation codes
	"kgz": "Kyrgyzstan",
	"png": "Papua New Guinea",
	"prc": "China",
	"uzb": "Uzbekistan",
	"taj": "Tajikistan",
	"aze": "Azerbaijan",
	"kaz": "Kazakhstan",
	"mon": "Mongolia",
	"ino": "Indonesia",
	"phi": "Philippines",
	"sri": "Sri Lanka",
	"ban": "Bangladesh",
	"nep": "Nepal",
	"pak": "Pakistan",
	"afg": "Afghanistan",
	"cam": "Cambodia",
	"vie": "Vietnam",
	"mya": "Myanmar",
	"tim": "East Timor",
	"fij": "Fiji",
	"sol": "Solomon Islands",
	"van": "Vanuatu",
	"sam": "Samoa",
	"ton": "Tonga",
	"reg": "Regional",
}

// isoAlpha2 maps ISO 3166-1 alpha-2 codes to canonical names. Covers the
// countries that actually appear in procurement sources.
var isoAlpha2 = map[string]string{
	"af": "Afghanistan", "al": "Albania", "dz": "Algeria", "ao": "Angola",
	"ar": "Argentina", "am": "Armenia", "au": "Australia", "at": "Austria",
	"az": "Azerbaijan", "bd": "Bangladesh", "by": "Belarus", "be": "Belgium",
	"bj": "Benin", "bo": "Bolivia", "ba": "Bosnia and Herzegovina",
	"bw": "Botswana", "br": "Brazil", "bg": "Bulgaria", "bf": "Burkina Faso",
	"bi": "Burundi", "kh": "Cambodia", "cm": "Cameroon", "ca": "Canada",
	"cv": "Cape Verde", "cf": "Central African Republic", "td": "Chad",
	"cl": "Chile", "cn": "China", "co": "Colombia", "km": "Comoros",
	"cg": "Republic of the Congo", "cd": "Democratic Republic of the Congo",
	"cr": "Costa Rica", "ci": "Ivory Coast", "hr": "Croatia", "cu": "Cuba",
	"cy": "Cyprus", "cz": "Czech Republic", "dk": "Denmark", "dj": "Djibouti",
	"do": "Dominican Republic", "ec": "Ecuador", "eg": "Egypt",
	"sv": "El Salvador", "er": "Eritrea", "ee": "Estonia", "sz": "Eswatini",
	"et": "Ethiopia", "fj": "Fiji", "fi": "Finland", "fr": "France",
	"ga": "Gabon", "gm": "Gambia", "ge": "Georgia", "de": "Germany",
	"gh": "Ghana", "gr": "Greece", "gt": "Guatemala", "gn": "Guinea",
	"gw": "Guinea-Bissau", "gy": "Guyana", "ht": "Haiti", "hn": "Honduras",
	"hu": "Hungary", "is": "Iceland", "in": "India", "id": "Indonesia",
	"ir": "Iran", "iq": "Iraq", "ie": "Ireland", "il": "Israel",
	"it": "Italy", "jm": "Jamaica", "jp": "Japan", "jo": "Jordan",
	"kz": "Kazakhstan", "ke": "Kenya", "ki": "Kiribati", "kr": "South Korea",
	"xk": "Kosovo", "kw": "Kuwait", "kg": "Kyrgyzstan", "la": "Laos",
	"lv": "Latvia", "lb": "Lebanon", "ls": "Lesotho", "lr": "Liberia",
	"ly": "Libya", "lt": "Lithuania", "lu": "Luxembourg", "mg": "Madagascar",
	"mw": "Malawi", "my": "Malaysia", "mv": "Maldives", "ml": "Mali",
	"mt": "Malta", "mh": "Marshall Islands", "mr": "Mauritania",
	"mu": "Mauritius", "mx": "Mexico", "fm": "Micronesia", "md": "Moldova",
	"mn": "Mongolia", "me": "Montenegro", "ma": "Morocco", "mz": "Mozambique",
	"mm": "Myanmar", "na": "Namibia", "nr": "Nauru", "np": "Nepal",
	"nl": "Netherlands", "nz": "New Zealand", "ni": "Nicaragua", "ne": "Niger",
	"ng": "Nigeria", "mk": "North Macedonia", "no": "Norway", "om": "Oman",
	"pk": "Pakistan", "pw": "Palau", "pa": "Panama", "pg": "Papua New Guinea",
	"py": "Paraguay", "pe": "Peru", "ph": "Philippines", "pl": "Poland",
	"pt": "Portugal", "qa": "Qatar", "ro": "Romania", "ru": "Russia",
	"rw": "Rwanda", "ws": "Samoa", "sa": "Saudi Arabia", "sn": "Senegal",
	"rs": "Serbia", "sc": "Seychelles", "sl": "Sierra Leone",
	"sg": "Singapore", "sk": "Slovakia", "si": "Slovenia",
	"sb": "Solomon Islands", "so": "Somalia", "za": "South Africa",
	"ss": "South Sudan", "es": "Spain", "lk": "Sri Lanka", "sd": "Sudan",
	"sr": "Suriname", "se": "Sweden", "ch": "Switzerland", "sy": "Syria",
	"tj": "Tajikistan", "tz": "Tanzania", "th": "Thailand",
	"tl": "East Timor", "tg": "Togo", "to": "Tonga",
	"tt": "Trinidad and Tobago", "tn": "Tunisia", "tr": "Turkey",
	"tm": "Turkmenistan", "tv": "Tuvalu", "ug": "Uganda", "ua": "Ukraine",
	"ae": "United Arab Emirates", "gb": "United Kingdom",
	"us": "United States", "uy": "Uruguay", "uz": "Uzbekistan",
	"vu": "Vanuatu", "ve": "Venezuela", "vn": "Vietnam", "ye": "Yemen",
	"zm": "Zambia", "zw": "Zimbabwe",
}

// isoAlpha3 maps ISO 3166-1 alpha-3 codes to canonical names where they
// differ from the development-bank codes above.
var isoAlpha3 = map[string]string{
	"afg": "Afghanistan", "alb": "Albania", "dza": "Algeria",
	"ago": "Angola", "arg": "Argentina", "arm": "Armenia",
	"aus": "Australia", "aut": "Austria", "aze": "Azerbaijan",
	"bgd": "Bangladesh", "blr": "Belarus", "bel": "Belgium",
	"ben": "Benin", "bol": "Bolivia", "bih": "Bosnia and Herzegovina",
	"bwa": "Botswana", "bra": "Brazil", "bgr": "Bulgaria",
	"bfa": "Burkina Faso", "bdi": "Burundi", "khm": "Cambodia",
	"cmr": "Cameroon", "can": "Canada", "cpv": "Cape Verde",
	"tcd": "Chad", "chl": "Chile", "chn": "China", "col": "Colombia",
	"cod": "Democratic Republic of the Congo", "cog": "Republic of the Congo",
	"cri": "Costa Rica", "civ": "Ivory Coast", "hrv": "Croatia",
	"cze": "Czech Republic", "dnk": "Denmark", "dji": "Djibouti",
	"dom": "Dominican Republic", "ecu": "Ecuador", "egy": "Egypt",
	"slv": "El Salvador", "eri": "Eritrea", "est": "Estonia",
	"eth": "Ethiopia", "fji": "Fiji", "fin": "Finland", "fra": "France",
	"gab": "Gabon", "gmb": "Gambia", "geo": "Georgia", "deu": "Germany",
	"gha": "Ghana", "grc": "Greece", "gtm": "Guatemala", "gin": "Guinea",
	"guy": "Guyana", "hti": "Haiti", "hnd": "Honduras", "hun": "Hungary",
	"ind": "India", "idn": "Indonesia", "irn": "Iran", "irq": "Iraq",
	"irl": "Ireland", "isr": "Israel", "ita": "Italy", "jam": "Jamaica",
	"jpn": "Japan", "jor": "Jordan", "ken": "Kenya", "kor": "South Korea",
	"kwt": "Kuwait", "lao": "Laos", "lva": "Latvia", "lbn": "Lebanon",
	"lso": "Lesotho", "lbr": "Liberia", "lby": "Libya", "ltu": "Lithuania",
	"mdg": "Madagascar", "mwi": "Malawi", "mys": "Malaysia",
	"mdv": "Maldives", "mli": "Mali", "mrt": "Mauritania",
	"mus": "Mauritius", "mex": "Mexico", "mda": "Moldova", "mng": "Mongolia",
	"mne": "Montenegro", "mar": "Morocco", "moz": "Mozambique",
	"mmr": "Myanmar", "nam": "Namibia", "npl": "Nepal", "nld": "Netherlands",
	"nzl": "New Zealand", "nic": "Nicaragua", "ner": "Niger",
	"nga": "Nigeria", "mkd": "North Macedonia", "nor": "Norway",
	"omn": "Oman", "pan": "Panama", "per": "Peru", "phl": "Philippines",
	"pol": "Poland", "prt": "Portugal", "qat": "Qatar", "rou": "Romania",
	"rus": "Russia", "rwa": "Rwanda", "sau": "Saudi Arabia",
	"sen": "Senegal", "srb": "Serbia", "sle": "Sierra Leone",
	"sgp": "Singapore", "svk": "Slovakia", "svn": "Slovenia",
	"slb": "Solomon Islands", "som": "Somalia", "zaf": "South Africa",
	"ssd": "South Sudan", "esp": "Spain", "lka": "Sri Lanka",
	"sdn": "Sudan", "sur": "Suriname", "swe": "Sweden",
	"che": "Switzerland", "syr": "Syria", "tjk": "Tajikistan",
	"tza": "Tanzania", "tha": "Thailand", "tls": "East Timor",
	"tgo": "Togo", "tto": "Trinidad and Tobago", "tun": "Tunisia",
	"tur": "Turkey", "tkm": "Turkmenistan", "uga": "Uganda",
	"ukr": "Ukraine", "are": "United Arab Emirates",
	"gbr": "United Kingdom", "usa": "United States", "ury": "Uruguay",
	"uzb": "Uzbekistan", "vut": "Vanuatu", "ven": "Venezuela",
	"vnm": "Vietnam", "yem": "Yemen", "zmb": "Zambia", "zwe": "Zimbabwe",
}

// tldCountry maps email top-level domains to countries. Generic TLDs are
// intentionally absent.
var tldCountry = map[string]string{
	"af": "Afghanistan", "ar": "Argentina", "au": "Australia",
	"bd": "Bangladesh", "br": "Brazil", "ca": "Canada", "cn": "China",
	"co": "Colombia", "de": "Germany", "eg": "Egypt", "es": "Spain",
	"fr": "France", "gh": "Ghana", "id": "Indonesia", "in": "India",
	"it": "Italy", "jp": "Japan", "ke": "Kenya", "kr": "South Korea",
	"lk": "Sri Lanka", "mx": "Mexico", "my": "Malaysia", "ng": "Nigeria",
	"np": "Nepal", "pe": "Peru", "ph": "Philippines", "pk": "Pakistan",
	"pl": "Poland", "pt": "Portugal", "ro": "Romania", "ru": "Russia",
	"sa": "Saudi Arabia", "sg": "Singapore", "th": "Thailand",
	"tr": "Turkey", "tz": "Tanzania", "ua": "Ukraine", "ug": "Uganda",
	"uk": "United Kingdom", "uz": "Uzbekistan", "vn": "Vietnam",
	"za": "South Africa", "zm": "Zambia", "zw": "Zimbabwe",
}

// languageCountry maps a detected document language to the most likely
// issuing country. This is the weakest hint in the chain and only fires
// when everything stronger failed.
var languageCountry = map[string]string{
	"pt": "Brazil",
	"es": "Spain",
	"fr": "France",
	"de": "Germany",
	"it": "Italy",
	"nl": "Netherlands",
	"ru": "Russia",
	"zh": "China",
	"ja": "Japan",
	"ko": "South Korea",
	"ar": "Saudi Arabia",
	"hi": "India",
	"id": "Indonesia",
	"tr": "Turkey",
	"vi": "Vietnam",
	"th": "Thailand",
}

// countryCities maps canonical country names to their major cities, used to
// infer the country from a city mention and the city from a resolved
// country's text.
var countryCities = map[string][]string{
	"Afghanistan":   {"Kabul", "Herat", "Kandahar"},
	"Bangladesh":    {"Dhaka", "Chittagong", "Khulna"},
	"Brazil":        {"Brasilia", "Sao Paulo", "Rio de Janeiro"},
	"Cambodia":      {"Phnom Penh", "Siem Reap"},
	"China":         {"Beijing", "Shanghai", "Shenzhen", "Guangzhou"},
	"Colombia":      {"Bogota", "Medellin", "Cali"},
	"Egypt":         {"Cairo", "Alexandria", "Giza"},
	"Ethiopia":      {"Addis Ababa", "Dire Dawa"},
	"France":        {"Paris", "Lyon", "Marseille"},
	"Germany":       {"Berlin", "Munich", "Frankfurt", "Hamburg"},
	"Ghana":         {"Accra", "Kumasi"},
	"India":         {"New Delhi", "Mumbai", "Chennai", "Kolkata", "Bangalore"},
	"Indonesia":     {"Jakarta", "Surabaya", "Bandung"},
	"Kenya":         {"Nairobi", "Mombasa", "Kisumu"},
	"Mexico":        {"Mexico City", "Guadalajara", "Monterrey"},
	"Morocco":       {"Rabat", "Casablanca", "Marrakesh"},
	"Nepal":         {"Kathmandu", "Pokhara"},
	"Nigeria":       {"Abuja", "Lagos", "Kano", "Ibadan"},
	"Pakistan":      {"Islamabad", "Karachi", "Lahore"},
	"Peru":          {"Lima", "Arequipa", "Cusco"},
	"Philippines":   {"Manila", "Quezon City", "Cebu City", "Davao"},
	"Senegal":       {"Dakar", "Thies"},
	"South Africa":  {"Pretoria", "Johannesburg", "Cape Town", "Durban"},
	"Sri Lanka":     {"Colombo", "Kandy"},
	"Tanzania":      {"Dodoma", "Dar es Salaam", "Arusha"},
	"Thailand":      {"Bangkok", "Chiang Mai"},
	"Turkey":        {"Ankara", "Istanbul", "Izmir"},
	"Uganda":        {"Kampala", "Entebbe"},
	"Ukraine":       {"Kyiv", "Kharkiv", "Odesa", "Lviv"},
	"United States": {"Washington", "New York", "Chicago", "Los Angeles"},
	"Uzbekistan":    {"Tashkent", "Samarkand"},
	"Vietnam":       {"Hanoi", "Ho Chi Minh City", "Da Nang"},
	"Zambia":        {"Lusaka", "Ndola"},
}

// knownCountries is the fuzzy-match universe: every canonical name the
// tables above can resolve to.
var knownCountries = buildKnownCountries()

func buildKnownCountries() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(isoAlpha2))
	add := func(name string) {
		if name != "" && name != "Regional" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range isoAlpha2 {
		add(name)
	}
	for _, name := range isoAlpha3 {
		add(name)
	}
	for _, name := range countryAliases {
		add(name)
	}
	return names
}
