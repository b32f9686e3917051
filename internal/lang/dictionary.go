package lang

import "strings"

// fallbackDictionary holds word-for-word substitutions used when no
// translation provider is reachable. The output is rough but keeps key
// procurement terms searchable in English.
var fallbackDictionary = map[string]map[string]string{
	"fr": {
		"appel":         "call",
		"offres":        "bids",
		"marché":        "contract",
		"marche":        "contract",
		"travaux":       "works",
		"fournitures":   "supplies",
		"services":      "services",
		"avis":          "notice",
		"date":          "date",
		"limite":        "deadline",
		"projet":        "project",
		"construction":  "construction",
		"rehabilitation": "rehabilitation",
		"route":         "road",
		"eau":           "water",
		"sante":         "health",
		"santé":         "health",
		"education":     "education",
		"ministere":     "ministry",
		"ministère":     "ministry",
		"national":      "national",
		"international": "international",
		"acquisition":   "procurement",
		"consultant":    "consultant",
		"et":            "and",
		"de":            "of",
		"des":           "of",
		"du":            "of",
		"pour":          "for",
		"dans":          "in",
		"le":            "the",
		"la":            "the",
		"les":           "the",
	},
	"es": {
		"licitación":   "tender",
		"licitacion":   "tender",
		"concurso":     "competition",
		"contrato":     "contract",
		"obras":        "works",
		"suministros":  "supplies",
		"servicios":    "services",
		"aviso":        "notice",
		"fecha":        "date",
		"límite":       "deadline",
		"limite":       "deadline",
		"proyecto":     "project",
		"construcción": "construction",
		"construccion": "construction",
		"carretera":    "road",
		"agua":         "water",
		"salud":        "health",
		"educación":    "education",
		"educacion":    "education",
		"ministerio":   "ministry",
		"nacional":     "national",
		"adquisición":  "procurement",
		"adquisicion":  "procurement",
		"consultoría":  "consultancy",
		"consultoria":  "consultancy",
		"y":            "and",
		"de":           "of",
		"del":          "of",
		"para":         "for",
		"en":           "in",
		"el":           "the",
		"la":           "the",
		"los":          "the",
		"las":          "the",
	},
	"de": {
		"ausschreibung": "tender",
		"vergabe":       "award",
		"auftrag":       "contract",
		"bauarbeiten":   "construction works",
		"lieferungen":   "supplies",
		"dienstleistungen": "services",
		"bekanntmachung": "notice",
		"frist":          "deadline",
		"projekt":        "project",
		"straße":         "road",
		"strasse":        "road",
		"wasser":         "water",
		"gesundheit":     "health",
		"bildung":        "education",
		"ministerium":    "ministry",
		"beschaffung":    "procurement",
		"und":            "and",
		"von":            "of",
		"für":            "for",
		"fuer":           "for",
		"in":             "in",
		"der":            "the",
		"die":            "the",
		"das":            "the",
	},
	"pt": {
		"licitação":   "tender",
		"licitacao":   "tender",
		"concurso":    "competition",
		"contrato":    "contract",
		"obras":       "works",
		"fornecimentos": "supplies",
		"serviços":    "services",
		"servicos":    "services",
		"aviso":       "notice",
		"data":        "date",
		"prazo":       "deadline",
		"projeto":     "project",
		"construção":  "construction",
		"construcao":  "construction",
		"estrada":     "road",
		"água":        "water",
		"agua":        "water",
		"saúde":       "health",
		"saude":       "health",
		"educação":    "education",
		"educacao":    "education",
		"ministério":  "ministry",
		"ministerio":  "ministry",
		"aquisição":   "procurement",
		"aquisicao":   "procurement",
		"e":           "and",
		"de":          "of",
		"do":          "of",
		"da":          "of",
		"para":        "for",
		"em":          "in",
		"o":           "the",
		"a":           "the",
		"os":          "the",
		"as":          "the",
	},
	"it": {
		"gara":          "tender",
		"appalto":       "contract",
		"lavori":        "works",
		"forniture":     "supplies",
		"servizi":       "services",
		"avviso":        "notice",
		"scadenza":      "deadline",
		"progetto":      "project",
		"costruzione":   "construction",
		"strada":        "road",
		"acqua":         "water",
		"salute":        "health",
		"istruzione":    "education",
		"ministero":     "ministry",
		"approvvigionamento": "procurement",
		"e":             "and",
		"di":            "of",
		"del":           "of",
		"per":           "for",
		"in":            "in",
		"il":            "the",
		"lo":            "the",
		"la":            "the",
	},
}

// translateWithDictionary substitutes known words, leaving unknown ones in
// place. Returns the result and the fraction of words that were replaced.
func translateWithDictionary(text, sourceLang string) (string, float64) {
	dict, ok := fallbackDictionary[sourceLang]
	if !ok {
		return text, 0
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text, 0
	}

	replaced := 0
	out := make([]string, len(words))
	for i, word := range words {
		stripped := strings.ToLower(strings.Trim(word, ".,;:!?()\"'"))
		if english, found := dict[stripped]; found {
			out[i] = english
			replaced++
		} else {
			out[i] = word
		}
	}

	return strings.Join(out, " "), float64(replaced) / float64(len(words))
}

// mojibakeRepairs undoes the most common UTF-8-read-as-Latin-1 damage seen
// in source rows before detection or translation runs.
var mojibakeRepairs = strings.NewReplacer(
	"Ã©", "é",
	"Ã¨", "è",
	"Ãª", "ê",
	"Ã«", "ë",
	"Ã ", "à",
	"Ã¢", "â",
	"Ã®", "î",
	"Ã¯", "ï",
	"Ã´", "ô",
	"Ã¶", "ö",
	"Ã¹", "ù",
	"Ã»", "û",
	"Ã¼", "ü",
	"Ã§", "ç",
	"Ã±", "ñ",
	"Ã¡", "á",
	"Ã­", "í",
	"Ã³", "ó",
	"Ãº", "ú",
	"Ã£", "ã",
	"Ãµ", "õ",
	"Ã„", "Ä",
	"Ã–", "Ö",
	"Ãœ", "Ü",
	"ÃŸ", "ß",
	"â€™", "'",
	"â€˜", "'",
	"â€œ", "\"",
	"â€", "\"",
	"â€“", "–",
	"â€”", "—",
	"â€¦", "…",
	"Â°", "°",
	"Â ", " ",
)

// RepairMojibake fixes double-encoded UTF-8 sequences in place.
func RepairMojibake(text string) string {
	if !strings.Contains(text, "Ã") && !strings.Contains(text, "â€") && !strings.Contains(text, "Â") {
		return text
	}
	return mojibakeRepairs.Replace(text)
}
