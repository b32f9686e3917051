package extract

// sectorRules is the sector keyword table. Labels follow the sector names
// used by the development-bank sources.
var sectorRules = NewRuleSet([]Rule{
	{Label: "Agriculture", Keywords: []string{
		"agriculture", "farming", "irrigation", "crops", "livestock",
		"fisheries", "agribusiness",
	}},
	{Label: "Construction", Keywords: []string{
		"construction", "building works", "civil works", "infrastructure works",
		"renovation", "rehabilitation of buildings",
	}},
	{Label: "Education", Keywords: []string{
		"education", "school", "university", "training", "curriculum",
		"teachers", "vocational",
	}},
	{Label: "Energy", Keywords: []string{
		"energy", "electricity", "power plant", "renewable", "solar",
		"hydropower", "transmission line", "grid",
	}},
	{Label: "Environment", Keywords: []string{
		"environment", "climate", "biodiversity", "forestry", "conservation",
		"waste management", "pollution",
	}},
	{Label: "Finance", Keywords: []string{
		"finance", "banking", "microfinance", "insurance", "financial services",
		"credit line",
	}},
	{Label: "Health", Keywords: []string{
		"health", "hospital", "medical", "pharmaceutical", "vaccine",
		"clinic", "healthcare",
	}},
	{Label: "ICT", Keywords: []string{
		"information technology", "software", "telecommunications", "ict",
		"digital", "broadband", "data center", "it equipment",
	}},
	{Label: "Manufacturing", Keywords: []string{
		"manufacturing", "industrial", "factory", "processing plant",
	}},
	{Label: "Mining", Keywords: []string{
		"mining", "minerals", "extractive", "quarry",
	}},
	{Label: "Transportation", Keywords: []string{
		"transport", "road", "highway", "railway", "airport", "port",
		"bridge", "metro", "bus",
	}},
	{Label: "Water and Sanitation", Keywords: []string{
		"water supply", "sanitation", "sewerage", "wastewater", "drainage",
		"drinking water", "water treatment",
	}},
})

// ExtractSector classifies the tender's sector from free text. Returns ""
// when nothing matches.
func ExtractSector(text string) string {
	return sectorRules.Classify(text)
}
