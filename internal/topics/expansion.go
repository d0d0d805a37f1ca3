package topics

// expansions maps broad topic words to related specific terms. Expansion is a
// single level: expanded terms are never expanded again.
var expansions = map[string][]string{
	"space":      {"mars", "moon", "lunar", "planetary", "nasa", "asteroid", "satellite", "rocket", "spaceflight"},
	"astronomy":  {"telescope", "exoplanet", "galaxy", "cosmic", "stellar", "astrophysics"},
	"climate":    {"carbon", "emissions", "warming", "greenhouse", "weather", "temperature"},
	"health":     {"disease", "medical", "patient", "treatment", "hospital", "clinical"},
	"genetics":   {"gene", "genome", "dna", "crispr", "hereditary", "mutation"},
	"infectious": {"virus", "bacteria", "pathogen", "outbreak", "epidemic", "pandemic"},
	"aging":      {"elderly", "older adults", "longevity", "dementia", "alzheimer"},
	"vaccine":    {"immunization", "vaccination", "antibody", "immune"},
	"evolution":  {"fossil", "paleontology", "ancient", "prehistoric", "darwin"},
	"polar":      {"arctic", "antarctic", "ice", "glacier", "permafrost"},
}
