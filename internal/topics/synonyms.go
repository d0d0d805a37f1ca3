package topics

// synonyms maps lower-cased surface variants to their canonical topic label.
// Lookups happen after case folding and trimming; a miss leaves the phrase as
// its own canonical form.
var synonyms = map[string]string{
	"artificial intelligence":  "AI",
	"machine learning":         "AI",
	"deep learning":            "AI",
	"large language models":    "AI",
	"llm":                      "AI",
	"llms":                     "AI",
	"generative ai":            "AI",
	"gen ai":                   "AI",
	"forever chemicals":        "PFAS",
	"pfos":                     "PFAS",
	"per- and polyfluoroalkyl": "PFAS",
	"climate change":           "climate change",
	"global warming":           "climate change",
	"climate crisis":           "climate change",
	"gene editing":             "CRISPR/gene editing",
	"crispr":                   "CRISPR/gene editing",
	"crispr-cas9":              "CRISPR/gene editing",
	"genome editing":           "CRISPR/gene editing",
	"mental health":            "mental health",
	"depression":               "mental health",
	"anxiety disorders":        "mental health",
	"psychedelics":             "psychedelic therapy",
	"psilocybin":               "psychedelic therapy",
	"mdma therapy":             "psychedelic therapy",
	"psychedelic therapy":      "psychedelic therapy",
	"quantum computing":        "quantum computing",
	"quantum computer":         "quantum computing",
	"quantum computers":        "quantum computing",
	"obesity drugs":            "GLP-1/obesity drugs",
	"glp-1":                    "GLP-1/obesity drugs",
	"ozempic":                  "GLP-1/obesity drugs",
	"semaglutide":              "GLP-1/obesity drugs",
	"wegovy":                   "GLP-1/obesity drugs",
	"tirzepatide":              "GLP-1/obesity drugs",
	"mounjaro":                 "GLP-1/obesity drugs",
	"microplastics":            "microplastics",
	"nanoplastics":             "microplastics",
	"plastic pollution":        "microplastics",
	"bird flu":                 "avian influenza",
	"avian flu":                "avian influenza",
	"h5n1":                     "avian influenza",
	"avian influenza":          "avian influenza",
}
