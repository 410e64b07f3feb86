package catgen

import "math/rand"

// brand names as they appear on the public makeup catalog
var brands = []string{
	"almay", "alva", "anna sui", "annabelle", "benefit", "boosh", "burt's bees",
	"butter london", "c'est moi", "cargo cosmetics", "china glaze", "clinique",
	"coastal classic creation", "colourpop", "covergirl", "dalish", "deciem",
	"dior", "dr. hauschka", "e.l.f.", "essie", "fenty", "glossier", "green people",
	"iman", "l'oreal", "lotus cosmetics usa", "maia's mineral galaxy", "marcelle",
	"marienatie", "maybelline", "milani", "mineral fusion", "misa", "mistura",
	"moov", "nudus", "nyx", "orly", "pacifica", "penny lane organics",
	"physicians formula", "piggy paint", "pure anada", "rejuva minerals", "revlon",
	"sally b's skin yummies", "salon perfect", "sante", "sinful colours", "smashbox",
	"stila", "suncoat", "w3llpeople", "wet n wild", "zorah", "zorah biocosmetiques",
}

// product types with the categories the catalog publishes for each; an empty
// entry means products of that type usually carry no category at all
var categoriesByType = map[string][]string{
	"blush":       {"powder", "cream"},
	"bronzer":     {"powder"},
	"eyebrow":     {"pencil"},
	"eyeliner":    {"liquid", "pencil", "gel", "cream"},
	"eyeshadow":   {"palette", "pencil", "cream"},
	"foundation":  {"concealer", "liquid", "contour", "bb_cc", "cream", "mineral", "powder", "highlighter"},
	"lip_liner":   {"pencil"},
	"lipstick":    {"lipstick", "lip_gloss", "liquid", "lip_stain"},
	"mascara":     {},
	"nail_polish": {},
}

var productTypes = []string{
	"blush", "bronzer", "eyebrow", "eyeliner", "eyeshadow",
	"foundation", "lip_liner", "lipstick", "mascara", "nail_polish",
}

var tags = []string{
	"Canadian", "CertClean", "Chemical Free", "Dairy Free", "EWG Verified",
	"EcoCert", "Fair Trade", "Gluten Free", "Hypoallergenic", "Natural",
	"No Talc", "Non-GMO", "Organic", "Peanut Free Product", "Sugar Free",
	"USDA Organic", "Vegan", "alcohol free", "cruelty free", "oil free",
	"purpicks", "silicone free", "water free",
}

var nameAdjectives = []string{
	"Velvet", "Matte", "Luminous", "Sheer", "Satin", "Glow", "Soft", "Bold",
	"Radiant", "Silk", "Pure", "Mineral", "Ultra", "Lasting", "Natural",
}

var nameNouns = map[string][]string{
	"blush":       {"Blush", "Cheek Tint", "Flush"},
	"bronzer":     {"Bronzer", "Sun Powder"},
	"eyebrow":     {"Brow Pencil", "Brow Definer"},
	"eyeliner":    {"Eyeliner", "Kohl", "Liner Pen"},
	"eyeshadow":   {"Eyeshadow", "Shadow Palette", "Eye Crayon"},
	"foundation":  {"Foundation", "Concealer", "BB Cream", "Skin Tint"},
	"lip_liner":   {"Lip Liner", "Lippie Pencil"},
	"lipstick":    {"Lipstick", "Lip Gloss", "Lip Stain", "Lip Cream"},
	"mascara":     {"Mascara", "Lash Primer"},
	"nail_polish": {"Nail Lacquer", "Nail Polish"},
}

var currencies = []struct {
	code string
	sign string
}{
	{"USD", "$"},
	{"CAD", "$"},
	{"GBP", "£"},
}

func pick(values []string, rng *rand.Rand) string {
	if len(values) == 0 {
		return ""
	}
	return values[rng.Intn(len(values))]
}

// pickTags selects up to max distinct tags
func pickTags(rng *rand.Rand, max int) []string {
	if max <= 0 {
		return nil
	}
	count := rng.Intn(max + 1)
	if count == 0 {
		return nil
	}
	perm := rng.Perm(len(tags))
	picked := make([]string, 0, count)
	for _, i := range perm[:count] {
		picked = append(picked, tags[i])
	}
	return picked
}
