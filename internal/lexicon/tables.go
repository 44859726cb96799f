// Package lexicon holds the bilingual (Turkish/English) synonym tables used to
// recognize product attributes in free-form text, plus the text folding and
// tokenizing helpers shared by the extractor and the enhancer.
package lexicon

// Kind names a synonym table.
type Kind int

// Table kinds. Match order across kinds is irrelevant; order inside a table is not.
const (
	Category Kind = iota
	Color
	Gender
	Brand
	PriceTier
	Style
	Material
)

func (k Kind) String() string {
	switch k {
	case Category:
		return "category"
	case Color:
		return "color"
	case Gender:
		return "gender"
	case Brand:
		return "brand"
	case PriceTier:
		return "price_tier"
	case Style:
		return "style"
	case Material:
		return "material"
	default:
		return "unknown"
	}
}

// Entry maps a canonical value to the phrases that express it.
type Entry struct {
	Canonical string
	Synonyms  []string
}

// wholeWord holds folded synonyms that must match a complete word even though
// they are long enough for prefix matching ("under" is not "underwear").
var wholeWord = map[string]bool{
	"under": true,
}

type term struct {
	text  string
	whole bool
}

type table struct {
	entries []Entry
	folded  [][]term
}

func newTable(entries []Entry) table {
	t := table{entries: entries, folded: make([][]term, len(entries))}
	for i, e := range entries {
		t.folded[i] = make([]term, len(e.Synonyms))
		for j, s := range e.Synonyms {
			f := Fold(s)
			t.folded[i][j] = term{text: f, whole: wholeWord[f]}
		}
	}
	return t
}

var tables map[Kind]table

func init() {
	tables = map[Kind]table{
		Category:  newTable(categoryEntries),
		Color:     newTable(colorEntries),
		Gender:    newTable(genderEntries),
		Brand:     newTable(brandEntries),
		PriceTier: newTable(priceEntries),
		Style:     newTable(styleEntries),
		Material:  newTable(materialEntries),
	}
}

// Match scans the table of the given kind against text and returns the
// canonical value of the first entry with a matching synonym.
func Match(kind Kind, text string) (string, bool) {
	t, ok := tables[kind]
	if !ok {
		return "", false
	}
	folded := Fold(text)
	for i, syns := range t.folded {
		for _, s := range syns {
			if containsTerm(folded, s.text, s.whole) {
				return t.entries[i].Canonical, true
			}
		}
	}
	return "", false
}

// Synonyms returns every phrase of the entry whose canonical value is
// canonical, the canonical value first. Unknown values yield just themselves.
func Synonyms(kind Kind, canonical string) []string {
	t := tables[kind]
	key := Fold(canonical)
	for _, e := range t.entries {
		if Fold(e.Canonical) != key {
			continue
		}
		out := make([]string, 0, len(e.Synonyms)+1)
		out = append(out, e.Canonical)
		for _, s := range e.Synonyms {
			if Fold(s) != key {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{canonical}
}

// Canonical resolves a value (canonical or synonym) to its canonical form.
func Canonical(kind Kind, value string) (string, bool) {
	t := tables[kind]
	key := Fold(value)
	if key == "" {
		return "", false
	}
	for i, e := range t.entries {
		if Fold(e.Canonical) == key {
			return e.Canonical, true
		}
		for _, s := range t.folded[i] {
			if s.text == key {
				return e.Canonical, true
			}
		}
	}
	return "", false
}

var categoryEntries = []Entry{
	{"phone", []string{"phone", "smartphone", "iphone", "android", "mobile", "cell", "telefon", "akıllı telefon"}},
	{"electronics", []string{"electronics", "electronic", "tech", "device", "elektronik", "teknoloji"}},
	{"shirt", []string{"shirt", "blouse", "top", "tshirt", "t-shirt", "gömlek", "tişört", "bluz"}},
	{"clothing", []string{"clothing", "clothes", "wear", "apparel", "giyim", "kıyafet"}},
	{"shoes", []string{"shoes", "sneakers", "boots", "footwear", "ayakkabı", "spor ayakkabı", "bot"}},
	{"dress", []string{"dress", "gown", "elbise"}},
	{"jacket", []string{"jacket", "coat", "blazer", "ceket", "mont"}},
	{"headphones", []string{"headphones", "headphone", "earphones", "earbuds", "headset", "kulaklık"}},
	{"laptop", []string{"laptop", "notebook", "computer", "dizüstü", "bilgisayar"}},
	{"bag", []string{"bag", "bags", "backpack", "handbag", "çanta", "sırt çantası"}},
	{"watch", []string{"watch", "smartwatch", "saat", "akıllı saat"}},
	{"glasses", []string{"glasses", "sunglasses", "gözlük", "güneş gözlüğü"}},
	{"pants", []string{"pants", "trousers", "jeans", "pantolon"}},
	{"keyboard", []string{"keyboard", "klavye"}},
	{"mouse", []string{"mouse", "fare"}},
}

var colorEntries = []Entry{
	{"white", []string{"white", "beyaz"}},
	{"black", []string{"black", "siyah"}},
	{"red", []string{"red", "kırmızı"}},
	{"blue", []string{"blue", "mavi"}},
	{"green", []string{"green", "yeşil"}},
	{"yellow", []string{"yellow", "sarı"}},
	{"pink", []string{"pink", "pembe"}},
	{"gray", []string{"gray", "grey", "gri"}},
	{"brown", []string{"brown", "kahverengi"}},
	{"purple", []string{"purple", "mor"}},
	{"orange", []string{"orange", "turuncu"}},
	{"navy", []string{"navy", "lacivert"}},
}

// Female is listed before male.
var genderEntries = []Entry{
	{"female", []string{"women", "woman", "female", "kadın", "bayan", "kız", "kızlar", "ladies"}},
	{"male", []string{"men", "man", "male", "erkek", "bay"}},
	{"unisex", []string{"unisex"}},
}

var brandEntries = []Entry{
	{"Apple", []string{"apple", "iphone", "ipad", "macbook"}},
	{"Samsung", []string{"samsung", "galaxy"}},
	{"Nike", []string{"nike"}},
	{"Adidas", []string{"adidas"}},
	{"Sony", []string{"sony", "playstation", "xperia"}},
	{"Google", []string{"google", "pixel"}},
	{"Microsoft", []string{"microsoft", "surface", "xbox"}},
	{"HP", []string{"hp"}},
	{"Dell", []string{"dell"}},
	{"Lenovo", []string{"lenovo"}},
	{"Asus", []string{"asus"}},
	{"Acer", []string{"acer"}},
	{"LG", []string{"lg"}},
	{"Xiaomi", []string{"xiaomi"}},
	{"Huawei", []string{"huawei"}},
	{"OnePlus", []string{"oneplus"}},
	{"Zara", []string{"zara"}},
	{"H&M", []string{"h&m", "hm"}},
	{"Mango", []string{"mango"}},
	{"LCW", []string{"lcw", "lc waikiki"}},
	{"Koton", []string{"koton"}},
	{"DeFacto", []string{"defacto"}},
	{"Puma", []string{"puma"}},
	{"Under Armour", []string{"under armour"}},
	{"New Balance", []string{"new balance"}},
	{"Converse", []string{"converse"}},
	{"Vans", []string{"vans"}},
}

// Budget is listed before premium.
var priceEntries = []Entry{
	{"budget", []string{"budget", "cheap", "affordable", "ucuz", "uygun", "ekonomik", "altında", "under"}},
	{"premium", []string{"premium", "expensive", "luxury", "pahalı", "lüks", "üst segment"}},
	{"medium", []string{"medium", "mid-range", "orta segment", "orta fiyat"}},
}

var styleEntries = []Entry{
	{"casual", []string{"casual", "günlük", "rahat"}},
	{"formal", []string{"formal", "resmi", "office", "ofis"}},
	{"sport", []string{"sport", "athletic", "spor", "sportif"}},
	{"elegant", []string{"elegant", "şık", "zarif"}},
	{"professional", []string{"professional", "profesyonel"}},
}

var materialEntries = []Entry{
	{"cotton", []string{"cotton", "pamuk", "pamuklu"}},
	{"leather", []string{"leather", "deri"}},
	{"wool", []string{"wool", "yün"}},
	{"silk", []string{"silk", "ipek"}},
	{"denim", []string{"denim", "kot"}},
	{"linen", []string{"linen", "keten"}},
	{"wood", []string{"wood", "wooden", "ahşap"}},
	{"metal", []string{"metal", "steel", "çelik"}},
	{"plastic", []string{"plastic", "plastik"}},
}
