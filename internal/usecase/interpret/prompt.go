package interpret

import "strings"

const systemPrompt = "You are an intelligent product search assistant for a bilingual " +
	"(Turkish/English) e-commerce catalog. You answer with a single JSON object and nothing else."

// promptExamples are the worked examples shown to the model, in order.
var promptExamples = []struct{ query, filters string }{
	{"ucuz telefon", `price_tier: budget, category: phone`},
	{"kadınlar için kırmızı elbise", `gender: female, color: red, category: dress`},
	{"Apple marka pahalı kulaklık", `brand: Apple, price_tier: premium, category: headphones`},
	{"erkek spor ayakkabı", `gender: male, style: sport, category: shoes`},
	{"gaming laptop under 1000", `category: laptop, price_tier: budget, keywords: ["gaming"]`},
}

const promptSchema = `{
  "category": "product type (phone, shirt, laptop, headphones, dress, shoes, etc)",
  "brand": "brand name if mentioned",
  "color": "color if mentioned",
  "material": "material like cotton, leather, metal, etc",
  "gender": "male, female, or unisex",
  "price_tier": "budget, medium, or premium (based on words like ucuz, pahalı, budget, expensive)",
  "style": "casual, formal, sport, gaming, professional, etc",
  "size": "size if mentioned (S, M, L, XL, or number sizes)",
  "keywords": ["important search terms and synonyms"]
}`

// buildPrompt renders the extraction prompt for query.
func buildPrompt(query string) string {
	var b strings.Builder
	b.WriteString("Analyze this search query and extract its meaning: '")
	b.WriteString(query)
	b.WriteString("'\n\nTransform it into structured product filters. Interpret the intent.\n\nExamples:\n")
	for _, ex := range promptExamples {
		b.WriteString(`- "`)
		b.WriteString(ex.query)
		b.WriteString(`" -> `)
		b.WriteString(ex.filters)
		b.WriteString("\n")
	}
	b.WriteString("\nReturn ONLY valid JSON with these fields (include a field only if it is clearly mentioned or strongly implied):\n")
	b.WriteString(promptSchema)
	b.WriteString("\n\nBe smart about synonyms and context. Turkish/English mixed queries are common.\n")
	b.WriteString("Response must be valid JSON only, no markdown, no explanations.")
	return b.String()
}
