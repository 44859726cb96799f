package validate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogai/internal/domain/validation"
)

const reviewerSystemPrompt = "You are an e-commerce catalog editor. Answer in plain text, concise and actionable."

var fieldPrompts = map[validation.Field]string{
	validation.Title: "Evaluate this product title: '%s'\n\n" +
		"Is this title:\n- Clear and descriptive?\n- Appealing to customers?\n- SEO-friendly?\n" +
		"- Appropriate length (not too short/long)?\n\n" +
		"Provide specific suggestions for improvement if needed. Keep response under 150 words.",
	validation.Description: "Analyze this product description: '%s'\n\n" +
		"Evaluate:\n- Clarity and informativeness\n- Customer appeal\n- Missing important details\n" +
		"- Grammar and readability\n- Length appropriateness\n\n" +
		"Provide constructive feedback and suggestions. Keep response under 200 words.",
	validation.Meta: "Review this SEO meta description: '%s'\n\n" +
		"Check for:\n- Length (should be 150-160 characters)\n- Keyword optimization\n" +
		"- Call-to-action presence\n- Compelling language\n- Search engine guidelines compliance\n\n" +
		"Provide specific recommendations. Keep response under 150 words.",
	validation.Features: "Evaluate these product features: '%s'\n\n" +
		"Assess:\n- Completeness and relevance\n- Customer value proposition\n- Technical accuracy\n" +
		"- Clarity of presentation\n- Missing key features\n\n" +
		"Suggest improvements or additions. Keep response under 150 words.",
	validation.Price: "Analyze this product price: $%s\n\n" +
		"Consider:\n- Market competitiveness\n- Value perception\n- Pricing psychology\n" +
		"- Decimal placement strategy\n\nProvide brief pricing insights. Keep response under 100 words.",
	validation.Brand: "Evaluate this brand name: '%s'\n\n" +
		"Check for:\n- Brand recognition\n- Spelling accuracy\n- Market presence\n- Consumer trust factors\n\n" +
		"Provide brief brand assessment. Keep response under 100 words.",
}

func buildFieldPrompt(f validation.Field, content, category string) string {
	var p string
	if tmpl, ok := fieldPrompts[f]; ok {
		p = fmt.Sprintf(tmpl, content)
	} else {
		p = fmt.Sprintf("Analyze this %s: '%s'. Provide brief evaluation and suggestions.", f, content)
	}
	if category != "" {
		p += fmt.Sprintf(" Note: This is for a %s product.", category)
	}
	return p
}

func buildProductPrompt(p validation.Product) string {
	orMissing := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "Not provided"
		}
		return v
	}
	price := "Not provided"
	if p.Price != 0 {
		price = fmt.Sprintf("%g", p.Price)
	}

	var b strings.Builder
	b.WriteString("Analyze this complete product data for quality and completeness:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", orMissing(p.Title))
	fmt.Fprintf(&b, "Brand: %s\n", orMissing(p.Brand))
	fmt.Fprintf(&b, "Category: %s\n", orMissing(p.Category))
	fmt.Fprintf(&b, "Description: %s\n", orMissing(p.Description))
	fmt.Fprintf(&b, "Features: %s\n", orMissing(p.Features))
	fmt.Fprintf(&b, "Price: $%s\n", price)
	fmt.Fprintf(&b, "SEO Meta: %s\n\n", orMissing(p.MetaSEO))
	b.WriteString("Provide a comprehensive analysis covering:\n")
	b.WriteString("1. Overall completeness score (1-10)\n")
	b.WriteString("2. Key strengths\n")
	b.WriteString("3. Critical gaps or weaknesses\n")
	b.WriteString("4. Specific improvement recommendations\n")
	b.WriteString("5. Market readiness assessment\n\n")
	b.WriteString("Keep response structured and under 300 words.")
	return b.String()
}
