package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/catalogai/internal/domain/validation"
)

// decimalRe matches plain decimal numbers. NaN, Inf and hex floats are rejected.
var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parsePrice returns the numeric value of a decimal price string.
func parsePrice(content string) (float64, bool) {
	content = strings.TrimSpace(content)
	if !decimalRe.MatchString(content) {
		return 0, false
	}
	v, err := strconv.ParseFloat(content, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// checkField applies the length or numeric rule of f. Fields without a rule pass.
func checkField(f validation.Field, content string) (issues []string, guidance string) {
	issues = []string{}
	if f == validation.Price {
		v, ok := parsePrice(content)
		if !ok {
			return append(issues, "Must be a valid number"), validation.PriceGuidance
		}
		if v < validation.MinPrice {
			issues = append(issues, fmt.Sprintf("Value must be at least %g", validation.MinPrice))
		}
		return issues, validation.PriceGuidance
	}

	rule, ok := validation.Rules[f]
	if !ok {
		return issues, validation.GenericGuidance
	}
	n := utf8.RuneCountInString(content)
	if n < rule.Min {
		issues = append(issues, fmt.Sprintf("Content is too short (minimum %d characters)", rule.Min))
	}
	if n > rule.Max {
		issues = append(issues, fmt.Sprintf("Content is too long (maximum %d characters)", rule.Max))
	}
	return issues, rule.Guidance
}

func ruleMessage(issues []string, guidance string) string {
	if len(issues) == 0 {
		return "Basic validation passed. " + guidance
	}
	return "Issues found: " + strings.Join(issues, ", ") + "\n\n" + guidance
}

// Analysis check lines.
const (
	checkTitleShort    = "Title might be too short for SEO"
	checkTitleLong     = "Title might be too long for search results"
	checkTitleOK       = "Title length is appropriate"
	checkDescShort     = "Description could be more detailed"
	checkDescOK        = "Description has good length"
	checkPriceOK       = "Price is valid"
	checkPriceBad      = "Price format needs correction"
	checkMetaLength    = "SEO meta should be 120-160 characters"
	checkMetaOK        = "SEO meta length is optimal"
	checkMetaMissing   = "Missing SEO meta description"
	titleMinSEO        = 10
	titleMaxSEO        = 60
	descriptionMinSEO  = 50
	metaMinSEO         = 120
	metaMaxSEO         = 160
	completenessWeight = 25
)

// assess scores a product over title, description, price and brand and runs
// the basic quality checks. It never fails.
func assess(p validation.Product) validation.Analysis {
	a := validation.Analysis{Missing: []string{}, Checks: []string{}}

	required := []struct {
		name    string
		present bool
	}{
		{"title", strings.TrimSpace(p.Title) != ""},
		{"description", strings.TrimSpace(p.Description) != ""},
		{"price", p.Price != 0},
		{"brand", strings.TrimSpace(p.Brand) != ""},
	}
	for _, r := range required {
		if r.present {
			a.Completeness += completenessWeight
		} else {
			a.Missing = append(a.Missing, r.name)
		}
	}

	if title := strings.TrimSpace(p.Title); title != "" {
		switch n := utf8.RuneCountInString(title); {
		case n < titleMinSEO:
			a.Checks = append(a.Checks, checkTitleShort)
		case n > titleMaxSEO:
			a.Checks = append(a.Checks, checkTitleLong)
		default:
			a.Checks = append(a.Checks, checkTitleOK)
		}
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		if utf8.RuneCountInString(desc) < descriptionMinSEO {
			a.Checks = append(a.Checks, checkDescShort)
		} else {
			a.Checks = append(a.Checks, checkDescOK)
		}
	}
	if p.Price != 0 {
		if p.Price > 0 {
			a.Checks = append(a.Checks, checkPriceOK)
		} else {
			a.Checks = append(a.Checks, checkPriceBad)
		}
	}
	if meta := strings.TrimSpace(p.MetaSEO); meta != "" {
		if n := utf8.RuneCountInString(meta); n < metaMinSEO || n > metaMaxSEO {
			a.Checks = append(a.Checks, checkMetaLength)
		} else {
			a.Checks = append(a.Checks, checkMetaOK)
		}
	} else {
		a.Checks = append(a.Checks, checkMetaMissing)
	}

	a.Readiness = validation.ReadinessFor(a.Completeness)
	return a
}

var readinessText = map[validation.Readiness]string{
	validation.ReadinessGood: "Good - Product data is mostly complete",
	validation.ReadinessFair: "Fair - Some important fields are missing",
	validation.ReadinessPoor: "Poor - Many required fields need attention",
}

// renderFallback formats a deterministic analysis as a plain-text report.
func renderFallback(a validation.Analysis) string {
	var b strings.Builder
	b.WriteString("BASIC PRODUCT ANALYSIS (AI Unavailable)\n\n")
	fmt.Fprintf(&b, "1. COMPLETENESS SCORE: %d%%\n", a.Completeness)
	if len(a.Missing) > 0 {
		fmt.Fprintf(&b, "   Missing: %s\n", strings.Join(a.Missing, ", "))
	}
	b.WriteString("\n2. BASIC CHECKS:\n")
	for _, c := range a.Checks {
		fmt.Fprintf(&b, "   - %s\n", c)
	}
	b.WriteString("\n3. RECOMMENDATIONS:\n")
	b.WriteString("   - Ensure all product information is accurate and complete\n")
	b.WriteString("   - Use high-quality, descriptive language\n")
	b.WriteString("   - Include key features and benefits\n")
	b.WriteString("   - Optimize for search engines with relevant keywords\n")
	b.WriteString("   - Consider your target audience when writing\n")
	b.WriteString("\n4. MARKET READINESS:\n")
	fmt.Fprintf(&b, "   %s\n", readinessText[a.Readiness])
	b.WriteString("\nNote: This is a basic analysis. Configure an AI provider for detailed insights.")
	return b.String()
}
