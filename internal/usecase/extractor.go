package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/labellens/backend/internal/domain"
)

// quantityPattern is one entry of an ordered extraction family: a compiled
// expression whose first capture group is the numeric literal, the unit it
// tags, and the largest value still considered plausible for that unit.
type quantityPattern struct {
	re       *regexp.Regexp
	unit     domain.Unit
	maxValue float64
}

// alcoholPatterns is tried in order, first in-range match wins. Percentage
// forms are listed before proof forms: a label carrying both ("45% alc/vol
// (90 proof)") resolves through the percent family. All patterns assume
// normalized text, so only [a-z0-9 .-%] needs to be expressed.
var alcoholPatterns = []quantityPattern{
	// "45%", "45 %", "45.0%"
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`), domain.UnitPercentABV, 100},
	// "45 alc vol %", "45 alcohol by volume %"
	{regexp.MustCompile(`(\d+(?:\.\d+)?)(?:\s+(?:alc[a-z.]*|alcohol|by|vol[a-z.]*))+\s*%`), domain.UnitPercentABV, 100},
	// "45 percent"
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*percent\b`), domain.UnitPercentABV, 100},
	// "abv 45", "abv. 45"
	{regexp.MustCompile(`\babv[.\s]*(\d+(?:\.\d+)?)`), domain.UnitPercentABV, 100},
	// "alcohol 45", "alc. 45"
	{regexp.MustCompile(`\balc(?:ohol)?[.\s]+(\d+(?:\.\d+)?)`), domain.UnitPercentABV, 100},
	// "90 proof"
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*proof\b`), domain.UnitProof, 200},
}

// volumePatterns is tried in order, first match wins; ordering encodes the
// priority when a label could ambiguously match more than one unit token
var volumePatterns = []quantityPattern{
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:ml|milliliters?|millilitres?)\b`), domain.UnitMilliliter, 0},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:cl|centiliters?|centilitres?)\b`), domain.UnitCentiliter, 0},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:l|liters?|litres?)\b`), domain.UnitLiter, 0},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:fl\.?\s*oz\.?|fluid\s+ounces?)`), domain.UnitFluidOunce, 0},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:oz\.?|ounces?)\b`), domain.UnitFluidOunce, 0},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:gal\.?|gallons?)\b`), domain.UnitGallon, 0},
}

// governmentWarningHeader opens the statutory health-warning statement
const governmentWarningHeader = "government warning"

// governmentWarningKeywords are the lexical markers of the mandatory warning
// statement, in normalized form
var governmentWarningKeywords = []string{
	"government warning",
	"surgeon general",
	"according to the surgeon general",
	"women should not drink",
	"alcoholic beverages during pregnancy",
	"consumption of alcoholic beverages",
	"impairs your ability",
}

// ExtractAlcoholContent scans normalized text for an alcohol-strength
// expression. It tries the ordered pattern family and returns the first hit
// whose value is in range for its unit; ok is false when nothing matched.
func ExtractAlcoholContent(text string) (domain.ExtractedQuantity, bool) {
	return extractQuantity(text, alcoholPatterns)
}

// ExtractNetContents scans normalized text for a volume expression.
// First successful pattern wins; later patterns are not attempted.
func ExtractNetContents(text string) (domain.ExtractedQuantity, bool) {
	return extractQuantity(text, volumePatterns)
}

func extractQuantity(text string, patterns []quantityPattern) (domain.ExtractedQuantity, bool) {
	for _, p := range patterns {
		for _, groups := range p.re.FindAllStringSubmatch(text, -1) {
			value, err := strconv.ParseFloat(groups[1], 64)
			if err != nil {
				continue
			}
			if value < 0 || (p.maxValue > 0 && value > p.maxValue) {
				continue
			}
			return domain.ExtractedQuantity{
				RawMatch: strings.TrimSpace(groups[0]),
				Value:    value,
				Unit:     p.unit,
			}, true
		}
	}
	return domain.ExtractedQuantity{}, false
}

// DetectGovernmentWarning checks normalized text for the statutory
// health-warning statement. This is keyword-set based and best-effort:
// absence of the markers does not prove the warning is missing from the
// label, only that OCR or keyword matching failed to find it.
func DetectGovernmentWarning(text string) domain.WarningDetection {
	detection := domain.WarningDetection{
		HeaderFound: strings.Contains(text, governmentWarningHeader),
	}

	for _, keyword := range governmentWarningKeywords {
		if strings.Contains(text, keyword) {
			detection.Keywords = append(detection.Keywords, keyword)
		}
	}

	return detection
}
