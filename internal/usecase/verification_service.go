package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/labellens/backend/internal/domain"
)

// Default field thresholds and tolerances. Brand names are short and
// sensitive to small deviations, so they use a higher bar than product-type
// phrasing, which varies more ("whiskey" vs "whisky").
const (
	defaultBrandThreshold       = 0.85
	defaultProductTypeThreshold = 0.75
	defaultABVTolerance         = 0.5  // percentage points
	defaultVolumeTolerance      = 0.01 // relative to the form-side volume
)

// Minimum keyword hits for a fully confirmed government warning
const warningKeywordMinimum = 2

// VerificationConfig holds configuration for the verification service
type VerificationConfig struct {
	BrandThreshold       float64
	ProductTypeThreshold float64
	ABVTolerance         float64
	VolumeTolerance      float64
	EnableFuzzyMatching  bool
	EnableDebugLogging   bool
}

// VerificationService drives the five field checks in fixed order and
// assembles the verdict list. It is stateless between calls: the only shared
// state is this immutable configuration, so runs may execute concurrently
// with no coordination.
type VerificationService struct {
	matcher              *Matcher
	brandThreshold       float64
	productTypeThreshold float64
	abvTolerance         float64
	volumeTolerance      float64
	enableDebugLogging   bool
}

// NewVerificationService creates a verification service with the given
// configuration, falling back to defaults for unset thresholds
func NewVerificationService(config VerificationConfig) *VerificationService {
	brandThreshold := config.BrandThreshold
	if brandThreshold <= 0 {
		brandThreshold = defaultBrandThreshold
	}

	productTypeThreshold := config.ProductTypeThreshold
	if productTypeThreshold <= 0 {
		productTypeThreshold = defaultProductTypeThreshold
	}

	abvTolerance := config.ABVTolerance
	if abvTolerance <= 0 {
		abvTolerance = defaultABVTolerance
	}

	volumeTolerance := config.VolumeTolerance
	if volumeTolerance <= 0 {
		volumeTolerance = defaultVolumeTolerance
	}

	return &VerificationService{
		matcher: NewMatcher(MatcherConfig{
			EnableFuzzyMatching: config.EnableFuzzyMatching,
			EnableDebugLogging:  config.EnableDebugLogging,
		}),
		brandThreshold:       brandThreshold,
		productTypeThreshold: productTypeThreshold,
		abvTolerance:         abvTolerance,
		volumeTolerance:      volumeTolerance,
		enableDebugLogging:   config.EnableDebugLogging,
	}
}

// VerifyLabel compares the submitted form values against OCR text from the
// label image and returns one verdict per field, in fixed order: brand name,
// product class/type, alcohol content, net contents, government warning.
//
// It never fails: every ambiguity degrades to a not_found or mismatch
// verdict so that a single field cannot abort verification of the rest.
func (s *VerificationService) VerifyLabel(form domain.FormFields, ocrText string) *domain.VerificationRun {
	run := &domain.VerificationRun{
		Form:    form,
		OCRText: ocrText,
	}

	normalized := Normalize(ocrText)
	if normalized == "" {
		// OCR produced nothing usable; every field depends on it
		run.Verdicts = s.emptyOCRVerdicts()
		return run
	}

	if s.enableDebugLogging {
		log.Printf("[VERIFY] normalized OCR text: %d chars", len(normalized))
	}

	run.Verdicts = []domain.FieldVerdict{
		s.checkBrandName(form.BrandName, normalized),
		s.checkProductType(form.ProductType, normalized),
		s.checkAlcoholContent(form.AlcoholContent, normalized),
		s.checkNetContents(form.NetContents, normalized),
		s.checkGovernmentWarning(normalized),
	}
	run.Passed = overallStatus(run.Verdicts)

	return run
}

// emptyOCRVerdicts reports not_found for every field: a missing extraction
// is a distinct failure mode from a contradicted one
func (s *VerificationService) emptyOCRVerdicts() []domain.FieldVerdict {
	fields := []string{
		domain.FieldBrandName,
		domain.FieldProductType,
		domain.FieldAlcoholContent,
		domain.FieldNetContents,
		domain.FieldGovernmentWarning,
	}

	verdicts := make([]domain.FieldVerdict, 0, len(fields))
	for _, field := range fields {
		verdicts = append(verdicts, domain.FieldVerdict{
			Field:   field,
			Status:  domain.StatusNotFound,
			Message: "OCR returned no usable text; the field could not be checked.",
		})
	}
	return verdicts
}

// overallStatus is pass iff the four content fields match. The government
// warning check is best-effort: a warning verdict there does not fail the
// run, since failing to detect the phrase does not prove it is missing.
func overallStatus(verdicts []domain.FieldVerdict) bool {
	for _, v := range verdicts {
		if v.Field == domain.FieldGovernmentWarning {
			if v.Status != domain.StatusMatch && v.Status != domain.StatusWarning {
				return false
			}
			continue
		}
		if v.Status != domain.StatusMatch {
			return false
		}
	}
	return true
}

func (s *VerificationService) checkBrandName(brandName, normalized string) domain.FieldVerdict {
	needle := Normalize(brandName)
	if needle == "" {
		return domain.FieldVerdict{
			Field:   domain.FieldBrandName,
			Status:  domain.StatusNotFound,
			Message: "No brand name was submitted on the form.",
		}
	}

	score, phrase := s.matcher.BestWindow(normalized, needle)
	status := s.matcher.Classify(score, s.brandThreshold)

	if s.enableDebugLogging {
		log.Printf("[VERIFY] brand %q score %.2f -> %s", needle, score, status)
	}

	if status == domain.StatusMatch {
		return domain.FieldVerdict{
			Field:    domain.FieldBrandName,
			Status:   domain.StatusMatch,
			Message:  fmt.Sprintf("Brand name %q found on the label.", brandName),
			Evidence: &domain.Evidence{MatchedText: phrase},
		}
	}
	return domain.FieldVerdict{
		Field:   domain.FieldBrandName,
		Status:  domain.StatusMismatch,
		Message: fmt.Sprintf("Brand name %q not found on the label. Verify the image matches the form data.", brandName),
	}
}

func (s *VerificationService) checkProductType(productType, normalized string) domain.FieldVerdict {
	needle := Normalize(productType)
	if needle == "" {
		return domain.FieldVerdict{
			Field:   domain.FieldProductType,
			Status:  domain.StatusNotFound,
			Message: "No product class/type was submitted on the form.",
		}
	}

	score, phrase := s.matcher.BestWindow(normalized, needle)
	if s.matcher.Classify(score, s.productTypeThreshold) == domain.StatusMatch {
		return domain.FieldVerdict{
			Field:    domain.FieldProductType,
			Status:   domain.StatusMatch,
			Message:  fmt.Sprintf("Product type %q found on the label.", productType),
			Evidence: &domain.Evidence{MatchedText: phrase},
		}
	}

	// Long type phrases vary in wording; accept when at least half of the
	// significant words appear somewhere in the label text
	words := strings.Fields(needle)
	if len(words) > 2 {
		found := 0
		for _, word := range words {
			if len(word) > 3 && strings.Contains(normalized, word) {
				found++
			}
		}
		if found >= len(words)/2 {
			return domain.FieldVerdict{
				Field:    domain.FieldProductType,
				Status:   domain.StatusMatch,
				Message:  fmt.Sprintf("Product type %q found on the label (partial match).", productType),
				Evidence: &domain.Evidence{MatchedText: phrase},
			}
		}
	}

	return domain.FieldVerdict{
		Field:   domain.FieldProductType,
		Status:  domain.StatusMismatch,
		Message: fmt.Sprintf("Product type %q not found on the label.", productType),
	}
}

func (s *VerificationService) checkAlcoholContent(formABV, normalized string) domain.FieldVerdict {
	quantity, ok := ExtractAlcoholContent(normalized)
	if !ok {
		return domain.FieldVerdict{
			Field:   domain.FieldAlcoholContent,
			Status:  domain.StatusNotFound,
			Message: fmt.Sprintf("Could not find alcohol content on the label. Expected %s%%.", formABV),
		}
	}

	if s.enableDebugLogging {
		log.Printf("[VERIFY] alcohol extracted %q = %.2f %s", quantity.RawMatch, quantity.Value, quantity.Unit)
	}

	status, evidence := CompareABV(formABV, quantity, s.abvTolerance)
	switch status {
	case domain.StatusMatch:
		return domain.FieldVerdict{
			Field:    domain.FieldAlcoholContent,
			Status:   domain.StatusMatch,
			Message:  fmt.Sprintf("Alcohol content %s%% found on the label.", formABV),
			Evidence: evidence,
		}
	case domain.StatusMismatch:
		return domain.FieldVerdict{
			Field:    domain.FieldAlcoholContent,
			Status:   domain.StatusMismatch,
			Message:  fmt.Sprintf("Expected %s%% but found %.1f%% on the label.", formABV, quantity.ABV()),
			Evidence: evidence,
		}
	default:
		return domain.FieldVerdict{
			Field:   domain.FieldAlcoholContent,
			Status:  domain.StatusNotFound,
			Message: "Invalid alcohol content format in form.",
		}
	}
}

func (s *VerificationService) checkNetContents(formContents, normalized string) domain.FieldVerdict {
	needle := Normalize(formContents)
	if needle == "" {
		return domain.FieldVerdict{
			Field:   domain.FieldNetContents,
			Status:  domain.StatusNotFound,
			Message: "No net contents value was submitted on the form.",
		}
	}

	// Direct textual hit ("750 ml" appearing verbatim) short-circuits the
	// numeric path
	if strings.Contains(normalized, needle) {
		return domain.FieldVerdict{
			Field:    domain.FieldNetContents,
			Status:   domain.StatusMatch,
			Message:  fmt.Sprintf("Net contents %q found on the label.", formContents),
			Evidence: &domain.Evidence{MatchedText: needle},
		}
	}

	quantity, ok := ExtractNetContents(normalized)
	if !ok {
		return domain.FieldVerdict{
			Field:   domain.FieldNetContents,
			Status:  domain.StatusNotFound,
			Message: fmt.Sprintf("Net contents %q not clearly found on the label.", formContents),
		}
	}

	status, evidence := CompareNetContents(formContents, quantity, s.volumeTolerance)
	switch status {
	case domain.StatusMatch:
		return domain.FieldVerdict{
			Field:    domain.FieldNetContents,
			Status:   domain.StatusMatch,
			Message:  fmt.Sprintf("Net contents %q found on the label.", formContents),
			Evidence: evidence,
		}
	case domain.StatusMismatch:
		return domain.FieldVerdict{
			Field:    domain.FieldNetContents,
			Status:   domain.StatusMismatch,
			Message:  fmt.Sprintf("Net contents %q does not match %q on the label.", formContents, quantity.RawMatch),
			Evidence: evidence,
		}
	default:
		return domain.FieldVerdict{
			Field:   domain.FieldNetContents,
			Status:  domain.StatusNotFound,
			Message: fmt.Sprintf("Could not parse net contents %q from the form.", formContents),
		}
	}
}

func (s *VerificationService) checkGovernmentWarning(normalized string) domain.FieldVerdict {
	detection := DetectGovernmentWarning(normalized)

	if detection.HeaderFound && len(detection.Keywords) >= warningKeywordMinimum {
		return domain.FieldVerdict{
			Field:    domain.FieldGovernmentWarning,
			Status:   domain.StatusMatch,
			Message:  "Government warning statement found on the label.",
			Evidence: &domain.Evidence{MatchedText: strings.Join(detection.Keywords, "; ")},
		}
	}

	if detection.HeaderFound {
		return domain.FieldVerdict{
			Field:    domain.FieldGovernmentWarning,
			Status:   domain.StatusWarning,
			Message:  "GOVERNMENT WARNING header found but the statement may be incomplete.",
			Evidence: &domain.Evidence{MatchedText: strings.Join(detection.Keywords, "; ")},
		}
	}

	return domain.FieldVerdict{
		Field:   domain.FieldGovernmentWarning,
		Status:  domain.StatusWarning,
		Message: "Government warning statement could not be detected on the label.",
	}
}
