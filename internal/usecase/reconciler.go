package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/labellens/backend/internal/domain"
)

// CompareABV converts an extracted alcohol-strength quantity to canonical
// percent-ABV and compares it against the form-submitted value within an
// absolute tolerance (percentage points), absorbing OCR digit misreads and
// label rounding. An unparseable form value yields StatusNotFound.
func CompareABV(formValue string, q domain.ExtractedQuantity, tolerance float64) (domain.Status, *domain.Evidence) {
	form, err := strconv.ParseFloat(strings.TrimSpace(formValue), 64)
	if err != nil {
		return domain.StatusNotFound, nil
	}

	label := q.ABV()
	evidence := &domain.Evidence{
		MatchedText: q.RawMatch,
		FormValue:   form,
		LabelValue:  label,
		Unit:        string(domain.UnitPercentABV),
	}

	if math.Abs(form-label) <= tolerance {
		return domain.StatusMatch, evidence
	}
	return domain.StatusMismatch, evidence
}

// CompareNetContents parses the form's net-contents value with the same
// pattern family used on label text, converts both sides to milliliters, and
// compares within a tolerance proportional to the form-side magnitude (exact
// equality is too strict given rounding in source labels, e.g. "750 mL" vs
// "75 cl"). If the form side fails to parse, status is StatusNotFound.
func CompareNetContents(formValue string, q domain.ExtractedQuantity, relTolerance float64) (domain.Status, *domain.Evidence) {
	formQuantity, ok := ExtractNetContents(Normalize(formValue))
	if !ok {
		return domain.StatusNotFound, nil
	}

	formML := formQuantity.Milliliters()
	labelML := q.Milliliters()
	evidence := &domain.Evidence{
		MatchedText: q.RawMatch,
		FormValue:   formML,
		LabelValue:  labelML,
		Unit:        string(domain.UnitMilliliter),
	}

	if math.Abs(formML-labelML) <= relTolerance*formML {
		return domain.StatusMatch, evidence
	}
	return domain.StatusMismatch, evidence
}
