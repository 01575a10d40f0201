package domain

// Status classifies the outcome of a single field check
type Status string

const (
	// StatusMatch means the form value was confirmed on the label
	StatusMatch Status = "match"

	// StatusMismatch means the label contradicts the form value
	StatusMismatch Status = "mismatch"

	// StatusNotFound means the field could not be confirmed or denied
	StatusNotFound Status = "not_found"

	// StatusWarning means a best-effort check could not confirm presence
	StatusWarning Status = "warning"
)

// Unit tags the unit of an extracted quantity
type Unit string

const (
	UnitPercentABV Unit = "percent_abv"
	UnitProof      Unit = "proof"
	UnitMilliliter Unit = "ml"
	UnitCentiliter Unit = "cl"
	UnitLiter      Unit = "l"
	UnitFluidOunce Unit = "fl_oz"
	UnitGallon     Unit = "gal"
)

// Fixed conversion factors to milliliters
const (
	millilitersPerCentiliter = 10.0
	millilitersPerLiter      = 1000.0
	millilitersPerFluidOunce = 29.5735
	millilitersPerGallon     = 3785.41
)

// Field names in the order the orchestrator checks them. Consumers rely on
// this order for deterministic rendering.
const (
	FieldBrandName         = "Brand Name"
	FieldProductType       = "Product Class/Type"
	FieldAlcoholContent    = "Alcohol Content"
	FieldNetContents       = "Net Contents"
	FieldGovernmentWarning = "Government Warning"
)

// FormFields holds the values submitted on the compliance application form
type FormFields struct {
	BrandName      string `form:"brand_name" json:"brandName" binding:"required"`
	ProductType    string `form:"product_type" json:"productType" binding:"required"`
	AlcoholContent string `form:"alcohol_content" json:"alcoholContent" binding:"required"`
	NetContents    string `form:"net_contents" json:"netContents" binding:"required"`
}

// ExtractedQuantity is a structured value recognized in label text.
// Value is the numeric literal as it appeared (e.g. 90 for "90 proof");
// use ABV or Milliliters for the canonical representation.
type ExtractedQuantity struct {
	RawMatch string  `json:"rawMatch"`
	Value    float64 `json:"value"`
	Unit     Unit    `json:"unit"`
}

// ABV returns the quantity as percent alcohol by volume.
// Proof converts by halving; percent values pass through unchanged.
func (q ExtractedQuantity) ABV() float64 {
	if q.Unit == UnitProof {
		return q.Value / 2
	}
	return q.Value
}

// Milliliters returns the quantity converted to milliliters
func (q ExtractedQuantity) Milliliters() float64 {
	switch q.Unit {
	case UnitCentiliter:
		return q.Value * millilitersPerCentiliter
	case UnitLiter:
		return q.Value * millilitersPerLiter
	case UnitFluidOunce:
		return q.Value * millilitersPerFluidOunce
	case UnitGallon:
		return q.Value * millilitersPerGallon
	default:
		return q.Value
	}
}

// Evidence carries the matched substring or compared numeric values so a
// verdict can be rendered with transparency
type Evidence struct {
	MatchedText string  `json:"matchedText,omitempty"`
	FormValue   float64 `json:"formValue,omitempty"`
	LabelValue  float64 `json:"labelValue,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

// FieldVerdict is one outcome per checked field. Immutable once appended to
// a VerificationRun.
type FieldVerdict struct {
	Field    string    `json:"field"`
	Status   Status    `json:"status"`
	Message  string    `json:"message"`
	Evidence *Evidence `json:"evidence,omitempty"`
}

// WarningDetection reports how much of the statutory health-warning
// statement was recognized in the label text
type WarningDetection struct {
	HeaderFound bool     `json:"headerFound"`
	Keywords    []string `json:"keywords,omitempty"`
}

// VerificationRun aggregates one verification: the submitted form, the raw
// OCR text, the ordered verdicts, and the derived overall status. It is
// constructed per request and never mutated after assembly.
type VerificationRun struct {
	Form     FormFields     `json:"form"`
	OCRText  string         `json:"ocrText"`
	Verdicts []FieldVerdict `json:"verdicts"`
	Passed   bool           `json:"passed"`
}
