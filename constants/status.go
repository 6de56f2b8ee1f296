package constants

// FormatTag is the classifier's label for the detected layout family.
type FormatTag string

const (
	Format1      FormatTag = "FORMAT_1"     // single-line colon/# labelled layout
	Format2      FormatTag = "FORMAT_2"     // section-labelled layout (Seller:, ITEMS..SUMMARY)
	ImageOCR     FormatTag = "IMAGE_OCR"    // OCR-mangled variant of the section layout
	Unrecognized FormatTag = "UNRECOGNIZED" // no probe matched; permissive fallback extraction
)

// State is the per-document pipeline state.
type State string

// Stable values (logged and reported as these exact strings).
const (
	StateReceived    State = "RECEIVED"
	StateClassified  State = "CLASSIFIED"
	StateExtracted   State = "EXTRACTED"
	StateNormalized  State = "NORMALIZED"
	StateCategorized State = "CATEGORIZED"
)

// Outcome is the terminal result for one document.
type Outcome string

const (
	OutcomeAccepted              Outcome = "ACCEPTED"
	OutcomeRejectedDuplicate     Outcome = "REJECTED_DUPLICATE"
	OutcomeRejectedUnrecoverable Outcome = "REJECTED_UNRECOVERABLE"
)
