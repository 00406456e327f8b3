package catalog

// CatalogError is a custom error type for catalog definition errors
type CatalogError string

// Error implements the error interface
func (e CatalogError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEmptyName      CatalogError = "definition name cannot be empty"
	ErrDuplicateName  CatalogError = "definition name is already used"
	ErrInvalidCopies  CatalogError = "card copies cannot be negative"
	ErrEmptyCardName  CatalogError = "card name cannot be empty"
	ErrAmbiguousDie   CatalogError = "die needs exactly one of sides, faces or labels"
	ErrInvalidSides   CatalogError = "die sides must be at least one"
	ErrNegativeCharge CatalogError = "die charge cannot be negative"
	ErrChargedLabels  CatalogError = "labeled dice cannot hold charge"
	ErrNoLabels       CatalogError = "die has no labels"
	ErrDeckNotDefined CatalogError = "deck is not defined"
	ErrDieNotDefined  CatalogError = "die is not defined"
)
