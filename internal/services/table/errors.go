package table

// TableError is a custom error type for table-related errors
type TableError string

// Error implements the error interface
func (e TableError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrDeckNotFound     TableError = "deck not found"
	ErrDieNotFound      TableError = "die not found"
	ErrNotFound         TableError = "no deck or die with this ID"
	ErrNotCharged       TableError = "die cannot hold charge"
	ErrInvalidDieKind   TableError = "unknown die kind"
	ErrInvalidCount     TableError = "count cannot be negative"
	ErrNoCatalog        TableError = "no catalog has been loaded"
	ErrNilInput         TableError = "input cannot be nil"
	ErrNilConfig        TableError = "config cannot be nil"
	ErrNilClock         TableError = "clock cannot be nil"
	ErrNilUUIDGenerator TableError = "UUID generator cannot be nil"
)
