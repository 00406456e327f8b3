package dice

// Error is a custom error type for dice errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Is reports every dice error as an invalid argument so callers can match
// the whole class with errors.Is(err, ErrInvalidArgument).
func (e Error) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Define errors
const (
	ErrInvalidArgument  Error = "invalid argument"
	ErrInvalidFaceCount Error = "a die must have at least one face"
	ErrInvalidFace      Error = "a face must be equal to itself"
	ErrNegativeRolls    Error = "cannot roll a negative number of times"
	ErrNegativeCharge   Error = "a charged die cannot have negative charge"
	ErrNotOrdered       Error = "die faces are not ordered"
	ErrNilSource        Error = "random source cannot be nil"
	ErrNilDie           Error = "die cannot be nil"
)
