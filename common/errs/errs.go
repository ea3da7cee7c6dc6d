package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// AccountNotFound is returned when a transaction names an address
	// with no live account behind it.
	AccountNotFound = ErrorKind("account not found")

	// MissingSignature is returned when a required signer did not sign
	// the transaction.
	MissingSignature = ErrorKind("missing required signature")

	// WrongProgramOwner is returned when an account is not owned by the
	// program expected to own it.
	WrongProgramOwner = ErrorKind("account owned by wrong program")

	// IncorrectProgramID is returned when a transaction names a collaborator
	// program account that is not the expected program.
	IncorrectProgramID = ErrorKind("incorrect program id")

	// InsufficientFunds is returned when a balance move would overdraw
	// the source account.
	InsufficientFunds = ErrorKind("insufficient funds")

	// InvalidAccountData is returned when an account's data does not
	// pass the validity checks of the program interpreting it.
	InvalidAccountData = ErrorKind("invalid account data")

	// Overflow is returned when an arithmetic result does not fit its type.
	Overflow = ErrorKind("overflow uint64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
