package errs

// Sentinel errors shared by the usecase and handler layers.
// Usecases Mark their failures with one of these; the HTTP layer branches on them with Is.
var (
	// Caller errors
	ErrUnauthenticated = New("unauthenticated")
	ErrInvalidArgument = New("invalid argument")

	// Request lifecycle errors
	ErrDuplicatePendingRequest = New("request already exists and is pending")
	ErrRequestNotFound         = New("request not found")
	ErrRequestAlreadyResolved  = New("request is no longer pending")

	// Infrastructure errors
	ErrStoreFailure = New("request store failure")
	ErrSinkFailure  = New("notification sink failure")
)
