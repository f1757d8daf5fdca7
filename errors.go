package exactq

import "github.com/pkg/errors"

// Error kinds mirror the error channel of the host database. The host maps
// them onto its own error codes; here they are sentinels to be tested with
// errors.Is or errors.Cause.
var (
	// ErrNotImplemented reports a call the exact family does not support,
	// such as weighted insertion.
	ErrNotImplemented = errors.New("not implemented")

	// ErrBadArguments reports a usage error: an inadmissible level or a
	// malformed level permutation. It must abort the enclosing query.
	ErrBadArguments = errors.New("bad arguments")

	// ErrCannotReadAllData reports a serialized state whose size prefix
	// promises more bytes than the source can deliver.
	ErrCannotReadAllData = errors.New("cannot read all data")

	// ErrMemoryLimitExceeded reports a state that would grow beyond what the
	// process can be asked to allocate.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
)
