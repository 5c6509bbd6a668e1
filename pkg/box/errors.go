package box

import apgerrors "github.com/matzehuels/apg/pkg/errors"

var (
	// ErrDuplicatePlug is returned when a plug name is already registered on
	// the same side of a box.
	ErrDuplicatePlug = apgerrors.New(apgerrors.ErrCodeDuplicatePlug, "plug already exists")

	// ErrUnknownPlug is returned by schedulers when a wire names a missing plug.
	ErrUnknownPlug = apgerrors.New(apgerrors.ErrCodeUnknownPlug, "plug does not exist")

	// ErrAlreadyAttached is returned when attaching twice or registering a
	// plug after attachment.
	ErrAlreadyAttached = apgerrors.New(apgerrors.ErrCodeAlreadyAttached, "box is already attached to a program")

	// ErrWriteOutsideProcessing is returned by [OutputPlug.Write] when the
	// owning box is not processing.
	ErrWriteOutsideProcessing = apgerrors.New(apgerrors.ErrCodeWriteOutsideProcessing, "output written outside of processing")

	// ErrNoValue is returned by [InputPlug.Copy] before anything was delivered.
	ErrNoValue = apgerrors.New(apgerrors.ErrCodeNoValue, "plug has no value")
)
