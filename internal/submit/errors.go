package submit

import "errors"

var (
	// ErrValidation is returned when the submission input is rejected
	// before any network call is made
	ErrValidation = errors.New("invalid submission")

	// ErrAllUploadsFailed is returned when every image upload failed;
	// nothing is persisted in that case
	ErrAllUploadsFailed = errors.New("all image uploads failed")

	// ErrPersist is returned when the create-update call failed after the
	// uploads settled; already-uploaded assets remain orphaned remotely
	ErrPersist = errors.New("update persist failed")
)
