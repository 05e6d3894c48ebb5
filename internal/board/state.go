package board

// AsyncState is what a view renders for one controller. Error holds the
// localized message shown to the user; Err keeps the typed cause.
type AsyncState[T any] struct {
	Items   []T
	Loading bool
	Error   string
	Err     error
}

func (s AsyncState[T]) HasError() bool {
	return s.Error != ""
}

// SubmissionState is the render state of a SubmissionController.
type SubmissionState struct {
	Submitting bool
	Error      string
	Err        error
}

func (s SubmissionState) HasError() bool {
	return s.Error != ""
}
