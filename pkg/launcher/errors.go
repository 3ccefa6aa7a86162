package launcher

import "errors"

var (
	// ErrCancelled is returned when the user closes the menu without choosing
	ErrCancelled = errors.New("cancelled by user")

	// ErrUnknownLauncher is returned for launcher names qp does not know
	ErrUnknownLauncher = errors.New("unknown launcher")
)

// IsCancelled checks whether err comes from the user closing the menu
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
