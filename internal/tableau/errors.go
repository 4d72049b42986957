package tableau

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned when construction parameters fall
	// outside their documented ranges.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIndexOutOfBounds is returned when a site, row, or column index is
	// outside the state's dimensions.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// CheckSite returns an ErrIndexOutOfBounds error unless 0 <= site < s.Len().
func (s *State) CheckSite(site int) error {
	if site < 0 || site >= s.l {
		return errors.Wrapf(ErrIndexOutOfBounds, "site %d not in [0, %d)", site, s.l)
	}
	return nil
}

// CheckRow returns an ErrIndexOutOfBounds error unless 0 <= row < s.Rows().
func (s *State) CheckRow(row int) error {
	if row < 0 || row >= s.rows {
		return errors.Wrapf(ErrIndexOutOfBounds, "row %d not in [0, %d)", row, s.rows)
	}
	return nil
}
