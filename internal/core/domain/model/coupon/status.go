package coupon

import (
	"fmt"

	"discount/internal/pkg/errs"
)

// Status of a coupon. The only transition is Unused -> Used.
type Status string

const (
	Unused Status = "unused"
	Used   Status = "used"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	if s != Unused && s != Used {
		return errs.NewValueIsInvalidErrorWithCause("coupon status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
