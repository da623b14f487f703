package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"discount/internal/pkg/errs"
)

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var numberPattern = regexp.MustCompile(`^ORD-\d{6}-[A-Z0-9]{5}$`)

// Number is the human-readable order reference used for public tracking,
// e.g. ORD-261015-K7Q2M.
type Number string

// NewNumber generates a number for an order created at the given time.
func NewNumber(at time.Time) (Number, error) {
	suffix := make([]byte, 5)
	limit := big.NewInt(int64(len(numberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate order number: %w", err)
		}
		suffix[i] = numberAlphabet[n.Int64()]
	}
	return Number(fmt.Sprintf("ORD-%s-%s", at.UTC().Format("060102"), suffix)), nil
}

// ParseNumber validates the textual form.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match ORD-YYMMDD-XXXXX", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}
