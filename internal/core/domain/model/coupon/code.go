package coupon

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"
	"sync"

	"discount/internal/pkg/errs"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	prefixLen = 3
	digitsLen = 5
	letters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}-\d{5}$`)

// Code is the redemption token a customer shows at the restaurant, e.g. PIZ-04821.
type Code string

// NewCode builds a code for restaurantName: the first three ASCII letters of the name,
// topped up with random letters when the name has fewer, then a dash and five random
// digits. A nil source uses crypto/rand.
func NewCode(restaurantName string, source io.Reader) (Code, error) {
	if source == nil {
		source = rand.Reader
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(restaurantName) {
		if b.Len() == prefixLen {
			break
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	for b.Len() < prefixLen {
		c, err := pick(source, letters)
		if err != nil {
			return "", err
		}
		b.WriteByte(c)
	}

	b.WriteByte('-')
	for range digitsLen {
		c, err := pick(source, digits)
		if err != nil {
			return "", err
		}
		b.WriteByte(c)
	}

	return Code(b.String()), nil
}

// ParseCode normalizes user input (trims, upper-cases) and checks the format.
func ParseCode(s string) (Code, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("code")
	}
	if !codePattern.MatchString(normalized) {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q does not match AAA-00000", s))
	}
	return Code(normalized), nil
}

func (c Code) String() string {
	return string(c)
}

func pick(source io.Reader, alphabet string) (byte, error) {
	n, err := rand.Int(source, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("generate coupon code: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// CodeFilter remembers issued codes in a bloom filter so that most fresh codes can be
// accepted without a repository round trip. A negative answer is definite; a positive
// one must be confirmed against storage.
type CodeFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewCodeFilter sizes the filter for expected codes at a 1% false positive rate.
func NewCodeFilter(expected uint) *CodeFilter {
	if expected == 0 {
		expected = 1
	}
	return &CodeFilter{filter: bloom.NewWithEstimates(expected, 0.01)}
}

// MayContain reports whether code might already be issued.
func (f *CodeFilter) MayContain(code Code) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(code.String())
}

// Add records an issued code.
func (f *CodeFilter) Add(code Code) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(code.String())
}
