package snapshot

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gmercad/EDSG/internal/domain"
)

// The World Bank has no observations before 1960.
const earliestYear = 1960

var (
	countryCodeRe   = regexp.MustCompile(`^[A-Z]{3}$`)
	indicatorCodeRe = regexp.MustCompile(`^[A-Za-z0-9]+(\.[A-Za-z0-9]+)+$`)
)

// Validator checks the structural shape of an incoming request before
// any I/O happens.
type Validator struct{}

// NewValidator creates a request validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate fails fast with domain.ErrInvalidRequest on structural
// errors: malformed country code, empty or malformed indicator codes,
// or a year outside the provider's range. Year 0 is valid and means
// "trailing window".
func (v *Validator) Validate(req domain.IndicatorRequest) error {
	if !countryCodeRe.MatchString(req.CountryCode) {
		return fmt.Errorf("%w: country code %q must be three uppercase letters (ISO3)",
			domain.ErrInvalidRequest, req.CountryCode)
	}

	if len(req.IndicatorCodes) == 0 {
		return fmt.Errorf("%w: at least one indicator code is required", domain.ErrInvalidRequest)
	}

	for _, code := range req.IndicatorCodes {
		if !indicatorCodeRe.MatchString(code) {
			return fmt.Errorf("%w: indicator code %q is not a valid series code",
				domain.ErrInvalidRequest, code)
		}
	}

	if req.Year != 0 && (req.Year < earliestYear || req.Year > time.Now().Year()) {
		return fmt.Errorf("%w: year %d is outside the available range",
			domain.ErrInvalidRequest, req.Year)
	}

	return nil
}
