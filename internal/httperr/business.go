package httperr

import "errors"

// BusinessError is a rule violation identified by a stable snake_case code.
type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrBusinessConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Code returns the business code carried by err, or "".
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
