package draft

import "fmt"

var (
	ErrSessionNotFound     = fmt.Errorf("draft session not found")
	ErrSubmitInFlight      = fmt.Errorf("a submission is already in progress for this draft")
	ErrUnknownField        = fmt.Errorf("unknown draft field")
	ErrInvalidAmount       = fmt.Errorf("amount must be a non-negative decimal")
	ErrUnsupportedCurrency = fmt.Errorf("currency entered is not supported")
	ErrMessageTooLong      = fmt.Errorf("message exceeds the maximum length")
	ErrInvalidTheme        = fmt.Errorf("theme entered is not supported")
)

type DraftError struct {
	ErrorObj error
	Field    string
	Value    string
}

func (d *DraftError) Error() string {
	return d.ErrorObj.Error()
}

func (d *DraftError) Unwrap() error {
	return d.ErrorObj
}

func (d *DraftError) ErrorOut() string {
	return fmt.Sprintf("%v: field=%v value=%v", d.ErrorObj.Error(), d.Field, d.Value)
}

func NewDraftError(err error, field string, value string) *DraftError {
	return &DraftError{
		ErrorObj: err,
		Field:    field,
		Value:    value,
	}
}
