package giftcard

import "fmt"

var (
	ErrRecipientNameRequired   = fmt.Errorf("recipient name is required")
	ErrInvalidRecipientAddress = fmt.Errorf("recipient wallet address is invalid")
	ErrInvalidEmail            = fmt.Errorf("recipient email address is invalid")
	ErrInvalidAmount           = fmt.Errorf("amount must be a positive decimal")
	ErrAmountPrecision         = fmt.Errorf("amount has more precision than the token supports")
	ErrUnsupportedNetwork      = fmt.Errorf("unsupported network, switch to a supported network")
	ErrCreationFailed          = fmt.Errorf("gift card creation failed, please check the recipient address and your balance")
	ErrSimulationPending       = fmt.Errorf("redemption is still being prepared, please try again")
	ErrCardNotFound            = fmt.Errorf("gift card not found")
	ErrLookupFailed            = fmt.Errorf("could not look up gift cards")
	ErrAlreadyClaimed          = fmt.Errorf("gift card has already been claimed")
	ErrClaimFailed             = fmt.Errorf("failed to claim gift card")
	ErrInvalidClaimToken       = fmt.Errorf("claim code is invalid or expired")
	ErrAIUnavailable           = fmt.Errorf("the AI feature is currently disabled")
	ErrAIGenerationFailed      = fmt.Errorf("could not generate a message, please try again")
)

type GiftcardError struct {
	ErrorObj error
	CardID   string
	Other    []error
}

func (g *GiftcardError) Error() string {
	return g.ErrorObj.Error()
}

func (g *GiftcardError) Unwrap() error {
	return g.ErrorObj
}

func (g *GiftcardError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", g.ErrorObj.Error(), g.CardID)
}

func NewGiftcardError(err error, cardID string, e ...error) *GiftcardError {
	return &GiftcardError{
		ErrorObj: err,
		CardID:   cardID,
		Other:    e,
	}
}
