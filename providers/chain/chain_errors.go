package chain

import "fmt"

var (
	// ErrUnsupportedNetwork is returned when the RPC node reports a chain id
	// outside SupportedNetworks. Callers match on this instead of scraping
	// error strings.
	ErrUnsupportedNetwork = fmt.Errorf("connected node is not on a supported network")
	ErrCardNotFound       = fmt.Errorf("gift card does not exist on chain")
	ErrAlreadyRedeemed    = fmt.Errorf("gift card has already been redeemed")
	ErrNilPreparedCall    = fmt.Errorf("redeem requires a simulated prepared call")
)

type ChainError struct {
	ErrorObj error
	CardID   string
	Reason   string
}

func (c *ChainError) Error() string {
	return c.ErrorObj.Error()
}

func (c *ChainError) Unwrap() error {
	return c.ErrorObj
}

func (c *ChainError) ErrorOut() string {
	return fmt.Sprintf("%v: card=%v reason=%v", c.ErrorObj.Error(), c.CardID, c.Reason)
}

func NewChainError(err error, cardID string, reason string) *ChainError {
	return &ChainError{
		ErrorObj: err,
		CardID:   cardID,
		Reason:   reason,
	}
}
