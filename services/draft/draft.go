package draft

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Theme is the visual card theme chosen by the sender.
type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemePurple Theme = "purple"
	ThemeGreen  Theme = "green"
	ThemeGold   Theme = "gold"
	ThemeDark   Theme = "dark"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeBlue, ThemePurple, ThemeGreen, ThemeGold, ThemeDark:
		return true
	}
	return false
}

const (
	MaxMessageLength = 100
	DefaultCurrency  = "CBTC"
	DefaultAmount    = "1"
)

// Draft is the in-progress card creation state. It lives only for the
// duration of one creation session and is reset to defaults on success.
type Draft struct {
	RecipientName    string `json:"recipient_name"`
	RecipientAddress string `json:"recipient_address"`
	MailAddress      string `json:"mail_address"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Message          string `json:"message"`
	Theme            Theme  `json:"theme"`
}

func DefaultDraft() Draft {
	return Draft{
		Amount:   DefaultAmount,
		Currency: DefaultCurrency,
		Theme:    ThemeBlue,
	}
}

// Field names accepted by the reducer.
const (
	FieldRecipientName    = "recipient_name"
	FieldRecipientAddress = "recipient_address"
	FieldMailAddress      = "mail_address"
	FieldAmount           = "amount"
	FieldCurrency         = "currency"
	FieldMessage          = "message"
	FieldTheme            = "theme"
)

// Update is a single tagged field change.
type Update struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// Apply is the single reducer for all draft field updates. Every accepted
// field is handled here so validation and formatting stay in one place.
func Apply(d Draft, u Update) (Draft, error) {
	switch u.Field {
	case FieldRecipientName:
		d.RecipientName = strings.TrimSpace(u.Value)
	case FieldRecipientAddress:
		d.RecipientAddress = strings.TrimSpace(u.Value)
	case FieldMailAddress:
		d.MailAddress = strings.TrimSpace(u.Value)
	case FieldAmount:
		amount, err := decimal.NewFromString(u.Value)
		if err != nil {
			return d, NewDraftError(ErrInvalidAmount, u.Field, u.Value)
		}
		if amount.IsNegative() {
			return d, NewDraftError(ErrInvalidAmount, u.Field, u.Value)
		}
		d.Amount = amount.String()
	case FieldCurrency:
		if !strings.EqualFold(u.Value, DefaultCurrency) {
			return d, NewDraftError(ErrUnsupportedCurrency, u.Field, u.Value)
		}
		d.Currency = strings.ToUpper(u.Value)
	case FieldMessage:
		if len(u.Value) > MaxMessageLength {
			return d, NewDraftError(ErrMessageTooLong, u.Field, u.Value)
		}
		d.Message = u.Value
	case FieldTheme:
		theme := Theme(strings.ToLower(u.Value))
		if !theme.Valid() {
			return d, NewDraftError(ErrInvalidTheme, u.Field, u.Value)
		}
		d.Theme = theme
	default:
		return d, NewDraftError(ErrUnknownField, u.Field, u.Value)
	}

	return d, nil
}
