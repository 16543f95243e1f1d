package apistrings

const (
	/// Draft Related Strings
	DraftNotFound     = "draft session does not exist"
	InvalidDraftInput = "check 'field' or 'value' keys, invalid request"
	SubmitInFlight    = "a submission is already in progress for this draft"

	/// Gift Card Related Strings
	RecipientNameRequired = "please enter the recipient's name"
	InvalidRecipient      = "please check the recipient's wallet address"
	InvalidEmail          = "invalid email address, please check submitted email address"
	InvalidAmount         = "please enter a valid amount"
	SwitchNetwork         = "unsupported network, switch to a supported network"
	CreationFailed        = "gift card creation failed, please check the recipient address and your balance"
	CardNotFound          = "gift card does not exist"
	LookupFailed          = "could not look up gift cards, please try again later"
	AlreadyClaimed        = "this gift has already been claimed"
	ClaimNotReady         = "your claim is still being prepared, please try again"
	ClaimFailed           = "failed to claim your gift"
	InvalidClaimToken     = "claim code is invalid or expired"

	/// AI Related Strings
	AIUnavailable = "the AI feature is currently disabled"
	AIFailed      = "could not generate a message, please try again"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"
)
