package models

import (
	"time"

	db "github.com/Amity808/crypt-bappgift/db/sqlc"
	"github.com/Amity808/crypt-bappgift/services/draft"
	"github.com/Amity808/crypt-bappgift/services/giftcard"
)

type DraftSessionResponse struct {
	SessionID string      `json:"session_id"`
	Draft     draft.Draft `json:"draft"`
}

func ToDraftSessionResponse(sessionID string, d draft.Draft) DraftSessionResponse {
	return DraftSessionResponse{
		SessionID: sessionID,
		Draft:     d,
	}
}

type UpdateDraftRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type CreateGiftCardRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
}

type GenerateMessageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type GenerateMessageResponse struct {
	Message string `json:"message"`
}

type ClaimGiftCardRequest struct {
	ClaimToken string `json:"claim_token" binding:"required"`
}

// GiftCardRecordResponse is one directory row in a "your gift cards" view.
type GiftCardRecordResponse struct {
	CardID        string    `json:"card_id"`
	RecipientName string    `json:"recipient_name"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Message       string    `json:"message"`
	Theme         string    `json:"theme"`
	ClaimLink     string    `json:"claim_link"`
	TxHash        string    `json:"tx_hash"`
	Redeemed      bool      `json:"redeemed"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToGiftCardRecordList(rows []db.GiftCard) []GiftCardRecordResponse {
	out := make([]GiftCardRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, GiftCardRecordResponse{
			CardID:        row.CardID,
			RecipientName: row.RecipientName,
			Amount:        row.Amount,
			Currency:      row.Currency,
			Message:       row.Message,
			Theme:         row.Theme,
			ClaimLink:     row.ClaimLink,
			TxHash:        row.TxHash,
			Redeemed:      row.Redeemed,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out
}

type GiftCardResponse struct {
	CardID        string     `json:"card_id"`
	PoolBalance   string     `json:"pool_balance"`
	Owner         string     `json:"owner"`
	Recipient     string     `json:"recipient"`
	RecipientMail string     `json:"recipient_mail"`
	Redeemed      bool       `json:"redeemed"`
	RecipientName string     `json:"recipient_name,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	Message       string     `json:"message,omitempty"`
	Theme         string     `json:"theme,omitempty"`
	ClaimLink     string     `json:"claim_link,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

func ToGiftCardResponse(details *giftcard.CardDetails) GiftCardResponse {
	resp := GiftCardResponse{
		CardID:        details.Chain.CardID,
		Owner:         details.Chain.Owner,
		Recipient:     details.Chain.Recipient,
		RecipientMail: details.Chain.Mail,
		Redeemed:      details.Chain.Redeemed,
	}

	if details.Chain.PoolBalance != nil {
		resp.PoolBalance = details.Chain.PoolBalance.String()
	}

	if record := details.Directory; record != nil {
		resp.RecipientName = record.RecipientName
		resp.Currency = record.Currency
		resp.Message = record.Message
		resp.Theme = record.Theme
		resp.ClaimLink = record.ClaimLink
		createdAt := record.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}
