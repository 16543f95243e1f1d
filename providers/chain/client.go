package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Client abstracts the on-chain gift escrow interaction.
type Client interface {
	// CreateGiftCard escrows funds for a recipient and returns the card id
	// assigned by the contract.
	CreateGiftCard(ctx context.Context, req CreateGiftCardRequest) (CreateGiftCardResponse, error)
	// SimulateRedeem dry-runs the redemption and returns the exact call to
	// submit. A nil prepared call means the redemption would revert.
	SimulateRedeem(ctx context.Context, cardID string) (*PreparedCall, error)
	// Redeem submits a previously simulated call unmodified.
	Redeem(ctx context.Context, prepared *PreparedCall) (RedeemResponse, error)
	// GetGiftCard reads the current escrow state for a card.
	GetGiftCard(ctx context.Context, cardID string) (*GiftCard, error)
	// OperatorAddress is the address signing on behalf of this service.
	OperatorAddress() string
}

// GiftCard mirrors the contract's escrow record. Read-only to this service;
// only the contract flips Redeemed, and only once.
type GiftCard struct {
	CardID      string   `json:"card_id"`
	PoolBalance *big.Int `json:"pool_balance"`
	Owner       string   `json:"owner"`
	Recipient   string   `json:"recipient"`
	Mail        string   `json:"mail"`
	Redeemed    bool     `json:"redeemed"`
}

type CreateGiftCardRequest struct {
	Recipient string
	// Amount in the token's smallest unit
	Amount *big.Int
	Mail   string
}

type CreateGiftCardResponse struct {
	CardID string
	TxHash string
}

// PreparedCall is the immutable output of a simulation. Redeem submits it
// as-is and never re-derives the calldata.
type PreparedCall struct {
	CardID   string
	To       common.Address
	Data     []byte
	GasLimit uint64
	Value    *big.Int
}

type RedeemResponse struct {
	TxHash string
}
