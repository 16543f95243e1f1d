package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"
	"sync"
)

// FakeClient mimics the escrow contract in memory. Used in tests and when no
// RPC endpoint is configured.
type FakeClient struct {
	mu     sync.Mutex
	nextID int64
	cards  map[string]*GiftCard

	CreateCalls []CreateGiftCardRequest
	RedeemCalls []*PreparedCall

	CreateErr   error
	SimulateErr error
	SimulateNil bool
	RedeemErr   error
}

func NewFakeClient(firstID int64) *FakeClient {
	if firstID <= 0 {
		firstID = 1
	}
	return &FakeClient{
		nextID: firstID,
		cards:  make(map[string]*GiftCard),
	}
}

func (f *FakeClient) CreateGiftCard(_ context.Context, req CreateGiftCardRequest) (CreateGiftCardResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls = append(f.CreateCalls, req)
	if f.CreateErr != nil {
		return CreateGiftCardResponse{}, f.CreateErr
	}

	cardID := strconv.FormatInt(f.nextID, 10)
	f.nextID++

	f.cards[cardID] = &GiftCard{
		CardID:      cardID,
		PoolBalance: new(big.Int).Set(req.Amount),
		Owner:       "0x0000000000000000000000000000000000000001",
		Recipient:   req.Recipient,
		Mail:        req.Mail,
		Redeemed:    false,
	}

	return CreateGiftCardResponse{
		CardID: cardID,
		TxHash: fakeHash("create" + cardID),
	}, nil
}

func (f *FakeClient) SimulateRedeem(_ context.Context, cardID string) (*PreparedCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SimulateErr != nil {
		return nil, f.SimulateErr
	}
	if f.SimulateNil {
		return nil, nil
	}

	card, ok := f.cards[cardID]
	if !ok {
		return nil, NewChainError(ErrCardNotFound, cardID, "unknown card")
	}
	if card.Redeemed {
		return nil, NewChainError(ErrAlreadyRedeemed, cardID, "already redeemed")
	}

	return &PreparedCall{
		CardID:   cardID,
		Data:     []byte("redeemGiftCard:" + cardID),
		GasLimit: 21000,
		Value:    big.NewInt(0),
	}, nil
}

func (f *FakeClient) Redeem(_ context.Context, prepared *PreparedCall) (RedeemResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if prepared == nil {
		return RedeemResponse{}, ErrNilPreparedCall
	}

	f.RedeemCalls = append(f.RedeemCalls, prepared)
	if f.RedeemErr != nil {
		return RedeemResponse{}, f.RedeemErr
	}

	card, ok := f.cards[prepared.CardID]
	if !ok {
		return RedeemResponse{}, NewChainError(ErrCardNotFound, prepared.CardID, "unknown card")
	}
	if card.Redeemed {
		return RedeemResponse{}, NewChainError(ErrAlreadyRedeemed, prepared.CardID, "already redeemed")
	}

	// one-way transition
	card.Redeemed = true

	return RedeemResponse{TxHash: fakeHash("redeem" + prepared.CardID)}, nil
}

func (f *FakeClient) GetGiftCard(_ context.Context, cardID string) (*GiftCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	card, ok := f.cards[cardID]
	if !ok {
		return nil, NewChainError(ErrCardNotFound, cardID, "unknown card")
	}

	snapshot := *card
	snapshot.PoolBalance = new(big.Int).Set(card.PoolBalance)
	return &snapshot, nil
}

func (f *FakeClient) OperatorAddress() string {
	return "0x0000000000000000000000000000000000000001"
}

func fakeHash(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return "0x" + hex.EncodeToString(sum[:])
}
