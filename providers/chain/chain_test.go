package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
)

func TestNetworkByID(t *testing.T) {
	n, ok := NetworkByID(5115)
	if !ok {
		t.Fatal("citrea testnet should be supported")
	}
	if n.Name != "Citrea Chain Testnet" || n.Currency.Symbol != "CBTC" || !n.Testnet {
		t.Fatalf("unexpected network: %+v", n)
	}

	if _, ok := NetworkByID(1); ok {
		t.Fatal("mainnet should not be supported")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name    string
		chainID *big.Int
		want    bool
	}{
		{name: "citrea testnet", chainID: big.NewInt(5115), want: true},
		{name: "ethereum mainnet", chainID: big.NewInt(1), want: false},
		{name: "nil chain id", chainID: nil, want: false},
		{name: "overflowing chain id", chainID: new(big.Int).Lsh(big.NewInt(1), 80), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSupported(tc.chainID); got != tc.want {
				t.Fatalf("IsSupported(%v) = %v, want %v", tc.chainID, got, tc.want)
			}
		})
	}
}

func TestParseCardID(t *testing.T) {
	id, err := parseCardID("42")
	if err != nil {
		t.Fatalf("parseCardID() unexpected error: %v", err)
	}
	if id.Int64() != 42 {
		t.Fatalf("parseCardID() = %v, want 42", id)
	}

	for _, bad := range []string{"", "abc", "-1", "0x2a"} {
		if _, err := parseCardID(bad); err == nil {
			t.Errorf("parseCardID(%q) should fail", bad)
		}
	}
}

func TestMapRevert(t *testing.T) {
	tests := []struct {
		name   string
		revert string
		want   error
	}{
		{name: "already redeemed", revert: "execution reverted: Gift card already redeemed", want: ErrAlreadyRedeemed},
		{name: "missing card", revert: "execution reverted: Gift card does not exist", want: ErrCardNotFound},
		{name: "invalid card", revert: "execution reverted: Invalid card ID", want: ErrCardNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapRevert("42", fmt.Errorf("%s", tc.revert))
			if !errors.Is(got, tc.want) {
				t.Fatalf("mapRevert() = %v, want %v", got, tc.want)
			}
		})
	}

	// unrecognised reverts pass through wrapped
	got := mapRevert("42", fmt.Errorf("insufficient funds"))
	if errors.Is(got, ErrAlreadyRedeemed) || errors.Is(got, ErrCardNotFound) {
		t.Fatalf("mapRevert() should not classify an unknown revert: %v", got)
	}
}

func TestFakeClientLifecycle(t *testing.T) {
	ctx := context.Background()
	f := NewFakeClient(7)

	created, err := f.CreateGiftCard(ctx, CreateGiftCardRequest{
		Recipient: "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		Amount:    big.NewInt(1_000_000),
		Mail:      "ada@example.com",
	})
	if err != nil {
		t.Fatalf("CreateGiftCard() unexpected error: %v", err)
	}
	if created.CardID != "7" {
		t.Fatalf("CardID = %s, want 7", created.CardID)
	}
	if created.TxHash == "" {
		t.Fatal("CreateGiftCard() returned an empty tx hash")
	}

	card, err := f.GetGiftCard(ctx, created.CardID)
	if err != nil {
		t.Fatalf("GetGiftCard() unexpected error: %v", err)
	}
	if card.PoolBalance.Int64() != 1_000_000 || card.Redeemed {
		t.Fatalf("unexpected card: %+v", card)
	}

	prepared, err := f.SimulateRedeem(ctx, created.CardID)
	if err != nil {
		t.Fatalf("SimulateRedeem() unexpected error: %v", err)
	}
	if prepared == nil || prepared.CardID != created.CardID {
		t.Fatalf("unexpected prepared call: %+v", prepared)
	}

	if _, err := f.Redeem(ctx, prepared); err != nil {
		t.Fatalf("Redeem() unexpected error: %v", err)
	}

	// redeemed is a one-way transition
	if _, err := f.Redeem(ctx, prepared); !errors.Is(err, ErrAlreadyRedeemed) {
		t.Fatalf("second Redeem() error = %v, want ErrAlreadyRedeemed", err)
	}
	if _, err := f.SimulateRedeem(ctx, created.CardID); !errors.Is(err, ErrAlreadyRedeemed) {
		t.Fatalf("SimulateRedeem() after redeem error = %v, want ErrAlreadyRedeemed", err)
	}

	card, err = f.GetGiftCard(ctx, created.CardID)
	if err != nil {
		t.Fatalf("GetGiftCard() unexpected error: %v", err)
	}
	if !card.Redeemed {
		t.Fatal("card should be redeemed")
	}
}

func TestFakeClientNilPreparedCall(t *testing.T) {
	f := NewFakeClient(1)

	if _, err := f.Redeem(context.Background(), nil); !errors.Is(err, ErrNilPreparedCall) {
		t.Fatalf("Redeem(nil) error = %v, want ErrNilPreparedCall", err)
	}
}

func TestFakeClientUnknownCard(t *testing.T) {
	ctx := context.Background()
	f := NewFakeClient(1)

	if _, err := f.GetGiftCard(ctx, "999"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("GetGiftCard() error = %v, want ErrCardNotFound", err)
	}
	if _, err := f.SimulateRedeem(ctx, "999"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("SimulateRedeem() error = %v, want ErrCardNotFound", err)
	}
}
