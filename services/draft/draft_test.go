package draft

import (
	"errors"
	"testing"
)

func TestApplyReducer(t *testing.T) {
	tests := []struct {
		name    string
		update  Update
		want    func(Draft) bool
		wantErr error
	}{
		{
			name:   "recipient name is trimmed",
			update: Update{Field: FieldRecipientName, Value: "  Ada Lovelace  "},
			want:   func(d Draft) bool { return d.RecipientName == "Ada Lovelace" },
		},
		{
			name:   "recipient address is trimmed",
			update: Update{Field: FieldRecipientAddress, Value: " 0xabc "},
			want:   func(d Draft) bool { return d.RecipientAddress == "0xabc" },
		},
		{
			name:   "mail address is trimmed",
			update: Update{Field: FieldMailAddress, Value: " ada@example.com "},
			want:   func(d Draft) bool { return d.MailAddress == "ada@example.com" },
		},
		{
			name:   "amount keeps canonical decimal form",
			update: Update{Field: FieldAmount, Value: "10.50"},
			want:   func(d Draft) bool { return d.Amount == "10.5" },
		},
		{
			name:    "amount rejects garbage",
			update:  Update{Field: FieldAmount, Value: "ten"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "amount rejects negatives",
			update:  Update{Field: FieldAmount, Value: "-3"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "currency accepts cbtc case-insensitively",
			update: Update{Field: FieldCurrency, Value: "cbtc"},
			want:   func(d Draft) bool { return d.Currency == "CBTC" },
		},
		{
			name:    "currency rejects anything else",
			update:  Update{Field: FieldCurrency, Value: "USDC"},
			wantErr: ErrUnsupportedCurrency,
		},
		{
			name:   "message within limit is kept verbatim",
			update: Update{Field: FieldMessage, Value: "happy birthday!"},
			want:   func(d Draft) bool { return d.Message == "happy birthday!" },
		},
		{
			name:    "message over the limit is rejected",
			update:  Update{Field: FieldMessage, Value: string(make([]byte, MaxMessageLength+1))},
			wantErr: ErrMessageTooLong,
		},
		{
			name:   "theme accepts a known value",
			update: Update{Field: FieldTheme, Value: "gold"},
			want:   func(d Draft) bool { return d.Theme == ThemeGold },
		},
		{
			name:    "theme rejects an unknown value",
			update:  Update{Field: FieldTheme, Value: "neon"},
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "unknown field is rejected",
			update:  Update{Field: "nickname", Value: "x"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := DefaultDraft()
			got, err := Apply(before, tc.update)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tc.wantErr)
				}
				if got != before {
					t.Fatalf("Apply() mutated the draft on a rejected update: %+v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if !tc.want(got) {
				t.Fatalf("Apply() produced unexpected draft: %+v", got)
			}
		})
	}
}

func TestApplyLeavesOtherFieldsUntouched(t *testing.T) {
	d := DefaultDraft()
	d.Message = "keep me"

	got, err := Apply(d, Update{Field: FieldRecipientName, Value: "Ada"})
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if got.Message != "keep me" {
		t.Fatalf("Apply() clobbered an unrelated field: %+v", got)
	}
	if got.Amount != DefaultAmount || got.Currency != DefaultCurrency {
		t.Fatalf("Apply() changed defaults: %+v", got)
	}
}

func TestDefaultDraft(t *testing.T) {
	d := DefaultDraft()
	if d.Amount != "1" || d.Currency != "CBTC" || d.Theme != ThemeBlue {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.RecipientName != "" || d.RecipientAddress != "" || d.MailAddress != "" || d.Message != "" {
		t.Fatalf("defaults should leave free-form fields empty: %+v", d)
	}
}

func TestThemeValid(t *testing.T) {
	for _, theme := range []Theme{ThemeBlue, ThemePurple, ThemeGreen, ThemeGold, ThemeDark} {
		if !theme.Valid() {
			t.Errorf("%q should be valid", theme)
		}
	}
	if Theme("neon").Valid() {
		t.Error("unknown theme should be invalid")
	}
}
