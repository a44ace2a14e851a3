package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountValidateDebit(t *testing.T) {
	savings := &AccountType{
		ID:             1,
		Name:           "Adult Savings",
		Code:           "S",
		MinimumBalance: decimal.NewFromInt(1000),
	}

	tests := []struct {
		name    string
		balance int64
		amount  int64
		wantErr error
	}{
		{
			name:    "debit leaves balance above minimum",
			balance: 5000,
			amount:  3000,
			wantErr: nil,
		},
		{
			name:    "debit down to exact minimum",
			balance: 5000,
			amount:  4000,
			wantErr: nil,
		},
		{
			name:    "debit below minimum balance",
			balance: 5000,
			amount:  4001,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "debit more than balance",
			balance: 1000,
			amount:  5000,
			wantErr: ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.NewFromInt(tt.balance), Status: AccountActive}

			err := acc.ValidateDebit(decimal.NewFromInt(tt.amount), savings)
			if err != tt.wantErr {
				t.Errorf("ValidateDebit() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if got := acc.ApplyDebit(decimal.NewFromInt(30)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("ApplyDebit() = %s, want 70", got)
	}

	if got := acc.ApplyCredit(decimal.NewFromInt(30)); !got.Equal(decimal.NewFromInt(130)) {
		t.Errorf("ApplyCredit() = %s, want 130", got)
	}
}

func TestMonthlySavingsInterestFloors(t *testing.T) {
	// 10000.99 * 4% / 12 = 33.336633..., floored to 33.33 not rounded to 33.34
	acc := &Account{Balance: decimal.RequireFromString("10000.99")}
	savings := &AccountType{InterestRate: decimal.NewFromInt(4)}

	got := acc.MonthlySavingsInterest(savings)
	if want := decimal.RequireFromString("33.33"); !got.Equal(want) {
		t.Errorf("MonthlySavingsInterest() = %s, want %s", got, want)
	}
}

func TestMonthlySavingsInterestZeroRate(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(10000)}
	checking := &AccountType{InterestRate: decimal.Zero}

	if got := acc.MonthlySavingsInterest(checking); !got.IsZero() {
		t.Errorf("expected zero interest for zero-rate type, got %s", got)
	}
}
