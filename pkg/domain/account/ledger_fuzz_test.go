package account_test

import (
	"testing"
	"time"

	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

func fuzzAccount(t *testing.T, number string, balance decimal.Decimal) *domainaccount.Account {
	acc, err := domainaccount.New().
		WithHolder("Fuzz", "000").
		WithKey("001", "0001", number).
		WithDailyLimit(decimal.NewFromInt(500)).
		WithBalance(balance).
		Build()
	if err != nil {
		t.Skip()
	}
	return acc
}

// FuzzLedgerWithdraw checks Ledger.Withdraw never overdraws and never
// mutates the account on rejection.
func FuzzLedgerWithdraw(f *testing.F) {
	f.Add("100", "50")
	f.Add("100", "-50")
	f.Add("0", "0")
	f.Add("1000", "1000.00000001")
	f.Add("5", "1e2")
	ledger := domainaccount.NewLedger(domainaccount.DefaultPolicy())
	f.Fuzz(func(t *testing.T, balance, amount string) {
		b, err := decimal.NewFromString(balance)
		if err != nil || b.IsNegative() {
			t.Skip()
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			t.Skip()
		}
		acc := fuzzAccount(t, "1", b)
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Withdraw panicked: %v (balance=%q, amount=%q)", r, balance, amount)
			}
		}()
		m, err := ledger.Withdraw(acc, a, time.Now())
		if err != nil {
			if !acc.Balance.Equal(b) || len(acc.Movements()) != 0 {
				t.Errorf("rejected withdraw changed the account: %v", acc.Balance)
			}
			return
		}
		if acc.Balance.IsNegative() {
			t.Errorf("balance is negative after withdraw: %v (balance=%q, amount=%q)", acc.Balance, balance, amount)
		}
		if !acc.Balance.Equal(b.Add(m.EffectOn(acc.ID))) {
			t.Errorf("balance %v does not match movement effect %v", acc.Balance, m.EffectOn(acc.ID))
		}
	})
}

// FuzzLedgerTransfer checks a transfer conserves the combined balance.
func FuzzLedgerTransfer(f *testing.F) {
	f.Add("1000", "0", "250")
	f.Add("10", "-5", "20")
	f.Add("500", "0", "500.5")
	ledger := domainaccount.NewLedger(domainaccount.DefaultPolicy())
	f.Fuzz(func(t *testing.T, srcBalance, dstBalance, amount string) {
		sb, err1 := decimal.NewFromString(srcBalance)
		db, err2 := decimal.NewFromString(dstBalance)
		a, err3 := decimal.NewFromString(amount)
		if err1 != nil || err2 != nil || err3 != nil {
			t.Skip()
		}
		src, dst := fuzzAccount(t, "1", sb), fuzzAccount(t, "2", db)
		total := sb.Add(db)

		_, err := ledger.Transfer(src, dst, a, time.Now())
		if !src.Balance.Add(dst.Balance).Equal(total) {
			t.Errorf("transfer changed the combined balance: %v + %v != %v", src.Balance, dst.Balance, total)
		}
		if err == nil && src.Balance.IsNegative() && !sb.IsNegative() {
			t.Errorf("transfer overdrew the source: %v", src.Balance)
		}
	})
}
