package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/ledger/infra/repository/memory"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCLIService(t *testing.T) (*accountsvc.Service, *account.Account, *account.Account) {
	t.Helper()
	color.NoColor = true
	uow := memory.NewUoW(memory.NewStore())
	repo, err := uow.AccountRepository()
	require.NoError(t, err)

	mk := func(number string, balance int64) *account.Account {
		a, err := account.New().
			WithHolder("Holder "+number, "doc-"+number).
			WithKey("001", "0001", number).
			WithDailyLimit(decimal.NewFromInt(500)).
			WithBalance(decimal.NewFromInt(balance)).
			Build()
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), a))
		return a
	}
	src, dst := mk("1", 300), mk("2", 0)

	svc := accountsvc.NewService(config.Deps{
		Uow:    uow,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return svc, src, dst
}

func TestExecute(t *testing.T) {
	svc, src, dst := newCLIService(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, execute(ctx, svc, []string{"deposit", dst.ID.String(), "25"}, &out))
	assert.Contains(t, out.String(), "deposit of 25.00 recorded")
	assert.Contains(t, out.String(), "balance: 25.00")

	out.Reset()
	require.NoError(t, execute(ctx, svc, []string{"transfer", src.ID.String(), dst.ID.String(), "100"}, &out))
	assert.Contains(t, out.String(), "transfer of 100.00 recorded")
	assert.Contains(t, out.String(), "balance: 200.00")

	out.Reset()
	require.NoError(t, execute(ctx, svc, []string{"withdraw", src.ID.String(), "50"}, &out))
	assert.Contains(t, out.String(), "balance: 150.00")

	out.Reset()
	require.NoError(t, execute(ctx, svc, []string{"balance", dst.ID.String()}, &out))
	assert.Contains(t, out.String(), "125.00")

	out.Reset()
	require.NoError(t, execute(ctx, svc, []string{"movements", dst.ID.String()}, &out))
	assert.Contains(t, out.String(), "2 movement(s)")
	assert.Contains(t, out.String(), "100.00")
}

func TestExecute_Errors(t *testing.T) {
	svc, src, _ := newCLIService(t)
	ctx := context.Background()
	var out bytes.Buffer

	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"unknown command", []string{"close"}, true},
		{"missing amount", []string{"deposit", src.ID.String()}, true},
		{"bad id", []string{"balance", "nope"}, false},
		{"bad amount", []string{"withdraw", src.ID.String(), "ten"}, false},
		{"insufficient balance", []string{"withdraw", src.ID.String(), "301"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(ctx, svc, tt.args, &out)
			require.Error(t, err)
			assert.Equal(t, tt.usage, errors.Is(err, errUsage))
		})
	}
}
