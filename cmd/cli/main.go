package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  deposit <account_id> <amount>
  withdraw <account_id> <amount>
  transfer <source_id> <destination_id> <amount>
  balance <account_id>
  movements <account_id>
  accounts`

var (
	errUsage = errors.New("invalid usage")

	success  = color.New(color.FgGreen, color.Bold)
	failure  = color.New(color.FgRed, color.Bold)
	faint    = color.New(color.Faint)
	incoming = color.New(color.FgGreen)
	outgoing = color.New(color.FgRed)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		failure.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		failure.Fprintln(os.Stderr, "Failed to initialize:", err)
		os.Exit(1)
	}
	if cfg.DB.Url == "" {
		faint.Fprintln(os.Stderr, "DATABASE_URL is not set; changes live only for this invocation")
	}

	err = execute(context.Background(), accountsvc.NewService(*deps), os.Args[1:], os.Stdout)
	cleanup()
	if err != nil {
		failure.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func execute(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "deposit", "withdraw":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s <account_id> <amount>", errUsage, cmd)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		var m *account.Movement
		if cmd == "deposit" {
			m, err = svc.Deposit(ctx, commands.Deposit{AccountID: id, Amount: amount})
		} else {
			m, err = svc.Withdraw(ctx, commands.Withdraw{AccountID: id, Amount: amount})
		}
		if err != nil {
			return err
		}
		return printResult(ctx, svc, out, m, id)

	case "transfer":
		if len(args) != 3 {
			return fmt.Errorf("%w: transfer <source_id> <destination_id> <amount>", errUsage)
		}
		source, err := parseID(args[0])
		if err != nil {
			return err
		}
		destination, err := parseID(args[1])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		m, err := svc.Transfer(ctx, commands.Transfer{
			SourceAccountID:      source,
			DestinationAccountID: destination,
			Amount:               amount,
		})
		if err != nil {
			return err
		}
		return printResult(ctx, svc, out, m, source)

	case "balance":
		if len(args) != 1 {
			return fmt.Errorf("%w: balance <account_id>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := svc.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account %s (%s) balance: ", a.ID, a.Key)
		success.Fprintln(out, a.Balance.StringFixed(2))
		return nil

	case "movements":
		if len(args) != 1 {
			return fmt.Errorf("%w: movements <account_id>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		movements, err := svc.ListMovements(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range movements {
			printMovement(out, m, id)
		}
		faint.Fprintf(out, "%d movement(s)\n", len(movements))
		return nil

	case "accounts":
		accounts, err := svc.ListAccounts(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			fmt.Fprintf(out, "%s  %-14s  %-20s  %s\n", a.ID, a.Key, a.HolderName, a.Balance.StringFixed(2))
		}
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid account ID %q: %w", s, err)
	}
	return id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

func printResult(ctx context.Context, svc *accountsvc.Service, out io.Writer, m *account.Movement, id uuid.UUID) error {
	a, err := svc.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	success.Fprintf(out, "%s of %s recorded (%s)\n", m.Kind(), m.Amount().StringFixed(2), m.ID())
	fmt.Fprintf(out, "Account %s balance: %s\n", a.ID, a.Balance.StringFixed(2))
	return nil
}

func printMovement(out io.Writer, m *account.Movement, id uuid.UUID) {
	effect := m.EffectOn(id)
	c := incoming
	if effect.IsNegative() {
		c = outgoing
	}
	fmt.Fprintf(out, "%s  %-10s  ", m.Timestamp().Format("2006-01-02 15:04:05"), m.Kind())
	c.Fprintf(out, "%12s", effect.StringFixed(2))
	fmt.Fprintf(out, "  %s\n", m.ID())
}
