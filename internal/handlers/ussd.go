// Package handlers assembles the USSD application served at the HTTP
// boundary: the main menu, the money-transfer flow behind branch 1, and
// the account screens behind branch 2.
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/avvvet/ussdflow/internal/flow"
	"github.com/avvvet/ussdflow/internal/store"
	"github.com/avvvet/ussdflow/internal/transfer"
	"github.com/avvvet/ussdflow/internal/ussd"
)

// App is the application behind the gateway endpoint.
type App struct {
	router *ussd.Router
}

var _ ussd.Handler = (*App)(nil)

// Options carry the application knobs.
type Options struct {
	// MaxTransferAmount caps a single transfer. Zero picks the default.
	MaxTransferAmount float64
}

// NewApp wires the menu routing and binds the transfer flow engine to the
// session store and processor.
func NewApp(sessions store.Store, transfers transfer.Service, opts Options) (*App, error) {
	if opts.MaxTransferAmount <= 0 {
		opts.MaxTransferAmount = 100000
	}

	engine, err := flow.NewEngine(sessions, transferFlow(transfers, opts.MaxTransferAmount))
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer flow: %w", err)
	}

	// "1" enters the flow, "1*..." continues it. A bare prefix on "1" would
	// also claim menu typos like "12".
	router := ussd.NewRouter().
		MatchFunc(ussd.OnInitial(), mainMenu).
		Match(ussd.OnExact("1"), engine).
		Match(ussd.OnPrefix("1"+ussd.PathDelimiter), engine).
		MatchFunc(ussd.OnExact("2"), accountMenu).
		MatchFunc(ussd.OnExact("2*1"), accountPhone).
		MatchFunc(ussd.OnExact("2*2"), accountNetwork).
		MatchFunc(ussd.OnExact("3"), help)

	return &App{router: router}, nil
}

// Handle dispatches one interaction.
func (a *App) Handle(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return a.router.Handle(ctx, req)
}

// transferFlow declares the money-transfer collection flow backed by the
// given processor.
func transferFlow(transfers transfer.Service, ceiling float64) flow.Definition {
	return flow.Definition{
		Fields: []flow.Field{
			{
				Name:     "recipient",
				Prompt:   PromptRecipient,
				Validate: flow.NonEmpty(RepromptRecipient),
			},
			{
				Name:     "amount",
				Prompt:   PromptAmount,
				Validate: flow.PositiveAmount(ceiling, RepromptAmountNumeric, repromptAmountRange(ceiling)),
			},
		},
		Confirm: flow.Confirm{
			Title: confirmTitle,
		},
		Action: func(ctx context.Context, req *ussd.Request, values map[string]string) (string, error) {
			amount, err := strconv.ParseFloat(strings.TrimSpace(values["amount"]), 64)
			if err != nil {
				return "", fmt.Errorf("collected amount %q does not parse: %w", values["amount"], err)
			}

			receipt, err := transfers.Transfer(ctx, &transfer.Request{
				SessionID:   req.SessionID,
				PhoneNumber: req.PhoneNumber,
				Recipient:   strings.TrimSpace(values["recipient"]),
				Amount:      amount,
			})
			if err != nil {
				return "", err
			}
			return receipt.Reference, nil
		},
		Success:   successMessage,
		Cancelled: TransferCancelled,
	}
}

func mainMenu(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return ussd.NewMenu(MainMenuTitle).
		Option("1", "Send Money").
		Option("2", "My Account").
		Option("3", "Help").
		BuildContinue(), nil
}

func accountMenu(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return ussd.NewMenu("My Account").
		Option("1", "My phone number").
		Option("2", "My network").
		BuildContinue(), nil
}

func accountPhone(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return ussd.End(accountPhoneMessage(req.PhoneNumber)), nil
}

func accountNetwork(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return ussd.End(accountNetworkMessage(ussd.NetworkFromCode(req.NetworkCode))), nil
}

func help(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	return ussd.End(HelpMessage), nil
}
