package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/ussdflow/internal/store"
	"github.com/avvvet/ussdflow/internal/transfer"
	"github.com/avvvet/ussdflow/internal/ussd"
)

func newTestApp(t *testing.T) (*App, *transfer.Ledger) {
	t.Helper()

	sessions := store.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = sessions.Close() })

	ledger := transfer.NewLedger()
	app, err := NewApp(sessions, ledger, Options{MaxTransferAmount: 1000})
	require.NoError(t, err)
	return app, ledger
}

func dial(t *testing.T, app *App, sessionID, text, networkCode string) *ussd.Response {
	t.Helper()

	res, err := app.Handle(context.Background(), &ussd.Request{
		SessionID:   sessionID,
		ServiceCode: "*384*7777#",
		PhoneNumber: "+254712345678",
		Text:        text,
		NetworkCode: networkCode,
	})
	require.NoError(t, err)
	return res
}

func TestAppMenuScreens(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "initial shows the main menu",
			text: "",
			want: "CON Welcome to QuickPay\n1. Send Money\n2. My Account\n3. Help",
		},
		{
			name: "account submenu",
			text: "2",
			want: "CON My Account\n1. My phone number\n2. My network",
		},
		{
			name: "phone echo",
			text: "2*1",
			want: "END Your phone number is +254712345678",
		},
		{
			name: "help",
			text: "3",
			want: "END " + HelpMessage,
		},
		{
			name: "unrouted selection",
			text: "9",
			want: "END " + ussd.DefaultInvalidOption,
		},
		{
			name: "selection sharing a digit with a route",
			text: "12",
			want: "END " + ussd.DefaultInvalidOption,
		},
		{
			name: "unrouted deep path",
			text: "2*7",
			want: "END " + ussd.DefaultInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := dial(t, app, "sess-"+tt.text, tt.text, "63902")
			assert.Equal(t, tt.want, res.Render())
		})
	}
}

func TestAppNetworkScreen(t *testing.T) {
	app, _ := newTestApp(t)

	res := dial(t, app, "sess-net-1", "2*2", "63902")
	assert.Equal(t, "END You are on Safaricom Kenya (Kenya).", res.Render())

	res = dial(t, app, "sess-net-2", "2*2", "00000")
	assert.Equal(t, "END You are on Unknown Network (code 00000).", res.Render())

	res = dial(t, app, "sess-net-3", "2*2", "")
	assert.Equal(t, "END Your network was not reported.", res.Render())
}

func TestAppTransferFlow(t *testing.T) {
	app, ledger := newTestApp(t)
	const id = "sess-transfer"

	res := dial(t, app, id, "1", "63902")
	assert.Equal(t, "CON "+PromptRecipient, res.Render())

	res = dial(t, app, id, "1*Ama", "63902")
	assert.Equal(t, "CON "+PromptAmount, res.Render())

	res = dial(t, app, id, "1*Ama*500", "63902")
	assert.Equal(t, "CON Send 500 to Ama?\n1. Confirm\n2. Cancel", res.Render())

	res = dial(t, app, id, "1*Ama*500*1", "63902")
	require.True(t, res.IsEnding())
	require.Contains(t, res.Message(), "Sent 500 to Ama. Reference: TXN-")

	// The reference on the screen must be a booked transfer.
	reference := res.Message()[strings.LastIndex(res.Message(), " ")+1:]
	receipt := ledger.Find(reference)
	require.NotNil(t, receipt)
	assert.Equal(t, "Ama", receipt.Recipient)
	assert.Equal(t, 500.0, receipt.Amount)
	assert.Equal(t, "+254712345678", receipt.PhoneNumber)

	// Stale retry of a completed session.
	res = dial(t, app, id, "1*Ama*500*1*1", "63902")
	assert.Equal(t, "END This session is already completed.", res.Render())
}

func TestAppTransferValidationReprompts(t *testing.T) {
	app, ledger := newTestApp(t)
	const id = "sess-validation"

	dial(t, app, id, "1", "63902")

	res := dial(t, app, id, "1*", "63902")
	assert.Equal(t, "CON "+RepromptRecipient, res.Render())

	dial(t, app, id, "1*Ama", "63902")

	res = dial(t, app, id, "1*Ama*abc", "63902")
	assert.Equal(t, "CON "+RepromptAmountNumeric, res.Render())

	res = dial(t, app, id, "1*Ama*abc*5000", "63902")
	assert.Equal(t, "CON Amount must be more than 0 and at most 1000. Enter amount:", res.Render())

	// "NaN" parses as a float; it must land on the range re-prompt, never
	// on the confirmation screen.
	res = dial(t, app, id, "1*Ama*abc*5000*NaN", "63902")
	assert.Equal(t, "CON Amount must be more than 0 and at most 1000. Enter amount:", res.Render())

	res = dial(t, app, id, "1*Ama*abc*5000*NaN*300", "63902")
	assert.Equal(t, "CON Send 300 to Ama?\n1. Confirm\n2. Cancel", res.Render())

	assert.Nil(t, ledger.Find("TXN-NOTYET"))
}

func TestAppTransferCancel(t *testing.T) {
	app, _ := newTestApp(t)
	const id = "sess-cancel"

	dial(t, app, id, "1", "63902")
	dial(t, app, id, "1*Kofi", "63902")
	dial(t, app, id, "1*Kofi*50", "63902")

	res := dial(t, app, id, "1*Kofi*50*2", "63902")
	assert.Equal(t, "END "+TransferCancelled, res.Render())

	// The cancelled session is gone; dialing again starts over.
	res = dial(t, app, id, "1*Kofi*50*2*1", "63902")
	assert.Equal(t, "CON "+PromptRecipient, res.Render())
}

func TestAppTransferAmbiguousConfirmAborts(t *testing.T) {
	app, _ := newTestApp(t)
	const id = "sess-abort"

	dial(t, app, id, "1", "63902")
	dial(t, app, id, "1*Kofi", "63902")
	dial(t, app, id, "1*Kofi*50", "63902")

	res := dial(t, app, id, "1*Kofi*50*7", "63902")
	assert.Equal(t, "END Invalid choice. Transaction aborted.", res.Render())
}
