package handlers

import (
	"fmt"

	"github.com/avvvet/ussdflow/internal/ussd"
)

// Screen texts for the shipped application. Handsets page at roughly 182
// characters, so every screen stays well under that.
const (
	MainMenuTitle = "Welcome to QuickPay"

	PromptRecipient       = "Enter recipient name:"
	RepromptRecipient     = "Name cannot be empty. Enter recipient name:"
	PromptAmount          = "Enter amount:"
	RepromptAmountNumeric = "Amount must be a number. Enter amount:"

	TransferCancelled = "Transfer cancelled."

	HelpMessage = "For help call 0800-000-111 or email support@quickpay.example."
)

func repromptAmountRange(ceiling float64) string {
	return fmt.Sprintf("Amount must be more than 0 and at most %.0f. Enter amount:", ceiling)
}

func confirmTitle(values map[string]string) string {
	return fmt.Sprintf("Send %s to %s?", values["amount"], values["recipient"])
}

func successMessage(values map[string]string, reference string) string {
	return fmt.Sprintf("Sent %s to %s. Reference: %s", values["amount"], values["recipient"], reference)
}

func accountPhoneMessage(phone string) string {
	return "Your phone number is " + phone
}

func accountNetworkMessage(n ussd.Network) string {
	switch {
	case n.Known():
		return fmt.Sprintf("You are on %s (%s).", n.Name, n.Country)
	case n.Code == "":
		return "Your network was not reported."
	default:
		return fmt.Sprintf("You are on %s (code %s).", n.Name, n.Code)
	}
}
