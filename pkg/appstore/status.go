// Package appstore verifies base64 receipt payloads against Apple's
// verification servers and returns unified verified responses.
package appstore

import "fmt"

// Verification status codes returned by Apple's verification server.
const (
	StatusOK                   = 0
	StatusInvalidJSON          = 21000
	StatusMalformedReceiptData = 21002
	StatusReceiptNotAuthentic  = 21003
	StatusSharedSecretMismatch = 21004
	StatusServerUnavailable    = 21005
	StatusSubscriptionExpired  = 21006
	StatusSandboxReceipt       = 21007
	StatusProductionReceipt    = 21008
	StatusAccountNotFound      = 21010
)

var statusMessages = map[int]string{
	StatusInvalidJSON:          "the request did not contain valid JSON",
	StatusMalformedReceiptData: "the receipt-data property was malformed or missing",
	StatusReceiptNotAuthentic:  "the receipt could not be authenticated",
	StatusSharedSecretMismatch: "the shared secret does not match the one on file for the account",
	StatusServerUnavailable:    "the receipt server is not currently available",
	StatusSubscriptionExpired:  "the subscription has expired",
	StatusSandboxReceipt:       "this sandbox receipt was sent to the production environment",
	StatusProductionReceipt:    "this production receipt was sent to the sandbox environment",
	StatusAccountNotFound:      "the receipt could not be authorized",
}

// VerificationError reports a non-zero status from the verification server.
type VerificationError struct {
	Status int
}

func (e *VerificationError) Error() string {
	msg, ok := statusMessages[e.Status]
	if !ok {
		msg = "unknown status"
	}
	return fmt.Sprintf("receipt verification failed with status %d: %s", e.Status, msg)
}
