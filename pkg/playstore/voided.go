package playstore

import (
	"time"

	"google.golang.org/api/androidpublisher/v3"
)

// VoidedReason is why a purchase was voided.
type VoidedReason int64

const (
	VoidedReasonOther VoidedReason = iota
	VoidedReasonRemorse
	VoidedReasonNotReceived
	VoidedReasonDefective
	VoidedReasonAccidentalPurchase
	VoidedReasonFraud
	VoidedReasonFriendlyFraud
	VoidedReasonChargeback
)

func (r VoidedReason) String() string {
	switch r {
	case VoidedReasonOther:
		return "other"
	case VoidedReasonRemorse:
		return "remorse"
	case VoidedReasonNotReceived:
		return "not_received"
	case VoidedReasonDefective:
		return "defective"
	case VoidedReasonAccidentalPurchase:
		return "accidental_purchase"
	case VoidedReasonFraud:
		return "fraud"
	case VoidedReasonFriendlyFraud:
		return "friendly_fraud"
	case VoidedReasonChargeback:
		return "chargeback"
	default:
		return ""
	}
}

// VoidedSource is who initiated the voiding.
type VoidedSource int64

const (
	VoidedSourceUser VoidedSource = iota
	VoidedSourceDeveloper
	VoidedSourceGoogle
)

func (s VoidedSource) String() string {
	switch s {
	case VoidedSourceUser:
		return "user"
	case VoidedSourceDeveloper:
		return "developer"
	case VoidedSourceGoogle:
		return "google"
	default:
		return ""
	}
}

// VoidedPurchase wraps one purchase that was canceled, refunded or charged
// back.
type VoidedPurchase struct {
	purchase *androidpublisher.VoidedPurchase
}

// NewVoidedPurchase wraps a raw voided purchase.
func NewVoidedPurchase(purchase *androidpublisher.VoidedPurchase) *VoidedPurchase {
	return &VoidedPurchase{purchase: purchase}
}

// Raw returns the underlying android publisher record.
func (p *VoidedPurchase) Raw() *androidpublisher.VoidedPurchase {
	return p.purchase
}

// Kind is the record kind as stored in the android publisher service.
func (p *VoidedPurchase) Kind() string {
	return p.purchase.Kind
}

// OrderID is the order identifier associated with the purchase.
func (p *VoidedPurchase) OrderID() string {
	return p.purchase.OrderId
}

// PurchaseToken uniquely identifies the purchase.
func (p *VoidedPurchase) PurchaseToken() string {
	return p.purchase.PurchaseToken
}

// PurchasedAt is the purchase time in UTC.
func (p *VoidedPurchase) PurchasedAt() time.Time {
	return time.UnixMilli(p.purchase.PurchaseTimeMillis).UTC()
}

// VoidedAt is the time the purchase was voided, in UTC.
func (p *VoidedPurchase) VoidedAt() time.Time {
	return time.UnixMilli(p.purchase.VoidedTimeMillis).UTC()
}

// Reason is why the purchase was voided.
func (p *VoidedPurchase) Reason() VoidedReason {
	return VoidedReason(p.purchase.VoidedReason)
}

// Source is who initiated the voiding.
func (p *VoidedPurchase) Source() VoidedSource {
	return VoidedSource(p.purchase.VoidedSource)
}

// VoidedByUser reports whether the user initiated the voiding.
func (p *VoidedPurchase) VoidedByUser() bool {
	return p.Source() == VoidedSourceUser
}

// VoidedByDeveloper reports whether the developer initiated the voiding.
func (p *VoidedPurchase) VoidedByDeveloper() bool {
	return p.Source() == VoidedSourceDeveloper
}

// VoidedByGoogle reports whether Google initiated the voiding.
func (p *VoidedPurchase) VoidedByGoogle() bool {
	return p.Source() == VoidedSourceGoogle
}
