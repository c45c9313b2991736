package playstore

import (
	"time"

	"google.golang.org/api/androidpublisher/v3"
)

// Purchase and consumption states of a product purchase.
const (
	purchaseStatePurchased = 0
	purchaseStateCanceled  = 1
	purchaseStatePending   = 2

	consumptionStateConsumed = 1
)

// Product wraps a product purchase from the android publisher service.
type Product struct {
	purchase *androidpublisher.ProductPurchase
}

// NewProduct wraps a raw product purchase.
func NewProduct(purchase *androidpublisher.ProductPurchase) *Product {
	return &Product{purchase: purchase}
}

// Raw returns the underlying android publisher record.
func (p *Product) Raw() *androidpublisher.ProductPurchase {
	return p.purchase
}

// Valid reports whether the product was purchased and not canceled.
func (p *Product) Valid() bool {
	return p.purchase.PurchaseState == purchaseStatePurchased
}

// Canceled reports whether the purchase was canceled.
func (p *Product) Canceled() bool {
	return p.purchase.PurchaseState == purchaseStateCanceled
}

// Pending reports whether the purchase is awaiting payment.
func (p *Product) Pending() bool {
	return p.purchase.PurchaseState == purchaseStatePending
}

// Consumed reports whether the app has consumed the product.
func (p *Product) Consumed() bool {
	return p.purchase.ConsumptionState == consumptionStateConsumed
}

// Acknowledged reports whether the purchase has been acknowledged.
func (p *Product) Acknowledged() bool {
	return p.purchase.AcknowledgementState == 1
}

// OrderID is the order identifier associated with the purchase.
func (p *Product) OrderID() string {
	return p.purchase.OrderId
}

// PurchasedAt is the purchase time in UTC.
func (p *Product) PurchasedAt() time.Time {
	return time.UnixMilli(p.purchase.PurchaseTimeMillis).UTC()
}

// DeveloperPayload is the developer-specified supplemental order info.
func (p *Product) DeveloperPayload() string {
	return p.purchase.DeveloperPayload
}

// Subscription wraps a subscription purchase from the android publisher
// service.
type Subscription struct {
	purchase *androidpublisher.SubscriptionPurchase
}

// NewSubscription wraps a raw subscription purchase.
func NewSubscription(purchase *androidpublisher.SubscriptionPurchase) *Subscription {
	return &Subscription{purchase: purchase}
}

// Raw returns the underlying android publisher record.
func (s *Subscription) Raw() *androidpublisher.SubscriptionPurchase {
	return s.purchase
}

// WillRenew reports whether the subscription renews at the next billing date.
func (s *Subscription) WillRenew() bool {
	return s.purchase.AutoRenewing
}

// StartAt is the subscription start time in UTC.
func (s *Subscription) StartAt() time.Time {
	return time.UnixMilli(s.purchase.StartTimeMillis).UTC()
}

// ExpiresAt is the time the subscription expires in UTC.
func (s *Subscription) ExpiresAt() time.Time {
	return time.UnixMilli(s.purchase.ExpiryTimeMillis).UTC()
}

// ExpiredAt reports whether the subscription is expired at the given instant.
func (s *Subscription) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt().After(now)
}

// Canceled reports whether the user or system canceled the subscription.
func (s *Subscription) Canceled() bool {
	return s.purchase.CancelReason != 0 || s.purchase.UserCancellationTimeMillis != 0
}

// CanceledAt is the time the user canceled the subscription in UTC; the zero
// time when the subscription was not canceled by the user.
func (s *Subscription) CanceledAt() time.Time {
	if s.purchase.UserCancellationTimeMillis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.purchase.UserCancellationTimeMillis).UTC()
}

// PaymentPending reports whether the payment for the current period is still
// being processed.
func (s *Subscription) PaymentPending() bool {
	return s.purchase.PaymentState != nil && *s.purchase.PaymentState == 0
}

// Trial reports whether the subscription is in its free trial.
func (s *Subscription) Trial() bool {
	return s.purchase.PaymentState != nil && *s.purchase.PaymentState == 2
}
