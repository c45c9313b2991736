package unified

import "time"

// ExpirationIntent is the reason an expired subscription stopped renewing.
type ExpirationIntent int

const (
	ExpirationIntentUserCanceled ExpirationIntent = iota + 1
	ExpirationIntentBillingIssue
	ExpirationIntentDeclinedPriceIncrease
	ExpirationIntentUnavailableProduct
	ExpirationIntentUnknownError
)

func (i ExpirationIntent) String() string {
	switch i {
	case ExpirationIntentUserCanceled:
		return "user_canceled"
	case ExpirationIntentBillingIssue:
		return "billing_issue"
	case ExpirationIntentDeclinedPriceIncrease:
		return "declined_price_increase"
	case ExpirationIntentUnavailableProduct:
		return "unavailable_product"
	case ExpirationIntentUnknownError:
		return "unknown_error"
	default:
		return ""
	}
}

// CancellationReason is the reason App Store customer support cancelled a
// transaction.
type CancellationReason int

const (
	CancellationReasonAnotherReason CancellationReason = iota
	CancellationReasonAppIssue
)

func (r CancellationReason) String() string {
	switch r {
	case CancellationReasonAnotherReason:
		return "another_reason"
	case CancellationReasonAppIssue:
		return "app_issue"
	default:
		return ""
	}
}

// Transaction is one in-app purchase transaction from a verification
// response. It wraps the raw attribute map; every accessor is a pure
// derivation and missing or malformed fields read as absent.
type Transaction struct {
	attrs Attributes
}

// NewTransaction wraps one raw transaction entry.
func NewTransaction(attrs Attributes) *Transaction {
	return &Transaction{attrs: attrs}
}

// Attributes returns the raw attributes returned from the server.
func (t *Transaction) Attributes() Attributes {
	return t.attrs
}

// Quantity is the number of items purchased.
func (t *Transaction) Quantity() (int, bool) {
	return t.attrs.ReadInteger("quantity")
}

// ProductID is the product identifier of the item that was purchased.
func (t *Transaction) ProductID() string {
	return t.attrs.Read("product_id")
}

// TransactionID is the transaction identifier of the item that was purchased.
func (t *Transaction) TransactionID() string {
	return t.attrs.Read("transaction_id")
}

// OriginalTransactionID is the identifier of the first transaction in the
// renewal chain; stable across renewals and restores.
func (t *Transaction) OriginalTransactionID() string {
	return t.attrs.Read("original_transaction_id")
}

// PromotionalOfferID uniquely identifies the promotional offer of a product.
func (t *Transaction) PromotionalOfferID() string {
	return t.attrs.Read("promotional_offer_id")
}

// SubscriptionGroupIdentifier groups mutually-exclusive subscription tiers of
// the same product family.
func (t *Transaction) SubscriptionGroupIdentifier() string {
	return t.attrs.Read("subscription_group_identifier")
}

// WebOrderLineItemID is the primary key for identifying renewal subscription
// line items. Non-renewing products lack it.
func (t *Transaction) WebOrderLineItemID() string {
	return t.attrs.Read("web_order_line_item_id")
}

// Storefront is present only in the newer response schema; its presence
// switches the chronological sort key.
func (t *Transaction) Storefront() string {
	return t.attrs.Read("storefront")
}

// HasStorefront reports whether the entry carries the newer schema marker.
func (t *Transaction) HasStorefront() bool {
	return t.attrs.Has("storefront")
}

// AppItemID uniquely identifies the application that created the transaction.
func (t *Transaction) AppItemID() string {
	return t.attrs.Read("app_item_id")
}

// VersionExternalIdentifier uniquely identifies a revision of the application.
func (t *Transaction) VersionExternalIdentifier() string {
	return t.attrs.Read("version_external_identifier")
}

// AutoRenewProductID is the current renewal preference for the subscription.
func (t *Transaction) AutoRenewProductID() string {
	return t.attrs.Read("auto_renew_product_id")
}

// PurchaseDate is the date and time the item was purchased.
func (t *Transaction) PurchaseDate() (time.Time, bool) {
	return t.attrs.ReadTime("purchase_date")
}

// OriginalPurchaseDate is the date of the original transaction for restores.
func (t *Transaction) OriginalPurchaseDate() (time.Time, bool) {
	return t.attrs.ReadTime("original_purchase_date")
}

// ExpiresDate is the subscription expiration date. Present only for
// auto-renewable subscription receipts.
func (t *Transaction) ExpiresDate() (time.Time, bool) {
	return t.attrs.ReadTime("expires_date")
}

// GracePeriodExpiresDate is the end of the billing grace period. Present only
// for auto-renewable subscription receipts.
func (t *Transaction) GracePeriodExpiresDate() (time.Time, bool) {
	return t.attrs.ReadTime("grace_period_expires_date")
}

// CancellationDate is the time App Store customer support cancelled the
// transaction.
func (t *Transaction) CancellationDate() (time.Time, bool) {
	return t.attrs.ReadTime("cancellation_date")
}

// ExpirationIntent is the reason for an expired subscription's expiration.
func (t *Transaction) ExpirationIntent() (ExpirationIntent, bool) {
	n, ok := t.attrs.ReadInteger("expiration_intent")
	if !ok {
		return 0, false
	}
	return ExpirationIntent(n), true
}

// ExpirationIntentString is the expiration intent mapped to its name, or ""
// for absent or unknown codes.
func (t *Transaction) ExpirationIntentString() string {
	intent, ok := t.ExpirationIntent()
	if !ok {
		return ""
	}
	return intent.String()
}

// CancellationReason is the reason for a cancelled transaction.
func (t *Transaction) CancellationReason() (CancellationReason, bool) {
	n, ok := t.attrs.ReadInteger("cancellation_reason")
	if !ok {
		return 0, false
	}
	return CancellationReason(n), true
}

// CancellationReasonString is the cancellation reason mapped to its name, or
// "" for absent or unknown codes.
func (t *Transaction) CancellationReasonString() string {
	reason, ok := t.CancellationReason()
	if !ok {
		return ""
	}
	return reason.String()
}

// AutoRenewStatus is the current renewal status for the subscription:
// 0 - automatic renewal turned off, 1 - will renew.
func (t *Transaction) AutoRenewStatus() (int, bool) {
	return t.attrs.ReadInteger("auto_renew_status")
}

// PriceConsentStatus is the customer's response to a subscription price
// increase: 0 - no action taken, 1 - agreed.
func (t *Transaction) PriceConsentStatus() (int, bool) {
	return t.attrs.ReadInteger("price_consent_status")
}

// PriceConsentStatusString is the price consent status mapped to its name, or
// "" for absent or unknown codes.
func (t *Transaction) PriceConsentStatusString() string {
	switch n, ok := t.PriceConsentStatus(); {
	case !ok:
		return ""
	case n == 1:
		return "ignore_price_increase"
	case n == 0:
		return "agreed_price_increase"
	default:
		return ""
	}
}

// IsInBillingRetryPeriod is 1 while the App Store is still attempting to
// renew an expired subscription, 0 once it has stopped.
func (t *Transaction) IsInBillingRetryPeriod() (int, bool) {
	return t.attrs.ReadInteger("is_in_billing_retry_period")
}

// InBillingRetryPeriod reports whether the App Store is still attempting to
// renew the expired subscription.
func (t *Transaction) InBillingRetryPeriod() bool {
	n, ok := t.IsInBillingRetryPeriod()
	return ok && n == 1
}

// TrialPeriod reports whether the subscription is in its free trial period.
func (t *Transaction) TrialPeriod() bool {
	b, ok := t.attrs.ReadBool("is_trial_period")
	return ok && b
}

// IntroPeriod reports whether the subscription is in an introductory offer
// period.
func (t *Transaction) IntroPeriod() bool {
	b, ok := t.attrs.ReadBool("is_in_intro_offer_period")
	return ok && b
}

// Upgraded reports whether the transaction was superseded by an upgrade to a
// higher tier.
func (t *Transaction) Upgraded() bool {
	b, ok := t.attrs.ReadBool("is_upgraded")
	return ok && b
}

// PromoOffer reports whether the transaction redeemed a promotional offer.
func (t *Transaction) PromoOffer() bool {
	return t.PromotionalOfferID() != ""
}

// WillRenew reports whether the subscription renews at the end of the current
// period.
func (t *Transaction) WillRenew() bool {
	n, ok := t.AutoRenewStatus()
	return ok && n == 1
}

// PriceConsented reports whether the customer agreed to a price increase.
func (t *Transaction) PriceConsented() bool {
	n, ok := t.PriceConsentStatus()
	return ok && n == 1
}

// Cancelled reports whether App Store customer support cancelled the
// transaction. Meaningful only for subscriptions.
func (t *Transaction) Cancelled() bool {
	_, hasDate := t.CancellationDate()
	_, hasReason := t.CancellationReason()
	return hasDate && hasReason
}

// Expired reports whether the expiration date has passed. Meaningful only for
// subscriptions.
func (t *Transaction) Expired() bool {
	return t.ExpiredAt(time.Now().UTC())
}

// ExpiredAt reports whether the expiration date has passed at the given
// instant.
func (t *Transaction) ExpiredAt(now time.Time) bool {
	expires, ok := t.ExpiresDate()
	return ok && !expires.After(now)
}

// UpgradeWithFullRefund reports whether the transaction was cancelled for an
// upgrade on the same calendar day it was purchased, which refunds it in
// full.
func (t *Transaction) UpgradeWithFullRefund() bool {
	if !t.Cancelled() || !t.Upgraded() {
		return false
	}
	cancelled, ok := t.CancellationDate()
	if !ok {
		return false
	}
	purchased, ok := t.PurchaseDate()
	if !ok {
		return false
	}
	return daysBetween(purchased, cancelled) < 1
}

func daysBetween(from, to time.Time) int {
	return int(startOfDayUTC(to).Sub(startOfDayUTC(from)).Hours() / 24)
}

func startOfDayUTC(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}
