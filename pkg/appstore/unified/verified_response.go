package unified

import (
	"strings"
	"sync"
)

// VerifiedResponse wraps one decoded response from Apple's verification
// server. It is read-only after construction; the derived collections
// (deduplicated set, family groups, chronological orderings) are computed on
// first access and cached for the object's lifetime, which is safe under
// concurrent readers because the source data never mutates.
type VerifiedResponse struct {
	receipt        *AppReceipt
	latest         []*Transaction
	inApp          []*Transaction
	pendingRenewal []*Transaction
	environment    string

	dedupOnce sync.Once
	deduped   []*Transaction

	groupOnce sync.Once
	groups    []*familyGroup

	orderOnce sync.Once
	ordered   map[string][]*Transaction
}

// NewVerifiedResponse builds a VerifiedResponse from a decoded response
// document. Absent collections degrade to empty slices; no key is required.
// Validating that the document is a response at all (has a receipt, is a map)
// is the caller's job.
func NewVerifiedResponse(response map[string]interface{}) *VerifiedResponse {
	receiptAttrs, _ := response["receipt"].(map[string]interface{})

	return &VerifiedResponse{
		receipt:        NewAppReceipt(receiptAttrs),
		latest:         transactionsFrom(response["latest_receipt_info"]),
		inApp:          transactionsFrom(receiptAttrs["in_app"]),
		pendingRenewal: transactionsFrom(response["pending_renewal_info"]),
		environment:    strings.ToLower(readString(response, "environment")),
	}
}

func transactionsFrom(raw interface{}) []*Transaction {
	entries, ok := raw.([]interface{})
	if !ok {
		return []*Transaction{}
	}
	txs := make([]*Transaction, 0, len(entries))
	for _, entry := range entries {
		attrs, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		txs = append(txs, NewTransaction(attrs))
	}
	return txs
}

func readString(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

// Receipt returns the top-level receipt metadata.
func (r *VerifiedResponse) Receipt() *AppReceipt {
	return r.receipt
}

// LatestReceiptInfo returns all in-app purchase transactions the App Store
// knows for the subscription, newest response schema first. Present only for
// auto-renewable subscriptions.
func (r *VerifiedResponse) LatestReceiptInfo() []*Transaction {
	return r.latest
}

// InApp returns the transactions embedded in the receipt itself. Present for
// auto-renewable, non-renewing and free subscriptions and non-consumable
// products.
func (r *VerifiedResponse) InApp() []*Transaction {
	return r.inApp
}

// PendingRenewalInfo returns the forward-looking renewal records, one per
// auto-renewable subscription.
func (r *VerifiedResponse) PendingRenewalInfo() []*Transaction {
	return r.pendingRenewal
}

// Environment is the lower-cased environment tag ("production" or "sandbox"),
// or "" when the server omitted it.
func (r *VerifiedResponse) Environment() string {
	return r.environment
}

// Subscription reports whether the response includes a subscription.
func (r *VerifiedResponse) Subscription() bool {
	return len(r.latest) > 0
}

// Transactions returns the deduplicated union of latest_receipt_info and
// receipt.in_app, in latest-then-unmatched-in_app order.
func (r *VerifiedResponse) Transactions() []*Transaction {
	r.dedupOnce.Do(func() {
		r.deduped = dedupTransactions(r.latest, r.inApp)
	})
	return r.deduped
}

func (r *VerifiedResponse) familyGroups() []*familyGroup {
	r.groupOnce.Do(func() {
		r.groups = groupTransactions(r.Transactions())
	})
	return r.groups
}

// GroupedReceipts partitions the deduplicated transactions into
// subscription-family groups, each ordered chronologically, keyed by the
// original_transaction_id of the group's first-seen record.
func (r *VerifiedResponse) GroupedReceipts() map[string][]*Transaction {
	r.orderOnce.Do(func() {
		groups := r.familyGroups()
		ordered := make(map[string][]*Transaction, len(groups))
		for _, g := range groups {
			ordered[g.key] = orderGroup(g.transactions)
		}
		r.ordered = ordered
	})
	return r.ordered
}

// SubscriptionReceiptsBy returns the ordered transaction history of the
// family keyed by the given original_transaction_id, or nil when no such
// family exists.
func (r *VerifiedResponse) SubscriptionReceiptsBy(originalTransactionID string) []*Transaction {
	return r.GroupedReceipts()[originalTransactionID]
}

// Subscriptions returns one representative per subscription family: the
// record with the latest purchase date, taken before the chronological
// ordering and upgrade correction run.
func (r *VerifiedResponse) Subscriptions() []*Transaction {
	if !r.Subscription() {
		return []*Transaction{}
	}

	groups := r.familyGroups()
	latest := make([]*Transaction, 0, len(groups))
	for _, g := range groups {
		best := g.transactions[0]
		bestDate, _ := best.PurchaseDate()
		for _, tx := range g.transactions[1:] {
			if date, ok := tx.PurchaseDate(); ok && date.After(bestDate) {
				best, bestDate = tx, date
			}
		}
		latest = append(latest, best)
	}
	return latest
}

// LatestSubscriptionInfo returns the latest transaction of the family keyed
// by the given original_transaction_id, or nil.
func (r *VerifiedResponse) LatestSubscriptionInfo(originalTransactionID string) *Transaction {
	for _, tx := range r.Subscriptions() {
		if tx.OriginalTransactionID() == originalTransactionID {
			return tx
		}
	}
	return nil
}

// ReceiptsBy returns the transactions matching the given
// original_transaction_id, from latest_receipt_info when any match there and
// from receipt.in_app otherwise.
func (r *VerifiedResponse) ReceiptsBy(originalTransactionID string) []*Transaction {
	if found := filterByOriginalID(r.latest, originalTransactionID); len(found) > 0 {
		return found
	}
	return filterByOriginalID(r.inApp, originalTransactionID)
}

func filterByOriginalID(txs []*Transaction, originalTransactionID string) []*Transaction {
	var found []*Transaction
	for _, tx := range txs {
		if tx.OriginalTransactionID() == originalTransactionID {
			found = append(found, tx)
		}
	}
	return found
}

// PendingRenewalTransaction returns the first pending-renewal record matching
// the given original_transaction_id or product id, or nil when the response
// carries no subscription or none match.
func (r *VerifiedResponse) PendingRenewalTransaction(originalTransactionID, productID string) *Transaction {
	if !r.Subscription() {
		return nil
	}
	for _, tx := range r.pendingRenewal {
		if tx.OriginalTransactionID() == originalTransactionID || tx.ProductID() == productID {
			return tx
		}
	}
	return nil
}
