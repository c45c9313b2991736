package unified

import (
	"sort"
	"time"
)

// upgradeSkewWindow bounds the clock skew the vendor introduces between an
// upgrade transaction and the transaction it replaces.
const upgradeSkewWindow = 24 * time.Hour

// orderGroup returns the group's records sorted chronologically. The sort key
// is version sensitive: a storefront attribute anywhere in the group signals
// the newer response schema, which dates records reliably by purchase_date;
// the older schema is ordered by expires_date. Either key falls back to the
// other when absent. After sorting, a single upgrade-reorder correction is
// applied.
func orderGroup(txs []*Transaction) []*Transaction {
	ordered := make([]*Transaction, len(txs))
	copy(ordered, txs)

	purchaseFirst := false
	for _, tx := range ordered {
		if tx.HasStorefront() {
			purchaseFirst = true
			break
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return sortKey(ordered[i], purchaseFirst).Before(sortKey(ordered[j], purchaseFirst))
	})

	reorderUpgrade(ordered)
	return ordered
}

func sortKey(tx *Transaction, purchaseFirst bool) time.Time {
	if purchaseFirst {
		if ts, ok := tx.PurchaseDate(); ok {
			return ts
		}
		ts, _ := tx.ExpiresDate()
		return ts
	}
	if ts, ok := tx.ExpiresDate(); ok {
		return ts
	}
	ts, _ := tx.PurchaseDate()
	return ts
}

// reorderUpgrade corrects a known vendor artifact: clock skew can place the
// pre-upgrade record after the upgrade record that replaced it. When the
// chronologically last record is an upgrade whose purchase date is within the
// skew window of the record before it, the two are swapped. The correction
// runs at most once and only inspects the final two records.
func reorderUpgrade(txs []*Transaction) {
	if len(txs) < 2 {
		return
	}
	last := txs[len(txs)-1]
	if !last.Upgraded() {
		return
	}
	prev := txs[len(txs)-2]

	lastPurchase, ok := last.PurchaseDate()
	if !ok {
		return
	}
	prevPurchase, ok := prev.PurchaseDate()
	if !ok {
		return
	}

	skew := lastPurchase.Sub(prevPurchase)
	if skew < 0 {
		skew = -skew
	}
	if skew < upgradeSkewWindow {
		txs[len(txs)-2], txs[len(txs)-1] = last, prev
	}
}
