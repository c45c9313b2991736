package unified

// dedupTransactions merges the latest_receipt_info and receipt.in_app
// collections, which can both carry the same underlying transaction across
// response schema revisions. latest is authoritative; in_app entries are
// appended only when no collected record already represents them.
func dedupTransactions(latest, inApp []*Transaction) []*Transaction {
	merged := make([]*Transaction, 0, len(latest)+len(inApp))
	merged = append(merged, latest...)

	for _, tx := range inApp {
		seen := false
		for _, other := range merged {
			if sameTransaction(other, tx) {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, tx)
		}
	}
	return merged
}

// sameTransaction reports whether two records represent the same underlying
// transaction. Renewal subscriptions are keyed by web_order_line_item_id;
// non-renewing products lack one and fall back to transaction_id.
func sameTransaction(a, b *Transaction) bool {
	if a.WebOrderLineItemID() != "" && b.WebOrderLineItemID() != "" {
		return a.WebOrderLineItemID() == b.WebOrderLineItemID()
	}
	return a.TransactionID() != "" && a.TransactionID() == b.TransactionID()
}
