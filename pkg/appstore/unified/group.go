package unified

// familyGroup is one subscription lineage: the original_transaction_id of its
// first-seen record and the records attached to it in collection order.
// The first record stays the permanent representative for matching even after
// the group is reordered.
type familyGroup struct {
	key          string
	transactions []*Transaction
}

func (g *familyGroup) representative() *Transaction {
	return g.transactions[0]
}

// groupTransactions partitions the deduplicated set into subscription-family
// groups. Records are visited in collection order and attached to the first
// group whose representative they match; every unmatched record opens its own
// group, so grouping is total and no record is ever dropped.
func groupTransactions(txs []*Transaction) []*familyGroup {
	var groups []*familyGroup

	for _, tx := range txs {
		attached := false
		for _, g := range groups {
			if sameFamily(g.representative(), tx) {
				g.transactions = append(g.transactions, tx)
				attached = true
				break
			}
		}
		if !attached {
			groups = append(groups, &familyGroup{
				key:          tx.OriginalTransactionID(),
				transactions: []*Transaction{tx},
			})
		}
	}
	return groups
}

// sameFamily is the tiered identity test deciding whether a record belongs to
// the lineage of a group's representative:
//
//  1. both carry a subscription_group_identifier: its equality is
//     authoritative and short-circuits the remaining tiers
//  2. both carry a web_order_line_item_id: match on equal product_id or equal
//     original_transaction_id
//  3. otherwise: match on equal original_transaction_id
//
// Tier 2 can merge distinct lineages that happen to share a product id; that
// behavior is inherited from the vendor data model and covered by tests
// rather than patched over.
func sameFamily(rep, tx *Transaction) bool {
	if rep.SubscriptionGroupIdentifier() != "" && tx.SubscriptionGroupIdentifier() != "" {
		return rep.SubscriptionGroupIdentifier() == tx.SubscriptionGroupIdentifier()
	}
	if rep.WebOrderLineItemID() != "" && tx.WebOrderLineItemID() != "" {
		return rep.ProductID() == tx.ProductID() ||
			rep.OriginalTransactionID() == tx.OriginalTransactionID()
	}
	return rep.OriginalTransactionID() == tx.OriginalTransactionID()
}
