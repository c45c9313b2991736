package unified

import "testing"

func TestOrderGroup_ExpiresDateKey(t *testing.T) {
	// Older schema (no storefront attribute): expires_date orders the group.
	a := tx(Attributes{
		"transaction_id": "t1",
		"purchase_date":  "2018-03-01 10:00:00 Etc/GMT",
		"expires_date":   "2018-01-01 10:00:00 Etc/GMT",
	})
	b := tx(Attributes{
		"transaction_id": "t2",
		"purchase_date":  "2018-01-01 10:00:00 Etc/GMT",
		"expires_date":   "2018-02-01 10:00:00 Etc/GMT",
	})

	got := orderGroup([]*Transaction{b, a})
	if want := []string{"t1", "t2"}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestOrderGroup_StorefrontSwitchesToPurchaseDate(t *testing.T) {
	// One storefront attribute anywhere in the group marks the newer schema.
	a := tx(Attributes{
		"transaction_id": "t1",
		"storefront":     "USA",
		"purchase_date":  "2018-03-01 10:00:00 Etc/GMT",
		"expires_date":   "2018-01-01 10:00:00 Etc/GMT",
	})
	b := tx(Attributes{
		"transaction_id": "t2",
		"purchase_date":  "2018-01-01 10:00:00 Etc/GMT",
		"expires_date":   "2018-02-01 10:00:00 Etc/GMT",
	})

	got := orderGroup([]*Transaction{a, b})
	if want := []string{"t2", "t1"}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestOrderGroup_KeyFallback(t *testing.T) {
	// Newer schema falls back to expires_date for records without a
	// purchase_date.
	a := tx(Attributes{
		"transaction_id": "t1",
		"storefront":     "USA",
		"expires_date":   "2018-03-01 10:00:00 Etc/GMT",
	})
	b := tx(Attributes{
		"transaction_id": "t2",
		"purchase_date":  "2018-01-01 10:00:00 Etc/GMT",
	})

	got := orderGroup([]*Transaction{a, b})
	if want := []string{"t2", "t1"}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestOrderGroup_UpgradeCorrectionBoundary(t *testing.T) {
	tests := []struct {
		name            string
		upgradePurchase string
		want            []string
	}{
		{
			name:            "within skew window",
			upgradePurchase: "2018-01-01 09:59:00 Etc/GMT", // 23h59m after prev
			want:            []string{"upgrade", "prev"},
		},
		{
			name:            "outside skew window",
			upgradePurchase: "2018-01-01 10:01:00 Etc/GMT", // 24h01m after prev
			want:            []string{"prev", "upgrade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tx(Attributes{
				"transaction_id": "prev",
				"storefront":     "USA",
				"purchase_date":  "2017-12-31 10:00:00 Etc/GMT",
			})
			upgrade := tx(Attributes{
				"transaction_id": "upgrade",
				"storefront":     "USA",
				"is_upgraded":    "true",
				"purchase_date":  tt.upgradePurchase,
			})

			got := orderGroup([]*Transaction{prev, upgrade})
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestOrderGroup_UpgradeCorrectionExactly24h(t *testing.T) {
	prev := tx(Attributes{
		"transaction_id": "prev",
		"storefront":     "USA",
		"purchase_date":  "2017-12-31 10:00:00 Etc/GMT",
	})
	upgrade := tx(Attributes{
		"transaction_id": "upgrade",
		"storefront":     "USA",
		"is_upgraded":    "true",
		"purchase_date":  "2018-01-01 10:00:00 Etc/GMT",
	})

	got := orderGroup([]*Transaction{prev, upgrade})
	if want := []string{"prev", "upgrade"}; !equalIDs(ids(got), want) {
		t.Errorf("exactly 24h apart must not trigger the swap: got %v", ids(got))
	}
}

func TestOrderGroup_UpgradeNotLastUntouched(t *testing.T) {
	// The correction only inspects the final two records; an upgrade the
	// primary sort placed earlier stays where it landed.
	upgrade := tx(Attributes{
		"transaction_id": "upgrade",
		"storefront":     "USA",
		"is_upgraded":    "true",
		"purchase_date":  "2018-01-01 10:00:00 Etc/GMT",
	})
	later := tx(Attributes{
		"transaction_id": "later",
		"storefront":     "USA",
		"purchase_date":  "2018-02-01 10:00:00 Etc/GMT",
	})

	got := orderGroup([]*Transaction{upgrade, later})
	if want := []string{"upgrade", "later"}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestOrderGroup_SingleAndEmpty(t *testing.T) {
	single := tx(Attributes{"transaction_id": "t1"})
	if got := orderGroup([]*Transaction{single}); len(got) != 1 || got[0] != single {
		t.Error("single-record group must pass through unchanged")
	}
	if got := orderGroup(nil); len(got) != 0 {
		t.Error("empty group must stay empty")
	}
}

func TestOrderGroup_DoesNotMutateInput(t *testing.T) {
	a := tx(Attributes{"transaction_id": "t1", "expires_date": "2018-02-01 10:00:00 Etc/GMT"})
	b := tx(Attributes{"transaction_id": "t2", "expires_date": "2018-01-01 10:00:00 Etc/GMT"})
	in := []*Transaction{a, b}

	orderGroup(in)

	if in[0] != a || in[1] != b {
		t.Error("orderGroup must not reorder its input slice")
	}
}
