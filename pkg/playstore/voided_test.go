package playstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/androidpublisher/v3"
)

func TestVoidedReasonNames(t *testing.T) {
	tests := []struct {
		reason VoidedReason
		want   string
	}{
		{VoidedReasonOther, "other"},
		{VoidedReasonRemorse, "remorse"},
		{VoidedReasonNotReceived, "not_received"},
		{VoidedReasonDefective, "defective"},
		{VoidedReasonAccidentalPurchase, "accidental_purchase"},
		{VoidedReasonFraud, "fraud"},
		{VoidedReasonFriendlyFraud, "friendly_fraud"},
		{VoidedReasonChargeback, "chargeback"},
		{VoidedReason(99), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.reason.String())
	}
}

func TestVoidedSourceNames(t *testing.T) {
	assert.Equal(t, "user", VoidedSourceUser.String())
	assert.Equal(t, "developer", VoidedSourceDeveloper.String())
	assert.Equal(t, "google", VoidedSourceGoogle.String())
	assert.Equal(t, "", VoidedSource(7).String())
}

func TestVoidedPurchase_Accessors(t *testing.T) {
	purchase := NewVoidedPurchase(&androidpublisher.VoidedPurchase{
		Kind:               "androidpublisher#voidedPurchase",
		OrderId:            "GPA.1234",
		PurchaseToken:      "token",
		PurchaseTimeMillis: 1421676237413,
		VoidedTimeMillis:   1421776237413,
		VoidedReason:       5,
		VoidedSource:       2,
	})

	assert.Equal(t, "androidpublisher#voidedPurchase", purchase.Kind())
	assert.Equal(t, "GPA.1234", purchase.OrderID())
	assert.Equal(t, "token", purchase.PurchaseToken())
	assert.Equal(t, time.UnixMilli(1421676237413).UTC(), purchase.PurchasedAt())
	assert.Equal(t, time.UnixMilli(1421776237413).UTC(), purchase.VoidedAt())
	assert.Equal(t, VoidedReasonFraud, purchase.Reason())
	assert.Equal(t, "fraud", purchase.Reason().String())
	assert.True(t, purchase.VoidedByGoogle())
	assert.False(t, purchase.VoidedByUser())
	assert.False(t, purchase.VoidedByDeveloper())
}
