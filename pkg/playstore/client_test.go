package playstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/androidpublisher/v3"
)

func fakePublisher(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		HTTPClient: server.Client(),
		Endpoint:   server.URL + "/",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewClient_RejectsMalformedKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{CredentialsJSON: []byte("not-json")})
	assert.Error(t, err)
}

func TestClient_Product(t *testing.T) {
	client := fakePublisher(t, func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "purchases/products/sku/tokens/token")
		_ = json.NewEncoder(w).Encode(&androidpublisher.ProductPurchase{
			PurchaseState:      0,
			ConsumptionState:   0,
			PurchaseTimeMillis: 1421676237413,
			OrderId:            "ABC123",
		})
	})

	product, err := client.Product(context.Background(), "com.app", "sku", "token")
	require.NoError(t, err)
	assert.True(t, product.Valid())
	assert.Equal(t, "ABC123", product.OrderID())
}

func TestClient_ProductValidation(t *testing.T) {
	client := fakePublisher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.Product(context.Background(), "", "sku", "token")
	assert.ErrorIs(t, err, ErrMissingPackageName)

	_, err = client.Product(context.Background(), "com.app", "", "token")
	assert.Error(t, err)
}

func TestClient_Subscription(t *testing.T) {
	client := fakePublisher(t, func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "purchases/subscriptions/premium/tokens/token")
		_ = json.NewEncoder(w).Encode(&androidpublisher.SubscriptionPurchase{
			AutoRenewing:     true,
			ExpiryTimeMillis: 1462132088610,
		})
	})

	sub, err := client.Subscription(context.Background(), "com.app", "premium", "token")
	require.NoError(t, err)
	assert.True(t, sub.WillRenew())
}

func TestClient_VoidedPurchasesFollowsPagination(t *testing.T) {
	var requests []string
	client := fakePublisher(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.Contains(r.URL.Path, "purchases/voidedpurchases"))
		requests = append(requests, r.URL.Query().Get("token"))

		resp := &androidpublisher.VoidedPurchasesListResponse{
			VoidedPurchases: []*androidpublisher.VoidedPurchase{
				{OrderId: "GPA." + r.URL.Query().Get("token")},
			},
		}
		if r.URL.Query().Get("token") == "" {
			resp.TokenPagination = &androidpublisher.TokenPagination{NextPageToken: "page-2"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	purchases, err := client.VoidedPurchases(context.Background(), "com.app", VoidedListOptions{})
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, []string{"", "page-2"}, requests)
	assert.Equal(t, "GPA.page-2", purchases[1].OrderID())
}

func TestClient_VoidedPurchasesRequiresPackage(t *testing.T) {
	client := fakePublisher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.VoidedPurchases(context.Background(), "", VoidedListOptions{})
	assert.ErrorIs(t, err, ErrMissingPackageName)
}
