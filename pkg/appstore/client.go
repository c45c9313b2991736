package appstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/softeamco/candy-check/pkg/appstore/unified"
	"github.com/softeamco/candy-check/pkg/candycheck"
)

const (
	// ProductionEndpoint is Apple's production verification endpoint.
	ProductionEndpoint = "https://buy.itunes.apple.com/verifyReceipt"
	// SandboxEndpoint is Apple's sandbox verification endpoint.
	SandboxEndpoint = "https://sandbox.itunes.apple.com/verifyReceipt"

	defaultHTTPTimeout = 10 * time.Second
	vendorName         = "app_store"
)

// ErrMissingReceiptData is returned when Verify is called without a receipt
// payload.
var ErrMissingReceiptData = errors.New("missing receipt data")

// Config configures a verification Client. The zero value of every field has
// a usable default.
type Config struct {
	// ProductionEndpoint and SandboxEndpoint override Apple's verification
	// URLs, mainly for tests.
	ProductionEndpoint string
	SandboxEndpoint    string

	// SharedSecret is the app-specific shared secret; required only for
	// receipts containing auto-renewable subscriptions.
	SharedSecret string

	// HTTPClient issues the verification requests.
	HTTPClient *http.Client

	Logger  candycheck.Logger
	Metrics candycheck.Metrics
}

// Client verifies receipts against Apple's verification servers. Concurrent
// verifications of the same payload are collapsed into a single request.
type Client struct {
	config Config
	group  singleflight.Group
}

// NewClient creates a verification client, filling defaults for unset config
// fields.
func NewClient(config Config) *Client {
	if config.ProductionEndpoint == "" {
		config.ProductionEndpoint = ProductionEndpoint
	}
	if config.SandboxEndpoint == "" {
		config.SandboxEndpoint = SandboxEndpoint
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if config.Logger == nil {
		config.Logger = &candycheck.NoopLogger{}
	}
	if config.Metrics == nil {
		config.Metrics = &candycheck.NoopMetrics{}
	}
	return &Client{config: config}
}

type verificationRequest struct {
	ReceiptData string `json:"receipt-data"`
	Password    string `json:"password,omitempty"`
}

// Verify sends the base64 receipt payload to the production endpoint and
// returns the parsed unified response. A sandbox receipt is replayed once
// against the sandbox endpoint (and a production receipt against production),
// matching the server's environment redirect statuses.
//
// For StatusSubscriptionExpired the server still returns the decoded receipt;
// in that case both the response and a *VerificationError are returned.
func (c *Client) Verify(ctx context.Context, receiptData string) (*unified.VerifiedResponse, error) {
	if receiptData == "" {
		return nil, ErrMissingReceiptData
	}

	key := verificationKey(receiptData, c.config.SharedSecret)
	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.verify(ctx, receiptData)
	})
	if resp, ok := result.(*unified.VerifiedResponse); ok {
		return resp, err
	}
	return nil, err
}

func (c *Client) verify(ctx context.Context, receiptData string) (*unified.VerifiedResponse, error) {
	start := time.Now()

	doc, err := c.request(ctx, c.config.ProductionEndpoint, receiptData)
	if err != nil {
		c.config.Metrics.RecordVerification(vendorName, "", "transport_error", time.Since(start))
		return nil, err
	}

	if status := readStatus(doc); status == StatusSandboxReceipt || status == StatusProductionReceipt {
		endpoint := c.config.SandboxEndpoint
		if status == StatusProductionReceipt {
			endpoint = c.config.ProductionEndpoint
		}
		c.config.Logger.Debug("replaying verification against opposite environment",
			candycheck.Field{Key: "status", Value: status})
		c.config.Metrics.RecordSandboxRedirect()

		doc, err = c.request(ctx, endpoint, receiptData)
		if err != nil {
			c.config.Metrics.RecordVerification(vendorName, "", "transport_error", time.Since(start))
			return nil, err
		}
	}

	status := readStatus(doc)
	switch status {
	case StatusOK:
		resp := unified.NewVerifiedResponse(doc)
		c.config.Metrics.RecordVerification(vendorName, resp.Environment(), "ok", time.Since(start))
		c.config.Logger.Info("receipt verified",
			candycheck.Field{Key: "environment", Value: resp.Environment()},
			candycheck.Field{Key: "subscription", Value: resp.Subscription()})
		return resp, nil
	case StatusSubscriptionExpired:
		// The server still delivers the full receipt for expired
		// subscriptions.
		resp := unified.NewVerifiedResponse(doc)
		c.config.Metrics.RecordVerification(vendorName, resp.Environment(), "expired", time.Since(start))
		return resp, &VerificationError{Status: status}
	default:
		c.config.Metrics.RecordVerification(vendorName, "", "invalid_receipt", time.Since(start))
		c.config.Logger.Warn("receipt verification rejected",
			candycheck.Field{Key: "status", Value: status})
		return nil, &VerificationError{Status: status}
	}
}

func (c *Client) request(ctx context.Context, endpoint, receiptData string) (map[string]interface{}, error) {
	body, err := json.Marshal(verificationRequest{
		ReceiptData: receiptData,
		Password:    c.config.SharedSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling verification server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification server responded with HTTP %d", resp.StatusCode)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding verification response: %w", err)
	}
	return doc, nil
}

func readStatus(doc map[string]interface{}) int {
	status, ok := doc["status"].(float64)
	if !ok {
		return -1
	}
	return int(status)
}

func verificationKey(receiptData, secret string) string {
	sum := sha256.Sum256([]byte(receiptData + "\x00" + secret))
	return hex.EncodeToString(sum[:])
}
