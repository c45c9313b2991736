// Package playstore verifies Play Store purchases through the android
// publisher API and wraps its results in typed accessor records.
package playstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/option"

	"github.com/softeamco/candy-check/pkg/candycheck"
)

const vendorName = "play_store"

var (
	// ErrMissingCredentials is returned when no service-account key and no
	// pre-built HTTP client are configured.
	ErrMissingCredentials = errors.New("missing service account credentials")

	// ErrMissingPackageName is returned for calls without a package name.
	ErrMissingPackageName = errors.New("package name is required")
)

// Config configures a Play Store client.
type Config struct {
	// CredentialsJSON is the service-account key in JSON form.
	CredentialsJSON []byte

	// HTTPClient overrides the authenticated client built from
	// CredentialsJSON; mainly for tests.
	HTTPClient *http.Client

	// Endpoint overrides the android publisher endpoint; mainly for tests.
	Endpoint string

	Logger  candycheck.Logger
	Metrics candycheck.Metrics
}

// Client wraps the android publisher service.
type Client struct {
	service *androidpublisher.Service
	logger  candycheck.Logger
	metrics candycheck.Metrics
}

// NewClient builds an authenticated Play Store client from a service-account
// key, or from the configured HTTP client when one is supplied.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	httpClient := config.HTTPClient
	if httpClient == nil {
		if len(config.CredentialsJSON) == 0 {
			return nil, ErrMissingCredentials
		}
		jwt, err := google.JWTConfigFromJSON(config.CredentialsJSON, androidpublisher.AndroidpublisherScope)
		if err != nil {
			return nil, fmt.Errorf("parsing service account key: %w", err)
		}
		httpClient = jwt.Client(ctx)
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	service, err := androidpublisher.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("building android publisher service: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = &candycheck.NoopLogger{}
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = &candycheck.NoopMetrics{}
	}

	return &Client{service: service, logger: logger, metrics: metrics}, nil
}

// Product fetches the purchase state of an in-app product.
func (c *Client) Product(ctx context.Context, packageName, productID, purchaseToken string) (*Product, error) {
	if packageName == "" {
		return nil, ErrMissingPackageName
	}
	if productID == "" || purchaseToken == "" {
		return nil, errors.New("product id and purchase token are required")
	}

	start := time.Now()
	purchase, err := c.service.Purchases.Products.Get(packageName, productID, purchaseToken).Context(ctx).Do()
	if err != nil {
		c.metrics.RecordVerification(vendorName, "", "transport_error", time.Since(start))
		return nil, fmt.Errorf("fetching product purchase: %w", err)
	}
	c.metrics.RecordVerification(vendorName, "", "ok", time.Since(start))
	c.logger.Debug("product purchase fetched",
		candycheck.Field{Key: "package_name", Value: packageName},
		candycheck.Field{Key: "product_id", Value: productID})

	return &Product{purchase: purchase}, nil
}

// Subscription fetches the state of an auto-renewing subscription purchase.
func (c *Client) Subscription(ctx context.Context, packageName, subscriptionID, purchaseToken string) (*Subscription, error) {
	if packageName == "" {
		return nil, ErrMissingPackageName
	}
	if subscriptionID == "" || purchaseToken == "" {
		return nil, errors.New("subscription id and purchase token are required")
	}

	start := time.Now()
	purchase, err := c.service.Purchases.Subscriptions.Get(packageName, subscriptionID, purchaseToken).Context(ctx).Do()
	if err != nil {
		c.metrics.RecordVerification(vendorName, "", "transport_error", time.Since(start))
		return nil, fmt.Errorf("fetching subscription purchase: %w", err)
	}
	c.metrics.RecordVerification(vendorName, "", "ok", time.Since(start))
	c.logger.Debug("subscription purchase fetched",
		candycheck.Field{Key: "package_name", Value: packageName},
		candycheck.Field{Key: "subscription_id", Value: subscriptionID})

	return &Subscription{purchase: purchase}, nil
}

// VoidedListOptions narrows a voided-purchase listing.
type VoidedListOptions struct {
	// StartTime and EndTime bound the voiding time of the returned
	// purchases. Zero values leave the bound open.
	StartTime time.Time
	EndTime   time.Time

	// MaxResultsPerPage caps each page; the server default applies when 0.
	MaxResultsPerPage int64
}

// VoidedPurchases lists the purchases that were canceled, refunded or
// charged back, following token pagination until the listing is exhausted.
func (c *Client) VoidedPurchases(ctx context.Context, packageName string, opts VoidedListOptions) ([]*VoidedPurchase, error) {
	if packageName == "" {
		return nil, ErrMissingPackageName
	}

	var purchases []*VoidedPurchase
	token := ""
	for {
		call := c.service.Purchases.Voidedpurchases.List(packageName).Context(ctx)
		if token != "" {
			call = call.Token(token)
		}
		if !opts.StartTime.IsZero() {
			call = call.StartTime(opts.StartTime.UnixMilli())
		}
		if !opts.EndTime.IsZero() {
			call = call.EndTime(opts.EndTime.UnixMilli())
		}
		if opts.MaxResultsPerPage > 0 {
			call = call.MaxResults(opts.MaxResultsPerPage)
		}

		result, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing voided purchases: %w", err)
		}

		for _, purchase := range result.VoidedPurchases {
			purchases = append(purchases, &VoidedPurchase{purchase: purchase})
		}

		if result.TokenPagination == nil || result.TokenPagination.NextPageToken == "" {
			break
		}
		token = result.TokenPagination.NextPageToken
	}

	c.logger.Debug("voided purchases listed",
		candycheck.Field{Key: "package_name", Value: packageName},
		candycheck.Field{Key: "count", Value: len(purchases)})
	return purchases, nil
}
