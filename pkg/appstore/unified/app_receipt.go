package unified

import "time"

// AppReceipt is the top-level receipt metadata of a unified verification
// response. It is constructed once per response and never touched by the
// reconciliation pipeline.
type AppReceipt struct {
	attrs Attributes
}

// NewAppReceipt wraps the raw "receipt" entry of a verification response.
func NewAppReceipt(attrs Attributes) *AppReceipt {
	return &AppReceipt{attrs: attrs}
}

// Attributes returns the raw attributes returned from the server.
func (r *AppReceipt) Attributes() Attributes {
	return r.attrs
}

// BundleID is the app's bundle identifier.
func (r *AppReceipt) BundleID() string {
	return r.attrs.Read("bundle_id")
}

// ApplicationVersion is the app's version number.
func (r *AppReceipt) ApplicationVersion() string {
	return r.attrs.Read("application_version")
}

// OriginalApplicationVersion is the version of the app that was originally
// purchased.
func (r *AppReceipt) OriginalApplicationVersion() string {
	return r.attrs.Read("original_application_version")
}

// ReceiptCreationDate is the date the app receipt was created.
func (r *AppReceipt) ReceiptCreationDate() (time.Time, bool) {
	return r.attrs.ReadTime("receipt_creation_date")
}

// OriginalPurchaseDate is the date of the app's original purchase.
func (r *AppReceipt) OriginalPurchaseDate() (time.Time, bool) {
	return r.attrs.ReadTime("original_purchase_date")
}
