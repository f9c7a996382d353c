package models

import "fmt"

// StatusDelivered is written to the delivery-status column once links
// have been handed out.
const StatusDelivered = "delivered"

// Drive URL templates used when a record carries a file ID but no
// stored links.
const (
	driveViewURLTemplate     = "https://drive.google.com/file/d/%s/view?usp=sharing"
	driveDownloadURLTemplate = "https://drive.google.com/uc?export=download&id=%s"
)

// VerifyRequest is the inbound payload: the buyer's order reference and
// the PayPal order ID returned by the checkout flow.
type VerifyRequest struct {
	OrderRef string `json:"orderRef" binding:"required"`
	OrderID  string `json:"orderId" binding:"required"`
}

// DeliveryRecord is one row of the fulfillment sheet. Rows are seeded by
// an out-of-band process; this service only reads them and updates the
// trailing status/timestamp columns.
type DeliveryRecord struct {
	OrderRef           string
	FileID             string
	ViewLink           string
	DirectDownloadLink string
	DeliveryStatus     string
	DeliveredAt        string
}

// ResolveLinks returns the record's view and direct-download links,
// synthesizing them from the file ID when a stored link is empty.
// Stored non-empty links are never rewritten.
func (r *DeliveryRecord) ResolveLinks() (viewLink, downloadLink string) {
	viewLink = r.ViewLink
	downloadLink = r.DirectDownloadLink
	if r.FileID != "" {
		if viewLink == "" {
			viewLink = fmt.Sprintf(driveViewURLTemplate, r.FileID)
		}
		if downloadLink == "" {
			downloadLink = fmt.Sprintf(driveDownloadURLTemplate, r.FileID)
		}
	}
	return viewLink, downloadLink
}

// VerifyResponse is returned after a successful verification and lookup.
type VerifyResponse struct {
	Success            bool   `json:"success"`
	ViewLink           string `json:"viewLink"`
	DirectDownloadLink string `json:"directDownloadLink"`
}
