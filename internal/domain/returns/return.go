package returns

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backo/backend/internal/domain/shared"
)

// ReturnRequest is a customer-initiated return filed through the public
// portal or created by the merchant directly.
type ReturnRequest struct {
	shared.BaseEntity

	// ReturnID is the human-facing sequential id ("RT-001"), unique per store
	ReturnID string
	StoreID  uuid.UUID

	// OrderID is the identifier of the order being returned, as resolved
	// at filing time
	OrderID  string
	StoreURL string

	Customer CustomerRef
	Product  ProductRef

	Status              Status
	Reason              string
	PreferredResolution string
	RefundMethod        RefundMethod
	Amount              decimal.Decimal
	Notes               string
	Photos              []string
	ReturnAddress       string

	FiledAt  time.Time
	Timeline []TimelineStep
}

// CustomerRef identifies the buyer on a return
type CustomerRef struct {
	Name  string
	Email string
	Phone string
}

// ProductRef identifies the returned item
type ProductRef struct {
	Name     string
	SKU      string
	Quantity int
	Price    decimal.Decimal
}

// Status is the merchant-side processing state of a return
type Status string

const (
	StatusPendingApproval Status = "Pending Approval"
	StatusAwaitingReceipt Status = "Awaiting Receipt"
	StatusInInspection    Status = "In Inspection"
	StatusRefundPending   Status = "Refund Pending"
	StatusCompleted       Status = "Completed"
	StatusRejected        Status = "Rejected"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusAwaitingReceipt, StatusInInspection,
		StatusRefundPending, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// RefundMethod is how the refund is paid out
type RefundMethod string

const (
	RefundBankTransfer  RefundMethod = "Bank Transfer"
	RefundDigitalWallet RefundMethod = "Digital Wallet"
	RefundStoreCredit   RefundMethod = "Store Credit"
)

// TimelineStep is one stage of the customer-visible return timeline
type TimelineStep struct {
	Step        string
	Description string
	Completed   bool
	Date        *time.Time
}

// reasonCodes maps portal reason codes to their display names. An already
// spelled-out reason passes through unchanged.
var reasonCodes = map[string]string{
	"size":             "Wrong Size",
	"defective":        "Defective / Damaged",
	"not-as-described": "Not as Described",
	"changed-mind":     "Changed Mind",
	"wrong-item":       "Received Wrong Item",
	"other":            "Other",
}

// ResolveReason converts a portal reason code to its display name
func ResolveReason(reason string) string {
	if full, ok := reasonCodes[reason]; ok {
		return full
	}
	return reason
}

// ResolveRefundMethod picks the payout method from the buyer's preferred
// resolution; anything unrecognized falls back to a bank transfer
func ResolveRefundMethod(preferredResolution string) RefundMethod {
	if preferredResolution == "store-credit" {
		return RefundStoreCredit
	}
	return RefundBankTransfer
}

// FormatReturnID renders the sequential per-store return id
func FormatReturnID(sequence int64) string {
	return fmt.Sprintf("RT-%03d", sequence)
}

// NewTimeline seeds the five-step timeline with submission completed
func NewTimeline(now time.Time) []TimelineStep {
	return []TimelineStep{
		{Step: "Return Submitted", Description: "Your return request has been submitted!", Completed: true, Date: &now},
		{Step: "Approved by Merchant", Description: "Waiting for merchant approval.", Completed: false},
		{Step: "Item Received", Description: "Waiting for the item to be received by the merchant.", Completed: false},
		{Step: "Inspection Complete", Description: "Item will be inspected for condition.", Completed: false},
		{Step: "Refund Issued", Description: "Refund will be processed to your account.", Completed: false},
	}
}

// statusTimelineIndex maps each status to the highest timeline step that is
// completed once the return reaches it. Rejected keeps the timeline as is.
var statusTimelineIndex = map[Status]int{
	StatusPendingApproval: 0,
	StatusAwaitingReceipt: 1,
	StatusInInspection:    2,
	StatusRefundPending:   3,
	StatusCompleted:       4,
}

// SetStatus transitions the return and marks the corresponding timeline
// steps completed
func (r *ReturnRequest) SetStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return shared.ErrInvalidInput
	}
	r.Status = status
	if idx, ok := statusTimelineIndex[status]; ok {
		for i := range r.Timeline {
			if i <= idx && !r.Timeline[i].Completed {
				r.Timeline[i].Completed = true
				at := now
				r.Timeline[i].Date = &at
			}
		}
	}
	r.Touch()
	return nil
}
