package models

import "time"

// SlipKind identifies which variant of a slip record is populated. The
// values match the ledger's wire spelling and must not be changed.
type SlipKind string

const (
	KindGetIn   SlipKind = "Get In"
	KindGetOut  SlipKind = "Get Out"
	KindInvoice SlipKind = "Invoice"
)

// Valid reports whether the kind is one of the three known variants.
func (k SlipKind) Valid() bool {
	switch k {
	case KindGetIn, KindGetOut, KindInvoice:
		return true
	}
	return false
}

// SlipRecord is a single transactional record: an inbound goods receipt,
// an outbound goods release, or a storage invoice. Exactly one of the
// variant payload pointers matching Kind is non-nil; the denormalized
// all-fields-present shape exists only at the ledger boundary (WireSlip).
type SlipRecord struct {
	// ID is a client-side sequence number assigned in ledger list order.
	// The ledger itself is keyed by row position, not by this value.
	ID         int64     `json:"id"`
	Kind       SlipKind  `json:"kind"`
	SlipNumber string    `json:"slipNumber"`
	Date       string    `json:"date"` // yyyy-mm-dd, as the ledger stores it
	PartyName  string    `json:"partyName"`
	CreatedAt  time.Time `json:"createdAt"`
	// ArchiveURL points at the archived document artifact. Empty until
	// the record has been materialized and uploaded once.
	ArchiveURL string `json:"archiveUrl,omitempty"`

	GetIn   *GetInDetails   `json:"getIn,omitempty"`
	GetOut  *GetOutDetails  `json:"getOut,omitempty"`
	Invoice *InvoiceDetails `json:"invoice,omitempty"`
}

// GetInDetails carries the inbound goods receipt fields. All values are
// free-form strings copied from the paper slip.
type GetInDetails struct {
	SourceAgent       string `json:"sourceAgent"`
	MaterialName      string `json:"materialName"`
	BhartiCount       string `json:"bhartiCount"`
	KillaCount        string `json:"killaCount"`
	WeighbridgeWeight string `json:"weighbridgeWeight"`
	Quantity          string `json:"quantity"`
	Rate              string `json:"rate"`
	VehicleNumber     string `json:"vehicleNumber"`
	DriverName        string `json:"driverName"`
	MobileNumber      string `json:"mobileNumber"`
	Remarks           string `json:"remarks"`
}

// GetOutDetails carries the outbound goods release (gate pass) fields.
type GetOutDetails struct {
	Destination       string `json:"destination"`
	MaterialReceiver  string `json:"materialReceiver"`
	MaterialKind      string `json:"materialKind"`
	ReceiptNumber     string `json:"receiptNumber"`
	BagCount          string `json:"bagCount"`
	WeighbridgeWeight string `json:"weighbridgeWeight"`
	VehicleNumber     string `json:"vehicleNumber"`
	DriverName        string `json:"driverName"`
	Remarks           string `json:"remarks"`
}

// InvoiceDetails carries the storage-billing fields, including the
// computed charge breakdown.
type InvoiceDetails struct {
	LotNumber          string          `json:"lotNumber"`
	VehicleNumber      string          `json:"vehicleNumber"`
	StoragePeriodStart string          `json:"storagePeriodStart"`
	StoragePeriodEnd   string          `json:"storagePeriodEnd"`
	TotalStorageDays   string          `json:"totalStorageDays"`
	Charges            ChargeBreakdown `json:"charges"`
}

// DetailsMatchKind reports whether the variant payload matching Kind is
// present and the other two are absent.
func (s SlipRecord) DetailsMatchKind() bool {
	switch s.Kind {
	case KindGetIn:
		return s.GetIn != nil && s.GetOut == nil && s.Invoice == nil
	case KindGetOut:
		return s.GetOut != nil && s.GetIn == nil && s.Invoice == nil
	case KindInvoice:
		return s.Invoice != nil && s.GetIn == nil && s.GetOut == nil
	}
	return false
}
