package models

// RateQtyPair is one charge category's raw inputs: a monthly rate and a
// quantity, both kept as the strings the form produced. Empty or
// non-numeric values are treated as zero by the calculator.
type RateQtyPair struct {
	MonthlyRate string `json:"monthlyRate"`
	Quantity    string `json:"quantity"`
}

// OffSeasonInput is the one category whose monthly rate is synthesized
// from two named months instead of entered directly.
type OffSeasonInput struct {
	JanuaryRate  string `json:"januaryRate"`
	FebruaryRate string `json:"februaryRate"`
	Quantity     string `json:"quantity"`
}

// ChargeBreakdown is the financial payload of an invoice. The four
// amount fields, the grand total and the words rendering are derived;
// they are never edited independently of the rate/quantity inputs.
type ChargeBreakdown struct {
	Storage   RateQtyPair    `json:"storage"`
	Hamali    RateQtyPair    `json:"hamali"`
	OffSeason OffSeasonInput `json:"offSeason"`
	Other     RateQtyPair    `json:"other"`

	// OffSeasonMonthlyRate is the synthesized january+february rate; it
	// is derived by the calculator and never accepted as direct input.
	OffSeasonMonthlyRate string `json:"offSeasonMonthlyRate"`

	StorageAmount   string `json:"storageAmount"`
	HamaliAmount    string `json:"hamaliAmount"`
	OffSeasonAmount string `json:"offSeasonAmount"`
	OtherAmount     string `json:"otherAmount"`
	GrandTotal      string `json:"grandTotal"`
	AmountInWords   string `json:"amountInWords"`
}
