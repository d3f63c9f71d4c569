package models

import "time"

// WireSlip is the denormalized row shape the ledger stores and serves:
// every kind's fields are always present and irrelevant ones are empty
// strings. The JSON names are part of the remote contract and must stay
// bit-exact. Nothing outside the ledger boundary should hold one of
// these; convert at the edge with ToWire/FromWire.
type WireSlip struct {
	SlipType  string `json:"slipType"`
	SlipNo    string `json:"slipNo"`
	Date      string `json:"date"`
	PartyName string `json:"partyName"`

	// Get In
	Place             string `json:"place"`
	Material          string `json:"material"`
	Bharti            string `json:"bharti"`
	Killa             string `json:"killa"`
	DharamKantaWeight string `json:"dharamKantaWeight"`
	Qty               string `json:"qty"`
	Rate              string `json:"rate"`
	TruckNo           string `json:"truckNo"`
	Driver            string `json:"driver"`
	MobileNo          string `json:"mobileNo"`
	Remarks           string `json:"remarks"`

	// Get Out
	PlaceOut        string `json:"placeOut"`
	MaterialReceive string `json:"materialReceive"`
	Jins            string `json:"jins"`
	NetWeight       string `json:"netWeight"`
	QtyOut          string `json:"qtyOut"`
	TaadWeight      string `json:"taadWeight"`
	TruckNoOut      string `json:"truckNoOut"`
	DriverOut       string `json:"driverOut"`
	RemarksOut      string `json:"remarksOut"`

	// Invoice
	LotNumber                  string `json:"lotNumber"`
	VehicleNumber              string `json:"vehicleNumber"`
	StorageFrom                string `json:"storageFrom"`
	StorageTo                  string `json:"storageTo"`
	TotalDays                  string `json:"totalDays"`
	StorageOtherMonthRate      string `json:"storageOtherMonthRate"`
	StorageQty                 string `json:"storageQty"`
	StorageCharges             string `json:"storageCharges"`
	OffSeasonJanRate           string `json:"offSeasonJanRate"`
	OffSeasonFebRate           string `json:"offSeasonFebRate"`
	OffSeasonOtherMonthRate    string `json:"offSeasonOtherMonthRate"`
	OffSeasonQty               string `json:"offSeasonQty"`
	OffSeasonCharges           string `json:"offSeasonCharges"`
	HamaliOtherMonthRate       string `json:"hamaliOtherMonthRate"`
	HamaliQty                  string `json:"hamaliQty"`
	HamaliCharges              string `json:"hamaliCharges"`
	OtherChargesOtherMonthRate string `json:"otherChargesOtherMonthRate"`
	OtherChargesQty            string `json:"otherChargesQty"`
	OtherCharges               string `json:"otherCharges"`
	GrandTotal                 string `json:"grandTotal"`
	AmountInWords              string `json:"amountInWords"`

	PDFURL    string `json:"pdfUrl"`
	Timestamp string `json:"timestamp"`
}

// timestampLayouts are tried in order when decoding the ledger's
// created-at column, which has drifted between sheet formats over time.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToWire denormalizes a record into the ledger row shape. Fields of the
// other two kinds stay empty strings so the remote script never sees an
// absent column.
func ToWire(rec SlipRecord) WireSlip {
	w := WireSlip{
		SlipType:  string(rec.Kind),
		SlipNo:    rec.SlipNumber,
		Date:      rec.Date,
		PartyName: rec.PartyName,
		PDFURL:    rec.ArchiveURL,
	}
	if !rec.CreatedAt.IsZero() {
		w.Timestamp = rec.CreatedAt.Format(time.RFC3339)
	}

	switch {
	case rec.GetIn != nil:
		in := rec.GetIn
		w.Place = in.SourceAgent
		w.Material = in.MaterialName
		w.Bharti = in.BhartiCount
		w.Killa = in.KillaCount
		w.DharamKantaWeight = in.WeighbridgeWeight
		w.Qty = in.Quantity
		w.Rate = in.Rate
		w.TruckNo = in.VehicleNumber
		w.Driver = in.DriverName
		w.MobileNo = in.MobileNumber
		w.Remarks = in.Remarks
	case rec.GetOut != nil:
		out := rec.GetOut
		w.PlaceOut = out.Destination
		w.MaterialReceive = out.MaterialReceiver
		w.Jins = out.MaterialKind
		w.NetWeight = out.ReceiptNumber
		w.QtyOut = out.BagCount
		w.TaadWeight = out.WeighbridgeWeight
		w.TruckNoOut = out.VehicleNumber
		w.DriverOut = out.DriverName
		w.RemarksOut = out.Remarks
	case rec.Invoice != nil:
		inv := rec.Invoice
		ch := inv.Charges
		w.LotNumber = inv.LotNumber
		w.VehicleNumber = inv.VehicleNumber
		w.StorageFrom = inv.StoragePeriodStart
		w.StorageTo = inv.StoragePeriodEnd
		w.TotalDays = inv.TotalStorageDays
		w.StorageOtherMonthRate = ch.Storage.MonthlyRate
		w.StorageQty = ch.Storage.Quantity
		w.StorageCharges = ch.StorageAmount
		w.OffSeasonJanRate = ch.OffSeason.JanuaryRate
		w.OffSeasonFebRate = ch.OffSeason.FebruaryRate
		w.OffSeasonOtherMonthRate = ch.OffSeasonMonthlyRate
		w.OffSeasonQty = ch.OffSeason.Quantity
		w.OffSeasonCharges = ch.OffSeasonAmount
		w.HamaliOtherMonthRate = ch.Hamali.MonthlyRate
		w.HamaliQty = ch.Hamali.Quantity
		w.HamaliCharges = ch.HamaliAmount
		w.OtherChargesOtherMonthRate = ch.Other.MonthlyRate
		w.OtherChargesQty = ch.Other.Quantity
		w.OtherCharges = ch.OtherAmount
		w.GrandTotal = ch.GrandTotal
		w.AmountInWords = ch.AmountInWords
	}

	return w
}

// FromWire rebuilds the typed record from a ledger row. Unknown slip
// types come back with a zero Kind and no variant payload; callers skip
// such rows rather than failing the whole fetch.
func FromWire(w WireSlip) SlipRecord {
	rec := SlipRecord{
		Kind:       SlipKind(w.SlipType),
		SlipNumber: w.SlipNo,
		Date:       w.Date,
		PartyName:  w.PartyName,
		ArchiveURL: w.PDFURL,
		CreatedAt:  parseTimestamp(w.Timestamp),
	}

	switch rec.Kind {
	case KindGetIn:
		rec.GetIn = &GetInDetails{
			SourceAgent:       w.Place,
			MaterialName:      w.Material,
			BhartiCount:       w.Bharti,
			KillaCount:        w.Killa,
			WeighbridgeWeight: w.DharamKantaWeight,
			Quantity:          w.Qty,
			Rate:              w.Rate,
			VehicleNumber:     w.TruckNo,
			DriverName:        w.Driver,
			MobileNumber:      w.MobileNo,
			Remarks:           w.Remarks,
		}
	case KindGetOut:
		rec.GetOut = &GetOutDetails{
			Destination:       w.PlaceOut,
			MaterialReceiver:  w.MaterialReceive,
			MaterialKind:      w.Jins,
			ReceiptNumber:     w.NetWeight,
			BagCount:          w.QtyOut,
			WeighbridgeWeight: w.TaadWeight,
			VehicleNumber:     w.TruckNoOut,
			DriverName:        w.DriverOut,
			Remarks:           w.RemarksOut,
		}
	case KindInvoice:
		rec.Invoice = &InvoiceDetails{
			LotNumber:          w.LotNumber,
			VehicleNumber:      w.VehicleNumber,
			StoragePeriodStart: w.StorageFrom,
			StoragePeriodEnd:   w.StorageTo,
			TotalStorageDays:   w.TotalDays,
			Charges: ChargeBreakdown{
				Storage: RateQtyPair{MonthlyRate: w.StorageOtherMonthRate, Quantity: w.StorageQty},
				Hamali:  RateQtyPair{MonthlyRate: w.HamaliOtherMonthRate, Quantity: w.HamaliQty},
				OffSeason: OffSeasonInput{
					JanuaryRate:  w.OffSeasonJanRate,
					FebruaryRate: w.OffSeasonFebRate,
					Quantity:     w.OffSeasonQty,
				},
				Other:                RateQtyPair{MonthlyRate: w.OtherChargesOtherMonthRate, Quantity: w.OtherChargesQty},
				OffSeasonMonthlyRate: w.OffSeasonOtherMonthRate,
				StorageAmount:        w.StorageCharges,
				HamaliAmount:         w.HamaliCharges,
				OffSeasonAmount:      w.OffSeasonCharges,
				OtherAmount:          w.OtherCharges,
				GrandTotal:           w.GrandTotal,
				AmountInWords:        w.AmountInWords,
			},
		}
	}

	return rec
}

func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
