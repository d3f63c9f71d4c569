package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestToWireDenormalizesGetIn(t *testing.T) {
	rec := SlipRecord{
		Kind:       KindGetIn,
		SlipNumber: "101",
		Date:       "2026-02-03",
		PartyName:  "Verma Bros",
		CreatedAt:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		ArchiveURL: "https://files/GetIn_101.pdf",
		GetIn: &GetInDetails{
			SourceAgent:       "Agent X",
			MaterialName:      "Potato",
			BhartiCount:       "50",
			KillaCount:        "3",
			WeighbridgeWeight: "12000",
			Quantity:          "120",
			Rate:              "55",
			VehicleNumber:     "CG04 AB 1234",
			DriverName:        "Mohan",
			MobileNumber:      "9876543210",
			Remarks:           "night unload",
		},
	}

	w := ToWire(rec)

	if w.SlipType != "Get In" || w.SlipNo != "101" {
		t.Errorf("identity fields: %q %q", w.SlipType, w.SlipNo)
	}
	if w.Place != "Agent X" || w.Material != "Potato" || w.DharamKantaWeight != "12000" {
		t.Errorf("get-in mapping: %+v", w)
	}
	if w.PDFURL != "https://files/GetIn_101.pdf" {
		t.Errorf("pdfUrl = %q", w.PDFURL)
	}
	// Irrelevant kinds stay empty strings, present on the wire.
	if w.PlaceOut != "" || w.LotNumber != "" || w.GrandTotal != "" {
		t.Errorf("other kinds' fields must be empty: %+v", w)
	}
}

func TestWireFieldNamesAreExact(t *testing.T) {
	data, err := json.Marshal(WireSlip{})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	// The remote script addresses columns by these exact names; a rename
	// here silently corrupts the sheet.
	for _, name := range []string{
		"slipType", "slipNo", "date", "partyName",
		"place", "material", "bharti", "killa", "dharamKantaWeight", "qty", "rate", "truckNo", "driver", "mobileNo", "remarks",
		"placeOut", "materialReceive", "jins", "netWeight", "qtyOut", "taadWeight", "truckNoOut", "driverOut", "remarksOut",
		"lotNumber", "vehicleNumber", "storageFrom", "storageTo", "totalDays",
		"storageOtherMonthRate", "storageQty", "storageCharges",
		"offSeasonJanRate", "offSeasonFebRate", "offSeasonOtherMonthRate", "offSeasonQty", "offSeasonCharges",
		"hamaliOtherMonthRate", "hamaliQty", "hamaliCharges",
		"otherChargesOtherMonthRate", "otherChargesQty", "otherCharges",
		"grandTotal", "amountInWords", "pdfUrl",
	} {
		if _, ok := decoded[name]; !ok {
			t.Errorf("wire payload missing field %q", name)
		}
	}
}

func TestFromWireRebuildsInvoice(t *testing.T) {
	w := WireSlip{
		SlipType:                "Invoice",
		SlipNo:                  "12",
		Date:                    "2026-01-15",
		PartyName:               "Ramesh Traders",
		LotNumber:               "L-88",
		StorageFrom:             "2025-11-01",
		StorageTo:               "2026-01-10",
		TotalDays:               "70",
		StorageOtherMonthRate:   "50",
		StorageQty:              "10",
		StorageCharges:          "500",
		OffSeasonJanRate:        "5",
		OffSeasonFebRate:        "5",
		OffSeasonOtherMonthRate: "10",
		OffSeasonQty:            "10",
		OffSeasonCharges:        "100",
		HamaliOtherMonthRate:    "20",
		HamaliQty:               "10",
		HamaliCharges:           "200",
		GrandTotal:              "800",
		AmountInWords:           "Eight Hundred Only",
		PDFURL:                  "https://files/Invoice_12.pdf",
		Timestamp:               "2026-01-15 09:30:00",
	}

	rec := FromWire(w)

	if rec.Kind != KindInvoice || !rec.DetailsMatchKind() {
		t.Fatalf("kind/details: %+v", rec)
	}
	ch := rec.Invoice.Charges
	if ch.Storage.MonthlyRate != "50" || ch.Storage.Quantity != "10" || ch.StorageAmount != "500" {
		t.Errorf("storage: %+v", ch)
	}
	if ch.OffSeason.JanuaryRate != "5" || ch.OffSeasonMonthlyRate != "10" {
		t.Errorf("off-season: %+v", ch)
	}
	if ch.GrandTotal != "800" || ch.AmountInWords != "Eight Hundred Only" {
		t.Errorf("totals: %+v", ch)
	}
	if rec.ArchiveURL != "https://files/Invoice_12.pdf" {
		t.Errorf("archive url = %q", rec.ArchiveURL)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("timestamp not parsed")
	}
}

func TestFromWireUnknownKindHasNoDetails(t *testing.T) {
	rec := FromWire(WireSlip{SlipType: "slipType"}) // the sheet's header row
	if rec.Kind.Valid() {
		t.Errorf("header row parsed as valid kind %q", rec.Kind)
	}
	if rec.GetIn != nil || rec.GetOut != nil || rec.Invoice != nil {
		t.Error("unknown kind must carry no variant payload")
	}
}

func TestWireRoundTripGetOut(t *testing.T) {
	rec := SlipRecord{
		Kind:       KindGetOut,
		SlipNumber: "47",
		Date:       "2026-03-01",
		PartyName:  "Ramesh Traders",
		GetOut: &GetOutDetails{
			Destination:       "Raipur",
			MaterialReceiver:  "Suresh",
			MaterialKind:      "Onion",
			ReceiptNumber:     "R-9",
			BagCount:          "200",
			WeighbridgeWeight: "9800",
			VehicleNumber:     "CG07 XY 4521",
			DriverName:        "Dinesh",
			Remarks:           "partial release",
		},
	}

	got := FromWire(ToWire(rec))

	if got.GetOut == nil {
		t.Fatal("lost get-out payload")
	}
	if *got.GetOut != *rec.GetOut {
		t.Errorf("round trip drifted:\n got %+v\nwant %+v", *got.GetOut, *rec.GetOut)
	}
}
