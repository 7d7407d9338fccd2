package offers

import "testing"

func TestNormalizePhasedIntroAndRecurring(t *testing.T) {
	raw := RawOffer{
		Platform:          PlatformPlayStore,
		ProductID:         "premium",
		BasePlanID:        "premium-monthly",
		OfferToken:        "tok-123",
		Currency:          "USD",
		BillingPeriodUnit: "Month",
		PricingPhases: []PricingPhase{
			{Price: "Free", BillingPeriod: "P1W", RecurrenceMode: RecurrenceModeIntroductory},
			{Price: "$9.99", BillingPeriod: "P1M", RecurrenceMode: RecurrenceModeRecurring},
		},
	}

	got := Normalize(raw)
	if got.MainPrice != "$9.99" {
		t.Fatalf("MainPrice = %q, want %q", got.MainPrice, "$9.99")
	}
	if got.Introductory == nil {
		t.Fatal("expected introductory offer")
	}
	if got.Introductory.Price != "Free" || got.Introductory.Period != "P1W" {
		t.Fatalf("Introductory = %+v, want price=Free period=P1W", got.Introductory)
	}
	if got.PurchaseID != "premium-monthly" {
		t.Fatalf("PurchaseID = %q, want base plan id", got.PurchaseID)
	}
	if got.OfferToken != "tok-123" {
		t.Fatalf("OfferToken = %q, want tok-123", got.OfferToken)
	}
	if !got.HasFreeTrial() {
		t.Fatal("expected free trial")
	}
}

func TestNormalizePhasedNoRecurringTagFallsBackToLastPhase(t *testing.T) {
	raw := RawOffer{
		Platform:  PlatformPlayStore,
		ProductID: "premium",
		PricingPhases: []PricingPhase{
			{Price: "$1.99", BillingPeriod: "P1M"},
			{Price: "$4.99", BillingPeriod: "P1M"},
			{Price: "$7.99", BillingPeriod: "P1M"},
		},
	}

	got := Normalize(raw)
	if got.MainPrice != "$7.99" {
		t.Fatalf("MainPrice = %q, want last phase price $7.99", got.MainPrice)
	}
	if got.Introductory != nil {
		t.Fatalf("Introductory = %+v, want nil", got.Introductory)
	}
}

func TestNormalizePhasedEmptyPhaseListKeepsFlatPrice(t *testing.T) {
	raw := RawOffer{
		Platform:  PlatformPlayStore,
		ProductID: "premium",
		Price:     "$12.99",
	}

	got := Normalize(raw)
	if got.MainPrice != "$12.99" {
		t.Fatalf("MainPrice = %q, want top-level price", got.MainPrice)
	}
	if got.Introductory != nil {
		t.Fatal("expected no introductory offer")
	}
	if got.PurchaseID != "premium" {
		t.Fatalf("PurchaseID = %q, want product id fallback", got.PurchaseID)
	}
}

func TestNormalizeFlat(t *testing.T) {
	raw := RawOffer{
		Platform:          PlatformAppStore,
		ProductID:         "com.moodvault.premium.monthly",
		Price:             "$9.99",
		Currency:          "USD",
		BillingPeriodUnit: "Month",
		IntroPrice:        "$0.00",
		IntroPeriod:       "P1W",
	}

	got := Normalize(raw)
	if got.PurchaseID != "com.moodvault.premium.monthly" {
		t.Fatalf("PurchaseID = %q", got.PurchaseID)
	}
	if got.MainPrice != "$9.99" {
		t.Fatalf("MainPrice = %q, want $9.99", got.MainPrice)
	}
	if got.Introductory == nil || got.Introductory.Price != "$0.00" {
		t.Fatalf("Introductory = %+v, want $0.00 intro", got.Introductory)
	}
	if got.OfferToken != "" {
		t.Fatalf("OfferToken = %q, want empty on flat shape", got.OfferToken)
	}
	if !got.HasFreeTrial() {
		t.Fatal("expected $0.00 intro to count as free trial")
	}
}

func TestNormalizeFlatWithoutIntro(t *testing.T) {
	got := Normalize(RawOffer{
		Platform:  PlatformAppStore,
		ProductID: "com.moodvault.premium.yearly",
		Price:     "$59.99",
	})
	if got.Introductory != nil {
		t.Fatalf("Introductory = %+v, want nil", got.Introductory)
	}
	if got.HasFreeTrial() {
		t.Fatal("no intro phase must not report a free trial")
	}
}

func TestIsFreePrice(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "Free", want: true},
		{in: "free", want: true},
		{in: "0", want: true},
		{in: "$0.00", want: true},
		{in: "0,00 €", want: true},
		{in: "$9.99", want: false},
		{in: "", want: false},
		{in: "N/A", want: false},
	}

	for _, tt := range tests {
		if got := IsFreePrice(tt.in); got != tt.want {
			t.Fatalf("IsFreePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
