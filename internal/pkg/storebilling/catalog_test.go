package storebilling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moodvault/moodvault/internal/pkg/offers"
)

func TestPlayStoreFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("skus"); got != "premium" {
			t.Fatalf("skus = %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "subs" {
			t.Fatalf("type = %q", got)
		}
		w.Write([]byte(`{
			"products": [{
				"productId": "premium",
				"currencyCode": "USD",
				"billingPeriodUnit": "Month",
				"formattedPrice": "$9.99",
				"subscriptionOffers": [{
					"basePlanId": "premium-monthly",
					"offerToken": "tok-1",
					"pricingPhases": [
						{"formattedPrice": "Free", "billingPeriod": "P1W", "recurrenceMode": 2},
						{"formattedPrice": "$9.99", "billingPeriod": "P1M", "recurrenceMode": 1}
					]
				}]
			}]
		}`))
	}))
	defer srv.Close()

	c := &PlayStoreClient{BaseURL: srv.URL, PackageName: "app.moodvault", HTTPClient: srv.Client()}
	got, err := c.FetchProducts(context.Background(), []string{"premium"}, "subs")
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	raw := got[0]
	if raw.Platform != offers.PlatformPlayStore || raw.BasePlanID != "premium-monthly" || raw.OfferToken != "tok-1" {
		t.Fatalf("raw = %+v", raw)
	}
	if len(raw.PricingPhases) != 2 || raw.PricingPhases[0].RecurrenceMode != offers.RecurrenceModeIntroductory {
		t.Fatalf("phases = %+v", raw.PricingPhases)
	}

	norm := offers.Normalize(raw)
	if norm.MainPrice != "$9.99" || norm.Introductory == nil || norm.Introductory.Price != "Free" {
		t.Fatalf("normalized = %+v", norm)
	}
}

func TestAppStoreFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"products": [{
				"productId": "com.moodvault.premium.monthly",
				"displayPrice": "$9.99",
				"currencyCode": "USD",
				"subscriptionPeriodUnit": "Month",
				"introductoryOffer": {"displayPrice": "$0.00", "period": "P1W"}
			}]
		}`))
	}))
	defer srv.Close()

	c := &AppStoreClient{BaseURL: srv.URL, BundleID: "app.moodvault.ios", HTTPClient: srv.Client()}
	got, err := c.FetchProducts(context.Background(), []string{"com.moodvault.premium.monthly"}, "subs")
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Platform != offers.PlatformAppStore || got[0].IntroPrice != "$0.00" {
		t.Fatalf("raw = %+v", got[0])
	}

	norm := offers.Normalize(got[0])
	if !norm.HasFreeTrial() {
		t.Fatal("zero-valued intro price must count as a free trial")
	}
}

func TestFetchProductsRequiresSKUs(t *testing.T) {
	play := NewPlayStoreClientFromEnv()
	if _, err := play.FetchProducts(context.Background(), nil, "subs"); err == nil {
		t.Fatal("expected error for empty sku list")
	}
	appstore := NewAppStoreClientFromEnv()
	if _, err := appstore.FetchProducts(context.Background(), nil, "subs"); err == nil {
		t.Fatal("expected error for empty sku list")
	}
}

func TestCatalogFor(t *testing.T) {
	if _, err := CatalogFor(offers.PlatformPlayStore); err != nil {
		t.Fatal(err)
	}
	if _, err := CatalogFor(offers.PlatformAppStore); err != nil {
		t.Fatal(err)
	}
	if _, err := CatalogFor(offers.Platform("windows")); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}
