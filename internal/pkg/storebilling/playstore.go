package storebilling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodvault/moodvault/internal/pkg/env"
	"github.com/moodvault/moodvault/internal/pkg/offers"
)

const defaultPlayCatalogBaseURL = "https://catalog.moodvault.app/play"

// PlayStoreClient lists Play subscription products. The Play catalog models
// every offer as a base plan with a list of pricing phases; the phase list
// plus the offer token travel through to the normalizer untouched.
type PlayStoreClient struct {
	BaseURL     string
	PackageName string

	HTTPClient *http.Client
}

func NewPlayStoreClientFromEnv() *PlayStoreClient {
	return &PlayStoreClient{
		BaseURL:     strings.TrimRight(env.GetEnv("PLAY_CATALOG_URL", defaultPlayCatalogBaseURL), "/"),
		PackageName: strings.TrimSpace(env.GetEnv("PLAY_PACKAGE_NAME", "app.moodvault")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *PlayStoreClient) FetchProducts(ctx context.Context, skus []string, productType string) ([]offers.RawOffer, error) {
	if len(skus) == 0 {
		return nil, errors.New("at least one sku is required")
	}

	u, err := url.Parse(c.BaseURL + "/v1/products")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("package", c.PackageName)
	q.Set("type", productType)
	q.Set("skus", strings.Join(skus, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("play catalog request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	type rawPhase struct {
		FormattedPrice string `json:"formattedPrice"`
		BillingPeriod  string `json:"billingPeriod"`
		RecurrenceMode int    `json:"recurrenceMode"`
	}
	type rawResponse struct {
		Products []struct {
			ProductID         string `json:"productId"`
			CurrencyCode      string `json:"currencyCode"`
			BillingPeriodUnit string `json:"billingPeriodUnit"`
			FormattedPrice    string `json:"formattedPrice"`
			SubscriptionOffers []struct {
				BasePlanID    string     `json:"basePlanId"`
				OfferToken    string     `json:"offerToken"`
				PricingPhases []rawPhase `json:"pricingPhases"`
			} `json:"subscriptionOffers"`
		} `json:"products"`
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("play catalog payload: %w", err)
	}

	var out []offers.RawOffer
	for _, p := range raw.Products {
		if len(p.SubscriptionOffers) == 0 {
			// Product without offers still gets a flat entry so the screen
			// can show its price.
			out = append(out, offers.RawOffer{
				Platform:          offers.PlatformPlayStore,
				ProductID:         p.ProductID,
				Price:             p.FormattedPrice,
				Currency:          p.CurrencyCode,
				BillingPeriodUnit: p.BillingPeriodUnit,
			})
			continue
		}
		for _, so := range p.SubscriptionOffers {
			offer := offers.RawOffer{
				Platform:          offers.PlatformPlayStore,
				ProductID:         p.ProductID,
				BasePlanID:        so.BasePlanID,
				OfferToken:        so.OfferToken,
				Price:             p.FormattedPrice,
				Currency:          p.CurrencyCode,
				BillingPeriodUnit: p.BillingPeriodUnit,
			}
			for _, ph := range so.PricingPhases {
				offer.PricingPhases = append(offer.PricingPhases, offers.PricingPhase{
					Price:          ph.FormattedPrice,
					BillingPeriod:  ph.BillingPeriod,
					RecurrenceMode: ph.RecurrenceMode,
				})
			}
			out = append(out, offer)
		}
	}
	return out, nil
}
