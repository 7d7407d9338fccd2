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

const defaultAppStoreCatalogBaseURL = "https://catalog.moodvault.app/appstore"

// AppStoreClient lists App Store subscription products. This store exposes
// a flat display price per product; an introductory offer, when present,
// lives in a single dedicated field rather than a phase list.
type AppStoreClient struct {
	BaseURL  string
	BundleID string

	HTTPClient *http.Client
}

func NewAppStoreClientFromEnv() *AppStoreClient {
	return &AppStoreClient{
		BaseURL:  strings.TrimRight(env.GetEnv("APPSTORE_CATALOG_URL", defaultAppStoreCatalogBaseURL), "/"),
		BundleID: strings.TrimSpace(env.GetEnv("APPSTORE_BUNDLE_ID", "app.moodvault.ios")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *AppStoreClient) FetchProducts(ctx context.Context, skus []string, productType string) ([]offers.RawOffer, error) {
	if len(skus) == 0 {
		return nil, errors.New("at least one sku is required")
	}

	u, err := url.Parse(c.BaseURL + "/v1/products")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("bundle", c.BundleID)
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
		return nil, fmt.Errorf("appstore catalog request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	type rawResponse struct {
		Products []struct {
			ProductID              string `json:"productId"`
			DisplayPrice           string `json:"displayPrice"`
			CurrencyCode           string `json:"currencyCode"`
			SubscriptionPeriodUnit string `json:"subscriptionPeriodUnit"`
			IntroductoryOffer      *struct {
				DisplayPrice string `json:"displayPrice"`
				Period       string `json:"period"`
			} `json:"introductoryOffer"`
		} `json:"products"`
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("appstore catalog payload: %w", err)
	}

	var out []offers.RawOffer
	for _, p := range raw.Products {
		offer := offers.RawOffer{
			Platform:          offers.PlatformAppStore,
			ProductID:         p.ProductID,
			Price:             p.DisplayPrice,
			Currency:          p.CurrencyCode,
			BillingPeriodUnit: p.SubscriptionPeriodUnit,
		}
		if p.IntroductoryOffer != nil {
			offer.IntroPrice = p.IntroductoryOffer.DisplayPrice
			offer.IntroPeriod = p.IntroductoryOffer.Period
		}
		out = append(out, offer)
	}
	return out, nil
}
