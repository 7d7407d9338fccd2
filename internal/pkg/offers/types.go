package offers

// Platform tags which store a raw offer came from. The two stores expose
// incompatible pricing shapes: the App Store carries a flat price plus
// dedicated introductory fields, the Play Store carries a list of pricing
// phases per base plan.
type Platform string

const (
	PlatformAppStore  Platform = "appstore"
	PlatformPlayStore Platform = "playstore"
)

// Recurrence modes carried by Play Store pricing phases.
const (
	RecurrenceModeRecurring    = 1 // repeating charge
	RecurrenceModeIntroductory = 2 // time-limited introductory phase
)

// PricingPhase is one entry of a Play Store phase list.
type PricingPhase struct {
	Price          string `json:"price"`
	BillingPeriod  string `json:"billing_period"` // ISO-8601, e.g. "P1M"
	RecurrenceMode int    `json:"recurrence_mode"`
}

// RawOffer is the union of the two store product shapes, tagged by Platform.
// Flat-price fields are populated for the App Store; BasePlanID, OfferToken
// and PricingPhases only for the Play Store.
type RawOffer struct {
	Platform          Platform       `json:"platform"`
	ProductID         string         `json:"product_id"`
	BasePlanID        string         `json:"base_plan_id,omitempty"`
	OfferToken        string         `json:"offer_token,omitempty"`
	Price             string         `json:"price,omitempty"`
	Currency          string         `json:"currency,omitempty"`
	BillingPeriodUnit string         `json:"billing_period_unit,omitempty"` // e.g. "Month", "Week"
	IntroPrice        string         `json:"intro_price,omitempty"`
	IntroPeriod       string         `json:"intro_period,omitempty"`
	PricingPhases     []PricingPhase `json:"pricing_phases,omitempty"`
}

// IntroductoryOffer describes a time-limited phase preceding the recurring
// charge of a plan.
type IntroductoryOffer struct {
	Price  string `json:"price"`
	Period string `json:"period"`
}

// NormalizedOffer is the store-agnostic plan shape served to clients.
type NormalizedOffer struct {
	PurchaseID        string             `json:"purchase_id"`
	MainPrice         string             `json:"main_price"`
	Currency          string             `json:"currency"`
	BillingPeriodUnit string             `json:"billing_period_unit"`
	Introductory      *IntroductoryOffer `json:"introductory_offer,omitempty"`
	OfferToken        string             `json:"offer_token,omitempty"`
}

// HasFreeTrial reports whether the introductory phase is free.
func (o NormalizedOffer) HasFreeTrial() bool {
	return o.Introductory != nil && IsFreePrice(o.Introductory.Price)
}
