package offers

import (
	"strconv"
	"strings"
)

// Normalize translates a raw store offer into the store-agnostic shape.
// It is a pure function and never fails: malformed input degrades to a
// partial result with optional fields unset, because pricing display must
// degrade gracefully rather than block the subscription screen.
func Normalize(raw RawOffer) NormalizedOffer {
	switch raw.Platform {
	case PlatformPlayStore:
		return normalizePhased(raw)
	default:
		return normalizeFlat(raw)
	}
}

// NormalizeAll maps Normalize over a product listing.
func NormalizeAll(raws []RawOffer) []NormalizedOffer {
	out := make([]NormalizedOffer, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// normalizeFlat handles the flat-price shape. The introductory phase, if
// any, lives in dedicated fields rather than a phase list.
func normalizeFlat(raw RawOffer) NormalizedOffer {
	out := NormalizedOffer{
		PurchaseID:        strings.TrimSpace(raw.ProductID),
		MainPrice:         strings.TrimSpace(raw.Price),
		Currency:          strings.TrimSpace(raw.Currency),
		BillingPeriodUnit: strings.TrimSpace(raw.BillingPeriodUnit),
	}
	if p := strings.TrimSpace(raw.IntroPrice); p != "" {
		out.Introductory = &IntroductoryOffer{
			Price:  p,
			Period: strings.TrimSpace(raw.IntroPeriod),
		}
	}
	return out
}

// normalizePhased handles the phase-list shape. The recurring-charge phase
// determines the main price; when no phase is tagged recurring the last
// phase in the list is treated as recurring. An empty phase list keeps the
// flat top-level price.
func normalizePhased(raw RawOffer) NormalizedOffer {
	out := NormalizedOffer{
		PurchaseID:        strings.TrimSpace(raw.BasePlanID),
		MainPrice:         strings.TrimSpace(raw.Price),
		Currency:          strings.TrimSpace(raw.Currency),
		BillingPeriodUnit: strings.TrimSpace(raw.BillingPeriodUnit),
		OfferToken:        strings.TrimSpace(raw.OfferToken),
	}
	if out.PurchaseID == "" {
		out.PurchaseID = strings.TrimSpace(raw.ProductID)
	}
	if len(raw.PricingPhases) == 0 {
		return out
	}

	for _, phase := range raw.PricingPhases {
		if phase.RecurrenceMode == RecurrenceModeIntroductory {
			out.Introductory = &IntroductoryOffer{
				Price:  strings.TrimSpace(phase.Price),
				Period: strings.TrimSpace(phase.BillingPeriod),
			}
			break
		}
	}

	recurring := ""
	for _, phase := range raw.PricingPhases {
		if phase.RecurrenceMode == RecurrenceModeRecurring {
			recurring = strings.TrimSpace(phase.Price)
			break
		}
	}
	if recurring == "" {
		recurring = strings.TrimSpace(raw.PricingPhases[len(raw.PricingPhases)-1].Price)
	}
	if recurring != "" {
		out.MainPrice = recurring
	}
	return out
}

// IsFreePrice reports whether a display price means "free". Store payloads
// represent free phases as the literal token "Free", the numeral "0", or a
// zero-valued currency string such as "$0.00"; all are equivalent.
func IsFreePrice(price string) bool {
	p := strings.TrimSpace(price)
	if p == "" {
		return false
	}
	if strings.EqualFold(p, "free") {
		return true
	}

	// Strip everything that is not a digit or separator, then parse.
	var b strings.Builder
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteRune('.')
		}
	}
	digits := b.String()
	if digits == "" {
		return false
	}
	val, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return false
	}
	return val == 0
}
