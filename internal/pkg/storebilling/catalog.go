// Package storebilling fetches product listings from the two app stores
// through the catalog gateway and maps each platform's payload onto the
// raw offer union consumed by the normalizer.
package storebilling

import (
	"fmt"

	"github.com/moodvault/moodvault/internal/pkg/entitlement"
	"github.com/moodvault/moodvault/internal/pkg/offers"
)

// CatalogFor resolves the store client for a platform tag.
func CatalogFor(platform offers.Platform) (entitlement.Catalog, error) {
	switch platform {
	case offers.PlatformPlayStore:
		return NewPlayStoreClientFromEnv(), nil
	case offers.PlatformAppStore:
		return NewAppStoreClientFromEnv(), nil
	default:
		return nil, fmt.Errorf("unknown store platform %q", platform)
	}
}
