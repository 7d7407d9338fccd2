package guidance

import (
	"context"
	"time"

	"github.com/moodvault/moodvault/internal/pkg/contentcache"
)

// Content TTLs. Guidance tracks day-to-day journal movement; the emotional
// profile is slower moving.
const (
	TipsTTL    = 6 * time.Hour
	ProfileTTL = 12 * time.Hour
)

// GeneratorAPI is the generation surface the service depends on;
// *Generator is the production implementation.
type GeneratorAPI interface {
	RelationshipGuidance(ctx context.Context, subject Subject, relationType string) ([]Tip, error)
	EmotionalProfile(ctx context.Context, subject Subject) (EmotionalProfile, error)
}

// Service serves generated content through the TTL caches. The two content
// kinds use different key shapes: tips are keyed by subject + relationship
// type, the profile by subject alone.
type Service struct {
	gen      GeneratorAPI
	tips     *contentcache.Cache[[]Tip]
	profiles *contentcache.Cache[EmotionalProfile]
}

func NewService(gen GeneratorAPI, store contentcache.KeyValue) *Service {
	return &Service{
		gen:      gen,
		tips:     contentcache.New[[]Tip](store, "guidance:tips", TipsTTL),
		profiles: contentcache.New[EmotionalProfile](store, "guidance:profile", ProfileTTL),
	}
}

// TipsFor returns relationship guidance for the subject and relationship
// type, generating only when no valid cached entry exists.
func (s *Service) TipsFor(ctx context.Context, subject Subject, relationType string) ([]Tip, error) {
	key := contentcache.Key{Subject: subject.Ref, Variant: relationType}
	return s.tips.Get(ctx, key, func(ctx context.Context) ([]Tip, error) {
		return s.gen.RelationshipGuidance(ctx, subject, relationType)
	})
}

// RefreshTips drops the cached entry for the pair and regenerates, used
// when the user switches the active relationship type and wants fresh
// content rather than waiting for natural expiry.
func (s *Service) RefreshTips(ctx context.Context, subject Subject, relationType string) ([]Tip, error) {
	key := contentcache.Key{Subject: subject.Ref, Variant: relationType}
	if err := s.tips.Invalidate(ctx, key); err != nil {
		return nil, err
	}
	return s.TipsFor(ctx, subject, relationType)
}

// ProfileFor returns the subject's emotional profile, generating only when
// no valid cached entry exists.
func (s *Service) ProfileFor(ctx context.Context, subject Subject) (EmotionalProfile, error) {
	key := contentcache.Key{Subject: subject.Ref}
	return s.profiles.Get(ctx, key, func(ctx context.Context) (EmotionalProfile, error) {
		return s.gen.EmotionalProfile(ctx, subject)
	})
}
