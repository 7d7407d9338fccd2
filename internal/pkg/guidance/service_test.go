package guidance

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGenerator struct {
	tipCalls     int
	profileCalls int
	tips         []Tip
	profile      EmotionalProfile
	err          error
}

func (f *fakeGenerator) RelationshipGuidance(ctx context.Context, subject Subject, relationType string) ([]Tip, error) {
	f.tipCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tips, nil
}

func (f *fakeGenerator) EmotionalProfile(ctx context.Context, subject Subject) (EmotionalProfile, error) {
	f.profileCalls++
	if f.err != nil {
		return EmotionalProfile{}, f.err
	}
	return f.profile, nil
}

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestTipsForCachesPerRelationshipType(t *testing.T) {
	gen := &fakeGenerator{tips: []Tip{{Title: "t", Body: "b"}}}
	svc := NewService(gen, newMemStore())
	subject := Subject{Ref: "user-1", MoodSummary: "tired, hopeful"}

	for i := 0; i < 3; i++ {
		tips, err := svc.TipsFor(context.Background(), subject, "partner")
		if err != nil {
			t.Fatalf("TipsFor: %v", err)
		}
		if len(tips) != 1 {
			t.Fatalf("tips = %+v", tips)
		}
	}
	if gen.tipCalls != 1 {
		t.Fatalf("tipCalls = %d, want 1", gen.tipCalls)
	}

	if _, err := svc.TipsFor(context.Background(), subject, "family"); err != nil {
		t.Fatalf("TipsFor family: %v", err)
	}
	if gen.tipCalls != 2 {
		t.Fatalf("tipCalls = %d, want 2 after new relationship type", gen.tipCalls)
	}
}

func TestRefreshTipsForcesRegeneration(t *testing.T) {
	gen := &fakeGenerator{tips: []Tip{{Title: "t", Body: "b"}}}
	svc := NewService(gen, newMemStore())
	subject := Subject{Ref: "user-1"}

	if _, err := svc.TipsFor(context.Background(), subject, "partner"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RefreshTips(context.Background(), subject, "partner"); err != nil {
		t.Fatal(err)
	}
	if gen.tipCalls != 2 {
		t.Fatalf("tipCalls = %d, want 2", gen.tipCalls)
	}
}

func TestProfileForCachesPerSubject(t *testing.T) {
	gen := &fakeGenerator{profile: EmotionalProfile{Summary: "steady"}}
	svc := NewService(gen, newMemStore())

	for i := 0; i < 2; i++ {
		p, err := svc.ProfileFor(context.Background(), Subject{Ref: "user-1"})
		if err != nil {
			t.Fatalf("ProfileFor: %v", err)
		}
		if p.Summary != "steady" {
			t.Fatalf("profile = %+v", p)
		}
	}
	if gen.profileCalls != 1 {
		t.Fatalf("profileCalls = %d, want 1", gen.profileCalls)
	}

	if _, err := svc.ProfileFor(context.Background(), Subject{Ref: "user-2"}); err != nil {
		t.Fatal(err)
	}
	if gen.profileCalls != 2 {
		t.Fatalf("profileCalls = %d, want 2 after second subject", gen.profileCalls)
	}
}

func TestGenerationErrorIsPropagated(t *testing.T) {
	genErr := errors.New("model unavailable")
	gen := &fakeGenerator{err: genErr}
	svc := NewService(gen, newMemStore())

	_, err := svc.TipsFor(context.Background(), Subject{Ref: "user-1"}, "partner")
	if !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want %v", err, genErr)
	}
}
