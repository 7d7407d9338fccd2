package guidance

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodvault/moodvault/internal/pkg/env"
	"github.com/sashabaranov/go-openai"
)

const (
	tipsSystemPrompt = "You are a warm, practical relationship coach inside a journaling app. " +
		"Answer ONLY with a JSON array of objects with the fields \"title\" and \"body\". " +
		"No prose outside the JSON."

	profileSystemPrompt = "You are an emotional wellness analyst inside a journaling app. " +
		"Answer ONLY with a JSON object with the fields \"summary\" (string), " +
		"\"dominant_emotions\" (array of strings) and \"scores\" (object mapping emotion to 0-100). " +
		"No prose outside the JSON."
)

// Generator calls the model that produces guidance content.
type Generator struct {
	client *openai.Client
	model  string
}

func NewGeneratorFromEnv() *Generator {
	return &Generator{
		client: openai.NewClient(env.GetEnv("OPENAI_API_KEY", "")),
		model:  env.GetEnv("GUIDANCE_MODEL", openai.GPT4o),
	}
}

// RelationshipGuidance generates tips for one relationship type. The
// relationship type changes the meaning of the answer, which is why it is
// part of the cache key upstream.
func (g *Generator) RelationshipGuidance(ctx context.Context, subject Subject, relationType string) ([]Tip, error) {
	prompt := fmt.Sprintf(
		"Relationship type: %s.\nRecent journal themes: %s.\nGive 3 to 5 short, concrete guidance tips.",
		relationType, subject.MoodSummary,
	)
	raw, err := g.complete(ctx, tipsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return ParseTips(raw)
}

// EmotionalProfile generates the subject's emotional profile.
func (g *Generator) EmotionalProfile(ctx context.Context, subject Subject) (EmotionalProfile, error) {
	prompt := fmt.Sprintf(
		"Recent journal themes: %s.\nDescribe the writer's current emotional profile.",
		subject.MoodSummary,
	)
	raw, err := g.complete(ctx, profileSystemPrompt, prompt)
	if err != nil {
		return EmotionalProfile{}, err
	}
	return ParseEmotionalProfile(raw)
}

func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
			MaxTokens:   600,
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("guidance: model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
