// Package assistant wraps the Anthropic API behind a one-method interface
// for the preparedness chat feature. The risk engine has no dependency on
// this package; it is purely a collaborator at the API boundary.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrEmptyResponse is returned when the model replies with no text
// content.
var ErrEmptyResponse = errors.New("assistant: empty response")

// Assistant answers free-text user messages given a serialized profile
// summary.
type Assistant interface {
	Chat(ctx context.Context, userMessage, profileSummary string) (string, error)
}

const systemPrompt = `You are a calm, practical wildfire preparedness assistant.
Answer questions about wildfire safety, evacuation planning, go-bag contents,
defensible space, and staying informed during a fire. Keep answers short and
actionable. If the user appears to be in immediate danger, tell them to call
local emergency services first. You are not a substitute for official
emergency instructions.`

type sdkAssistant struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// New creates an Assistant backed by the official anthropic-sdk-go.
func New(apiKey, model string, maxTokens int64) Assistant {
	return &sdkAssistant{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *sdkAssistant) Chat(ctx context.Context, userMessage, profileSummary string) (string, error) {
	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: BuildSystemPrompt(profileSummary)},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant: create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}

// BuildSystemPrompt appends the user's profile summary to the fixed
// instruction block so answers can account for household details.
func BuildSystemPrompt(profileSummary string) string {
	if strings.TrimSpace(profileSummary) == "" {
		return systemPrompt
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nUser profile:\n")
	b.WriteString(strings.TrimSpace(profileSummary))
	return b.String()
}

// SummarizeProfile serializes profile fields into the stable "key: value"
// line format passed to the model. Keys are emitted in sorted order.
func SummarizeProfile(profile map[string]string) string {
	if len(profile) == 0 {
		return ""
	}

	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", k, profile[k])
	}
	return b.String()
}
