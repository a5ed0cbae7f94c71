package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// stylePrompts maps style labels to generation instructions. Unknown labels
// fall back to the marketing prompt.
var stylePrompts = map[string]string{
	"marketing":    "Write in a strong, emotive MARKETING style. Emphasize the product's unique benefits and value, create a sense of scarcity and exclusivity, and close with a compelling call to action.",
	"professional": "Write in a PROFESSIONAL, trustworthy style. Emphasize accurate facts about origin, quality and certifications. Avoid hype; focus on real, verifiable value.",
	"friendly":     "Write in a warm, FRIENDLY, conversational style, as if recommending the product to a good friend. Keep it approachable and sincere.",
	"storytelling": "Write in a STORYTELLING style. Open with a short narrative about the product's origin or the experience of using it, then bring the reader to the product itself.",
}

func stylePrompt(style string) string {
	if p, ok := stylePrompts[style]; ok {
		return p
	}
	return stylePrompts["marketing"]
}

// Generator produces product descriptions through the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

var _ portssvc.Generator = (*Generator)(nil)

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *Generator) Close() error {
	return g.client.Close()
}

func buildTextPrompt(productInfo, style string, priorContext []string) string {
	var b strings.Builder
	b.WriteString("Write a sales description for the following product.\n")
	b.WriteString(stylePrompt(style))
	b.WriteString("\n\nReturn the result in this shape:\n")
	b.WriteString("🎯 [Short title with an SEO keyword]\n")
	b.WriteString("✨ [One-sentence slogan]\n")
	b.WriteString("📝 Description: [vivid copy about experience, origin and benefits]\n")
	b.WriteString("🏷️ [3-5 hashtags]\n")
	if len(priorContext) > 0 {
		b.WriteString("\nEarlier drafts in this conversation, oldest first:\n")
		for _, prior := range priorContext {
			b.WriteString("---\n")
			b.WriteString(prior)
			b.WriteString("\n")
		}
		b.WriteString("Treat the new input as a follow-up instruction to these drafts.\n")
	}
	b.WriteString("\nProduct information: ")
	b.WriteString(productInfo)
	return b.String()
}

// firstText extracts the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("model returned no text parts")
}

func (g *Generator) GenerateText(ctx context.Context, productInfo, style string, priorContext []string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildTextPrompt(productInfo, style, priorContext)))
	if err != nil {
		return "", fmt.Errorf("text generation request failed: %w", err)
	}
	return firstText(resp)
}

func (g *Generator) GenerateFromImage(ctx context.Context, imageData []byte, imageFormat, style, prompt string) (string, error) {
	var b strings.Builder
	b.WriteString("Write a sales description for the product shown in this image. Identify the product first; if the image does not show a recognizable product, say so instead of inventing one.\n")
	b.WriteString(stylePrompt(style))
	if prompt != "" {
		b.WriteString("\nAdditional seller notes: ")
		b.WriteString(prompt)
	}

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat, imageData),
		genai.Text(b.String()),
	)
	if err != nil {
		return "", fmt.Errorf("image generation request failed: %w", err)
	}
	return firstText(resp)
}
