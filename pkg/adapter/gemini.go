package adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
	"google.golang.org/genai"
)

// GeminiClient implements Provider on the Gemini API. Audio is passed inline
// as a blob part, so transcription and summarization are two generate calls
// against the same model.
type GeminiClient struct {
	client *genai.Client
	model  string
}

type GeminiOption func(*GeminiClient)

func WithGeminiModel(m string) GeminiOption {
	return func(g *GeminiClient) {
		g.model = m
	}
}

// NewGemini creates a new Gemini provider client.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client: client,
		model:  "gemini-2.5-flash",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

const transcribePrompt = "Transcribe this voice memo verbatim. Respond with only the transcription text, no commentary. If there is no intelligible speech, respond with an empty string."

func (g *GeminiClient) Transcribe(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read audio file",
			goerr.V("path", path), goerr.T(model.ErrTagTranscription))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribePrompt),
			genai.NewPartFromBytes(data, mimeTypeOf(path)),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to transcribe audio",
			goerr.V("path", path), goerr.V("model", g.model),
			goerr.T(model.ErrTagTranscription))
	}

	return responseText(resp), nil
}

func (g *GeminiClient) Summarize(ctx context.Context, transcript string) (*model.Summary, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(summarySystemPrompt, ""),
		ResponseMIMEType:  "application/json",
	}

	prompt := fmt.Sprintf(summaryPromptTmpl, transcript)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate summary",
			goerr.V("model", g.model), goerr.T(model.ErrTagSummarization))
	}

	text := responseText(resp)
	if text == "" {
		return nil, goerr.New("empty summary response", goerr.T(model.ErrTagSummarization))
	}

	return parseSummary(text)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
