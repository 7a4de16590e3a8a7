package adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Provider with two remote calls: audio transcription
// (whisper) and a chat completion in JSON mode for the summary.
type OpenAIClient struct {
	client          openai.Client
	transcribeModel string
	summaryModel    string
}

type OpenAIOption func(*OpenAIClient)

func WithTranscribeModel(m string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.transcribeModel = m
	}
}

func WithSummaryModel(m string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.summaryModel = m
	}
}

// NewOpenAI creates a new OpenAI provider client.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		transcribeModel: "whisper-1",
		summaryModel:    "gpt-4o-mini",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *OpenAIClient) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open audio file",
			goerr.V("path", path), goerr.T(model.ErrTagTranscription))
	}
	defer f.Close()

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.transcribeModel),
		File:  f,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to transcribe audio",
			goerr.V("path", path), goerr.V("model", c.transcribeModel),
			goerr.T(model.ErrTagTranscription))
	}

	return resp.Text, nil
}

func (c *OpenAIClient) Summarize(ctx context.Context, transcript string) (*model.Summary, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.summaryModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarySystemPrompt),
			openai.UserMessage(fmt.Sprintf(summaryPromptTmpl, transcript)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate summary",
			goerr.V("model", c.summaryModel), goerr.T(model.ErrTagSummarization))
	}
	if len(resp.Choices) == 0 {
		return nil, goerr.New("no choices in summary response", goerr.T(model.ErrTagSummarization))
	}

	return parseSummary(resp.Choices[0].Message.Content)
}
