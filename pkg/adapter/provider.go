package adapter

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
)

// Provider is the capability interface over a transcription and
// summarization backend. Implementations are stateless per call.
type Provider interface {
	// Transcribe converts the audio file at path into plain text. An empty
	// result means the recording had no intelligible speech.
	Transcribe(ctx context.Context, path string) (string, error)

	// Summarize produces a title, a short summary and a filename-friendly
	// one-liner for the given transcript.
	Summarize(ctx context.Context, transcript string) (*model.Summary, error)
}

const summarySystemPrompt = "You are a helpful assistant that creates concise summaries and titles for voice memos."

const summaryPromptTmpl = `Based on this transcription, provide:
1. A one-line summary (max 50 characters, suitable for a filename)
2. A longer summary (2-3 sentences)
3. A title for the note

Transcription:
%s

Please respond in JSON format with keys: "filename_summary", "summary", "title".`

// parseSummary decodes the provider's JSON response. Models occasionally wrap
// the object in a markdown code fence even when asked for raw JSON.
func parseSummary(raw string) (*model.Summary, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var s model.Summary
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, goerr.Wrap(err, "failed to parse summary response",
			goerr.V("response", raw), goerr.T(model.ErrTagSummarization))
	}

	if s.Title == "" {
		s.Title = "Voice Memo"
	}
	if s.FilenameSummary == "" {
		s.FilenameSummary = s.Summary
	}
	if s.FilenameSummary == "" {
		s.FilenameSummary = "memo"
	}

	return &s, nil
}

var audioMIMETypes = map[string]string{
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
	".flac": "audio/flac",
}

func mimeTypeOf(path string) string {
	if mt, ok := audioMIMETypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "application/octet-stream"
}
