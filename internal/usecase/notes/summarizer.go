package notes

import (
	"context"
	"fmt"
	"strings"
)

// LLMClient is the generative-text backend used for summaries and
// action item extraction
type LLMClient interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

const summarySystemPrompt = `You are an expert meeting assistant. Generate a clear, professional meeting summary that includes:
1. Main topics discussed
2. Key decisions made
3. Important points raised
4. Next steps mentioned

Format the summary in a structured way with clear sections.`

const actionItemsSystemPrompt = `You are an expert at identifying action items from meeting transcriptions.
Extract action items and format them as a JSON array. Each action item should have:
- description: What needs to be done
- assignee: Who is responsible (if mentioned, otherwise "Unassigned")
- due_date: When it's due (if mentioned, otherwise "No due date specified")
- priority: High/Medium/Low based on context

Return ONLY valid JSON array, no other text.`

// Summarizer drives the LLM for summary generation and action item
// extraction
type Summarizer struct {
	llm       LLMClient
	extractor *Extractor
}

// NewSummarizer creates a new Summarizer
func NewSummarizer(llm LLMClient) *Summarizer {
	return &Summarizer{
		llm:       llm,
		extractor: NewExtractor(),
	}
}

// GenerateSummary produces a formatted meeting summary from a transcription
func (s *Summarizer) GenerateSummary(ctx context.Context, transcription string) (string, error) {
	prompt := fmt.Sprintf(`Please analyze the following meeting transcription and create a comprehensive summary:

TRANSCRIPTION:
%s

Generate a well-structured meeting summary with clear sections for topics, decisions, and next steps.`, transcription)

	summary, err := s.llm.Generate(ctx, prompt, summarySystemPrompt)
	if err != nil {
		return "", err
	}
	return formatSummary(summary), nil
}

// ExtractActionItems asks the LLM for action items and parses its response.
// A model failure yields an empty list rather than an error: the meeting is
// still worth saving without items.
func (s *Summarizer) ExtractActionItems(ctx context.Context, transcription string) []ExtractedItem {
	prompt := fmt.Sprintf(`Analyze this meeting transcription and extract all action items:

TRANSCRIPTION:
%s

Return a JSON array of action items with description, assignee, due_date, and priority fields.`, transcription)

	response, err := s.llm.Generate(ctx, prompt, actionItemsSystemPrompt)
	if err != nil {
		return nil
	}
	return s.extractor.Extract(response)
}

// formatSummary prepends a standard heading when the model did not
// produce one
func formatSummary(raw string) string {
	if !strings.HasPrefix(raw, "#") {
		return "# Meeting Summary\n\n" + raw
	}
	return raw
}
