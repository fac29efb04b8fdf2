package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campus-share-be/internal/entity"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/pkg/catalogerr"
	"campus-share-be/pkg/llm"
	"campus-share-be/pkg/taxonomy"
)

const (
	ActionSummarize = "summarize"
	ActionQuiz      = "quiz"
	ActionKeypoints = "keypoints"
	ActionChat      = "chat"

	maxTags = 5

	unexpectedFormatMessage = "I received an unexpected response format. Please try again."
)

var (
	jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
	tagSplitPattern  = regexp.MustCompile(`[\n,]+`)
	tagCleanPattern  = regexp.MustCompile(`[^\w\s-]`)
)

type IAssistantService interface {
	// SuggestTags never fails: any service error yields the fallback tags.
	SuggestTags(ctx context.Context, subject, courseCode, description string) []string
	// Ask returns the assistant's text, or a user-facing error message with
	// failed set when the service could not answer.
	Ask(ctx context.Context, record entity.ContentRecord, action, message string) (text string, failed bool)
}

type assistantService struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewAssistantService(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) IAssistantService {
	return &assistantService{
		provider: provider,
		timeout:  timeout,
		logger:   log,
	}
}

func (s *assistantService) generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: no provider configured", catalogerr.ErrExternalService)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", catalogerr.ErrExternalService, err)
	}
	return text, nil
}

func (s *assistantService) SuggestTags(ctx context.Context, subject, courseCode, description string) []string {
	prompt := fmt.Sprintf(
		`Based on this document description: "%s" for subject: "%s", generate 3-5 relevant tags for educational materials. `+
			`Return ONLY a JSON array of tag strings, e.g. ["tag1","tag2"]. Keep tags short, relevant to education, and use hyphens for multi-word tags.`,
		description, subject,
	)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("ASSISTANT", "Tag suggestion failed, using fallback tags", map[string]interface{}{
			"error":   err.Error(),
			"subject": subject,
		})
		return FallbackTags(subject, courseCode)
	}

	tags := ParseTags(text)
	if len(tags) == 0 {
		return FallbackTags(subject, courseCode)
	}
	return tags
}

// ParseTags pulls a JSON array out of free text. When the bracketed part is
// not valid JSON the text is split on commas and newlines instead. No
// bracketed part at all means no tags.
func ParseTags(text string) []string {
	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil
	}

	var raw []string
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		raw = nil
		for _, part := range tagSplitPattern.Split(text, -1) {
			tag := strings.ToLower(tagCleanPattern.ReplaceAllString(strings.TrimSpace(part), ""))
			raw = append(raw, tag)
		}
	}

	tags := make([]string, 0, maxTags)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// FallbackTags is the deterministic tag set used when the assistant is
// unavailable.
func FallbackTags(subject, courseCode string) []string {
	course := strings.ToLower(courseCode)
	if course == "" {
		course = "course"
	}
	tags := []string{}
	if slug := taxonomy.Slug(subject); slug != "" {
		tags = append(tags, slug)
	}
	return append(tags, "study-material", "notes", course)
}

func buildPrompt(record entity.ContentRecord, action, message string) (string, error) {
	switch action {
	case ActionSummarize:
		return fmt.Sprintf(`Please provide a comprehensive summary of the document "%s" about %s. Focus on key concepts, main topics, and important details. The document description is: "%s". Provide the summary in clear, organized sections.`,
			record.Name, record.Subject, record.Description), nil
	case ActionQuiz:
		return fmt.Sprintf(`Generate a 5-question quiz based on the document "%s" about %s. The document description is: "%s". Create multiple-choice questions with 4 options each and indicate the correct answer. Format it clearly.`,
			record.Name, record.Subject, record.Description), nil
	case ActionKeypoints:
		return fmt.Sprintf(`Extract the key points and main ideas from the document "%s" about %s. The document description is: "%s". Present them as bullet points in a logical order.`,
			record.Name, record.Subject, record.Description), nil
	case ActionChat:
		if strings.TrimSpace(message) == "" {
			return "", errors.New("message is required for chat")
		}
		return fmt.Sprintf(`You are a study assistant helping with the document "%s" about %s. The document description is: "%s". Tags: %s. Answer the student's question clearly and concisely.

Question: %s`,
			record.Name, record.Subject, record.Description, strings.Join(record.Tags, ", "), message), nil
	default:
		return "", fmt.Errorf("unknown assistant action %q", action)
	}
}

func (s *assistantService) Ask(ctx context.Context, record entity.ContentRecord, action, message string) (string, bool) {
	prompt, err := buildPrompt(record, action, message)
	if err != nil {
		return "Error: " + err.Error(), true
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("ASSISTANT", "Assistant request failed", map[string]interface{}{
			"error":   err.Error(),
			"action":  action,
			"file_id": record.Id,
		})
		if errors.Is(err, llm.ErrUnexpectedFormat) {
			return unexpectedFormatMessage, true
		}
		return fmt.Sprintf("Error: %s. Please try again.", err.Error()), true
	}
	return text, false
}
