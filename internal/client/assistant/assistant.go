// Package assistant turns free-text orders and menus into invoice data
// with a hosted Gemini model.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	ErrNotConfigured = errors.New("assistant: no API key configured")
	ErrEmptyResponse = errors.New("assistant: empty model response")
)

// generator is the subset of *genai.Models in use.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Assistant struct {
	gen     generator
	model   string
	company string
	log     logging.Logger
}

// New connects to the Gemini API. company names the bakery in the system
// instruction.
func New(ctx context.Context, apiKey, model, company string, log logging.Logger) (*Assistant, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}
	return newAssistant(client.Models, model, company, log), nil
}

func newAssistant(gen generator, model, company string, log logging.Logger) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	if company == "" {
		company = models.DefaultSettings().CompanyName
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Assistant{gen: gen, model: model, company: company, log: log}
}

// SetCompany changes the bakery name used in prompts.
func (a *Assistant) SetCompany(name string) {
	if name != "" {
		a.company = name
	}
}

func (a *Assistant) generate(ctx context.Context, contents []*genai.Content, system string, schema *genai.Schema) ([]byte, error) {
	resp, err := a.gen.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: generate: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}
	a.log.Debug(ctx, "model response", "model", a.model, "bytes", len(text))
	return []byte(text), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("assistant: malformed model output: %w", err)
	}
	return nil
}

func newID() string { return uuid.NewString() }
