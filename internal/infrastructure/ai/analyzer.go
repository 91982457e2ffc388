// Package ai implements the generation invoker: it builds the analysis
// prompt for a commit and submits it to the Anthropic messages API,
// returning a validated rule or failing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

const (
	anthropicVersion  = "2023-06-01"
	httpClientTimeout = 120 * time.Second
)

// Analyzer submits commit analysis prompts to the generative model.
type Analyzer struct {
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client
	logger     ports.Logger
}

// NewAnalyzer builds the analyzer. The model credential is a startup-time
// precondition: a missing key fails construction, not the first call.
func NewAnalyzer(model domain.ModelDefinition, timeout time.Duration, log ports.Logger) (*Analyzer, error) {
	apiKey := os.Getenv(model.AuthEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s environment variable is required", domain.ErrGenerationFailed, model.AuthEnvVar)
	}
	if timeout <= 0 {
		timeout = httpClientTimeout
	}
	return &Analyzer{
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (a anthropicResponse) firstText() string {
	if len(a.Content) == 0 {
		return ""
	}
	return a.Content[0].Text
}

// Analyze implements ports.RuleGenerator. The call is not retried: a
// repeated low-temperature generation is not guaranteed idempotent and
// repeating a large-context call is expensive.
func (a *Analyzer) Analyze(ctx context.Context, commit domain.Commit) (domain.Rule, error) {
	prompt := BuildPrompt(commit)
	a.logger.Debug("sending analysis request", map[string]interface{}{
		"model":      a.model.ModelID,
		"prompt_len": len(prompt),
	})

	payload := anthropicRequest{
		Model:       a.model.ModelID,
		MaxTokens:   a.model.MaxTokens,
		Temperature: a.model.Temperature,
		System:      systemPrompt,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: prompt}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("%w: encode request: %v", domain.ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Rule{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.Rule{}, fmt.Errorf("%w: model API returned %s", domain.ErrGenerationFailed, resp.Status)
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Rule{}, fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}

	rule, err := parseRule(decoded.firstText())
	if err != nil {
		return domain.Rule{}, err
	}

	a.logger.Info("analysis complete", map[string]interface{}{
		"title":    rule.Title,
		"category": rule.Category,
		"examples": len(rule.Examples),
	})
	return rule, nil
}

// parseRule locates the JSON object in the model's reply and validates it
// against the rule shape. A blank title is a valid "no pattern" result and
// skips the remaining field checks.
func parseRule(text string) (domain.Rule, error) {
	raw := extractJSONObject(text)
	if raw == "" {
		return domain.Rule{}, fmt.Errorf("%w: response contains no JSON object", domain.ErrGenerationFailed)
	}

	var rule domain.Rule
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		return domain.Rule{}, fmt.Errorf("%w: decode rule: %v", domain.ErrGenerationFailed, err)
	}

	if rule.NoPattern() {
		return rule, nil
	}
	if strings.TrimSpace(rule.Category) == "" {
		return domain.Rule{}, fmt.Errorf("%w: rule is missing a category", domain.ErrGenerationFailed)
	}
	if strings.TrimSpace(rule.Description) == "" {
		return domain.Rule{}, fmt.Errorf("%w: rule is missing a description", domain.ErrGenerationFailed)
	}
	for i, ex := range rule.Examples {
		if ex.Scenario == "" || ex.Before == "" || ex.After == "" {
			return domain.Rule{}, fmt.Errorf("%w: example %d is incomplete", domain.ErrGenerationFailed, i+1)
		}
	}
	return rule, nil
}

// extractJSONObject returns the outermost {...} span of the reply, looking
// inside a fenced code block first when one is present.
func extractJSONObject(text string) string {
	if idx := strings.Index(text, "```"); idx != -1 {
		rest := text[idx+3:]
		if nl := strings.Index(rest, "\n"); nl != -1 && !strings.ContainsAny(rest[:nl], "{") {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end != -1 {
			text = rest[:end]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

var _ ports.RuleGenerator = (*Analyzer)(nil)
