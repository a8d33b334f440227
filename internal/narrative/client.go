package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"gaji/internal/domain"
)

// Client talks to an OpenRouter-compatible chat completions API to turn
// a numeric estimate into a natural-language analysis. Every method is
// best-effort from the caller's perspective: a failed call must never
// block the numeric estimate.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
	maxRetries  int
}

// Config configures the narrative client. Temperature is a pointer so
// an explicit zero is distinguishable from unset.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature *float64
}

// NewClient creates a narrative client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "qwen/qwen-2.5-72b-instruct"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	temperature := 0.7
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      key,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: temperature,
		client:      &http.Client{Timeout: t},
		maxRetries:  3,
	}, nil
}

const analysisSystemPrompt = `You are an expert HR consultant and salary analyst specializing in the Indonesian job market. You analyze candidate profiles and explain salary estimations grounded in the Indonesia Salary Guide 2025. Consider years of experience, education, skill relevance, industry demand and location. Provide practical and actionable insights.`

// AnalyzeEstimate asks the model to explain an estimate. The response
// is expected as JSON but free text is accepted: a non-JSON reply
// becomes the explanation verbatim.
func (c *Client) AnalyzeEstimate(ctx context.Context, p domain.Profile, est domain.EstimateResult) (domain.Narrative, error) {
	var positions strings.Builder
	limit := len(est.Matches)
	if limit > 5 {
		limit = 5
	}
	for _, m := range est.Matches[:limit] {
		fmt.Fprintf(&positions, "- %s in %s: IDR %.0f million/month\n", m.Record.JobTitle, m.Record.Industry, m.Record.MonthlySalary)
	}

	prompt := fmt.Sprintf(`Analyze this candidate profile and the matched salary data.

Profile:
- Title: %s
- Years of experience: %.1f
- Education: %s
- Industry: %s
- Location: %s
- Skills: %s

Estimated range: IDR %.0f - %.0f million/month (average %.0f).

Matched positions from the salary guide:
%s
Respond as JSON: {"explanation": "...", "strengths": [...], "improvements": [...], "recommendations": [...], "market_insights": "..."}`,
		p.Title, p.YearsExperience, p.Education, p.Industry, p.Location,
		strings.Join(p.Skills, ", "),
		est.Min, est.Max, est.Avg, positions.String())

	content, err := c.chatCompletion(ctx, analysisSystemPrompt, prompt, c.maxTokens)
	if err != nil {
		return domain.Narrative{}, err
	}
	return parseNarrative(content), nil
}

// SkillRecommendations asks for skills that would raise the profile's
// market value. Callers fall back to DefaultSkillRecommendations on error.
func (c *Client) SkillRecommendations(ctx context.Context, skills []string, targetRole, industry string) ([]string, error) {
	if len(skills) > 10 {
		skills = skills[:10]
	}
	prompt := fmt.Sprintf(`Based on the Indonesian job market, what skills should someone with the following profile develop?

Current skills: %s
Target role: %s
Industry: %s

Give 5 specific skill recommendations as a JSON array of strings.`,
		strings.Join(skills, ", "), targetRole, industry)

	content, err := c.chatCompletion(ctx, "", prompt, 500)
	if err != nil {
		return nil, err
	}
	if parsed := gjson.Parse(content); parsed.IsArray() {
		var recs []string
		parsed.ForEach(func(_, v gjson.Result) bool {
			if s := strings.TrimSpace(v.String()); s != "" {
				recs = append(recs, s)
			}
			return true
		})
		if len(recs) > 0 {
			return capAt(recs, 5), nil
		}
	}
	// Plain-text reply: one recommendation per line.
	var recs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if line != "" {
			recs = append(recs, line)
		}
	}
	if len(recs) == 0 {
		return nil, errors.New("empty skill recommendations response")
	}
	return capAt(recs, 5), nil
}

// DefaultSkillRecommendations is the static fallback used when the
// narrative service is unavailable.
func DefaultSkillRecommendations() []string {
	return []string{
		"Enhance English communication skills",
		"Learn data analysis and visualization",
		"Develop project management capabilities",
		"Improve digital literacy and tech skills",
		"Build leadership and team management skills",
	}
}

// parseNarrative reads the model reply leniently: well-formed JSON
// fills every field, anything else becomes the explanation.
func parseNarrative(content string) domain.Narrative {
	content = strings.TrimSpace(content)
	if !gjson.Valid(content) {
		return domain.Narrative{Explanation: content}
	}
	doc := gjson.Parse(content)
	if !doc.IsObject() {
		return domain.Narrative{Explanation: content}
	}
	return domain.Narrative{
		Explanation:     doc.Get("explanation").String(),
		Strengths:       stringList(doc.Get("strengths")),
		Improvements:    stringList(doc.Get("improvements")),
		Recommendations: stringList(doc.Get("recommendations")),
		MarketInsights:  doc.Get("market_insights").String(),
	}
}

func stringList(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func capAt(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (c *Client) chatCompletion(ctx context.Context, system, user string, maxTokens int) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	var messages []message
	if system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: user})

	body := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
		"max_tokens":  maxTokens,
	}
	data, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-Title", "Gaji Salary Estimator")

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return "", err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(delay)
				continue
			}
			return "", fmt.Errorf("chat completion failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return "", fmt.Errorf("chat completion failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return "", err
		}
		content := gjson.GetBytes(payload, "choices.0.message.content").String()
		if content == "" {
			return "", errors.New("no completion returned")
		}
		return content, nil
	}
	return "", errors.New("no completion returned")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
