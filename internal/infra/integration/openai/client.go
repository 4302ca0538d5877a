package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/creator-deals/internal/entity"
)

var ErrNotConfigured = errors.New("OPENAI_API_KEY not set")

const (
	emailsInstructions = `You write brand outreach emails for an independent content creator.
Reply with a JSON object: {"email1": {"subject": "...", "body": "..."}, "email2": {"subject": "...", "body": "..."}}.
email1 is the first pitch. email2 is a short, friendly follow-up sent a week later if there is no reply.
Keep each body under 180 words, plain text, no placeholders.`

	proposalInstructions = `You write sponsorship proposals for an independent content creator.
Reply with a JSON object with the keys: title, summary, concept,
deliverables (array of {type, quantity, description}), audience_stats,
timeline (array of {label, date}), next_steps. Use the rate card when pricing is mentioned.`
)

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GenerateOutreachEmails(ctx context.Context, in PitchContext) (*entity.EmailPair, error) {
	var pair entity.EmailPair
	if err := c.complete(ctx, emailsInstructions, in, &pair); err != nil {
		return nil, err
	}
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) GenerateProposal(ctx context.Context, in PitchContext) (*entity.Proposal, error) {
	var proposal entity.Proposal
	if err := c.complete(ctx, proposalInstructions, in, &proposal); err != nil {
		return nil, err
	}
	if err := proposal.Validate(); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// complete faz a chamada e decodifica o JSON do modelo em out.
// Qualquer problema de formato vira ErrMalformedResponse.
func (c *Client) complete(ctx context.Context, instructions string, in PitchContext, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	input, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode generation context: %w", err)
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instructions},
			{Role: "user", Content: string(input)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.7,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("openai error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("%w: no choices", entity.ErrMalformedResponse)
	}

	choice := parsed.Choices[0]
	if choice.FinishReason == "length" {
		return fmt.Errorf("%w: output truncated", entity.ErrMalformedResponse)
	}
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return fmt.Errorf("%w: empty content", entity.ErrMalformedResponse)
	}

	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}
	return nil
}
