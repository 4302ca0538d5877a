package openai

import "github.com/xavierca1/creator-deals/internal/entity"

// PitchContext é o contexto enviado para a geração de emails e propostas.
type PitchContext struct {
	BrandName          string          `json:"brand_name"`
	ContactEmail       string          `json:"contact_email"`
	ProductDescription string          `json:"product_description,omitempty"`
	FitJustification   string          `json:"fit_justification,omitempty"`
	CreatorName        string          `json:"creator_name,omitempty"`
	CreatorHandle      string          `json:"creator_handle,omitempty"`
	Niche              string          `json:"niche,omitempty"`
	Platforms          []string        `json:"platforms,omitempty"`
	AudienceSize       int64           `json:"audience_size,omitempty"`
	RateCard           entity.RateCard `json:"rate_card"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
