package entity

import "strings"

const (
	usageRightsPrefix = "Usage Rights: "
	exclusivityPrefix = "Exclusivity: "
)

type Rate struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// RateCard é a tabela de preços do onboarding. No banco ela vive como uma
// string com uma linha por item, "<Label>: <amount>", mais os add-ons.
type RateCard struct {
	Rates       []Rate   `json:"rates"`
	UsageRights string   `json:"usage_rights,omitempty"`
	Exclusivity string   `json:"exclusivity,omitempty"`
	Extra       []string `json:"extra,omitempty"`
}

func (rc RateCard) Encode() string {
	var lines []string
	for _, r := range rc.Rates {
		label := strings.TrimSpace(r.Label)
		amount := strings.TrimSpace(r.Amount)
		if label == "" || amount == "" {
			continue
		}
		lines = append(lines, label+": "+amount)
	}
	if v := strings.TrimSpace(rc.UsageRights); v != "" {
		lines = append(lines, usageRightsPrefix+v)
	}
	if v := strings.TrimSpace(rc.Exclusivity); v != "" {
		lines = append(lines, exclusivityPrefix+v)
	}
	lines = append(lines, rc.Extra...)
	return strings.Join(lines, "\n")
}

// ParseRateCard separa por prefixo. Só o primeiro ": " de cada linha conta;
// linhas sem ele ficam em Extra como vieram.
func ParseRateCard(s string) RateCard {
	rc := RateCard{Rates: []Rate{}}
	for _, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, usageRightsPrefix):
			rc.UsageRights = strings.TrimSpace(strings.TrimPrefix(line, usageRightsPrefix))
		case strings.HasPrefix(line, exclusivityPrefix):
			rc.Exclusivity = strings.TrimSpace(strings.TrimPrefix(line, exclusivityPrefix))
		default:
			label, amount, ok := strings.Cut(line, ": ")
			if !ok || strings.TrimSpace(label) == "" {
				rc.Extra = append(rc.Extra, line)
				continue
			}
			rc.Rates = append(rc.Rates, Rate{Label: strings.TrimSpace(label), Amount: strings.TrimSpace(amount)})
		}
	}
	return rc
}
