package synth

const tokensPerMillion = 1_000_000

// Pricing is the dollar cost per million tokens.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// DefaultPricing matches Claude Sonnet list prices.
var DefaultPricing = Pricing{InputPerMillion: 3.0, OutputPerMillion: 15.0}

// Usage is the token accounting of one generation.
type Usage struct {
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	InputCost    float64 `json:"inputCost"`
	OutputCost   float64 `json:"outputCost"`
	TotalCost    float64 `json:"totalCost"`
}

// Cost prices a token count.
func (p Pricing) Cost(inputTokens, outputTokens int) Usage {
	in := float64(inputTokens) / tokensPerMillion * p.InputPerMillion
	out := float64(outputTokens) / tokensPerMillion * p.OutputPerMillion
	return Usage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		InputCost:    in,
		OutputCost:   out,
		TotalCost:    in + out,
	}
}

// estimateTokens approximates a token count at four characters per token.
func estimateTokens(s string) int {
	if s == "" {
		return 0
	}
	return (len(s) + 3) / 4
}
