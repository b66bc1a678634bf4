package protocol

// Rule is the flat display projection of a scoring rule. Points holds the
// base multiplier for hands and the (each-)multiplier for factors, display
// only: settlement never reads it.
type Rule struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	NameCN      string       `json:"name_cn,omitempty"`
	Description string       `json:"description"`
	Points      int          `json:"points"`
	Category    RuleCategory `json:"category,omitempty"`
}

// BasicRule is a non-scoring rule (flow / etiquette) for the Learn UI.
type BasicRule struct {
	ID            string           `json:"id"`
	NameEN        string           `json:"name_en"`
	NameCN        string           `json:"name_cn,omitempty"`
	DescriptionEN string           `json:"description_en"`
	DescriptionCN string           `json:"description_cn,omitempty"`
	Section       BasicRuleSection `json:"section"`
}

type RuleSearchRequest struct {
	Query string `json:"query"`
}

type RuleSearchResponse struct {
	RuleIDs []string `json:"rule_ids"`
}
