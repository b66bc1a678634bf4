//Package qa answers free-text rule questions by passing them through to a
//Gemini-style generateContent endpoint together with a slice of ruleset
//context. Purely an external collaborator: no rule knowledge lives here.
package qa

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
	"unicode"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/protocol"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

var logger = log.WithField("component", "qa")

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-2.0-flash-exp"

	// keep the ruleset context small enough for the prompt
	maxContextItems = 10
)

type Client struct {
	rs       *ruleset.Ruleset
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

func New(rs *ruleset.Ruleset) *Client {
	endpoint := viper.GetString("qa.endpoint")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := viper.GetString("qa.model")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		rs:       rs,
		endpoint: endpoint,
		apiKey:   viper.GetString("qa.api_key"),
		model:    model,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Answer never fails: configuration or upstream problems come back as a
// readable message in the answer itself.
func (c *Client) Answer(question string) *protocol.QAResponse {
	zh := hasHan(question)

	if c.apiKey == "" {
		if zh {
			return &protocol.QAResponse{Answer: "请在配置文件中设置 qa.api_key 后重试。"}
		}
		return &protocol.QAResponse{Answer: "Please set qa.api_key in the config file and try again."}
	}

	answer, err := c.generate(question, zh)
	if err != nil {
		logger.Warnf("qa upstream failed: %v", err)
		if zh {
			return &protocol.QAResponse{Answer: "问答服务调用失败，请检查密钥或网络。"}
		}
		return &protocol.QAResponse{Answer: "The Q&A upstream call failed. Please check the API key or network."}
	}
	return &protocol.QAResponse{Answer: answer}
}

type contextHand struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	BaseMultiplier int    `json:"base_multiplier"`
}

type contextFactor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (c *Client) prompt(question string, zh bool) string {
	var hands []contextHand
	for _, h := range c.rs.Hands {
		if len(hands) == maxContextItems {
			break
		}
		hands = append(hands, contextHand{
			Name:           h.Name.Zh(),
			Description:    h.DescriptionOneLine.Zh(),
			BaseMultiplier: h.Scoring.BaseMultiplier,
		})
	}
	var factors []contextFactor
	for _, f := range c.rs.Multipliers.Factors {
		if len(factors) == maxContextItems {
			break
		}
		factors = append(factors, contextFactor{
			Name:        f.Name.Zh(),
			Description: f.Description.Zh(),
			Type:        f.Type,
		})
	}

	handsJSON, _ := codec.MarshalIndent(hands, "", "  ")
	factorsJSON, _ := codec.MarshalIndent(factors, "", "  ")

	lang := "English"
	if zh {
		lang = "中文"
	}

	return fmt.Sprintf(`You are a helpful assistant for a Sichuan Mahjong game app called "Ready, Set, Hu!".

Please answer the following question about Sichuan Mahjong rules in %s.

Context - Some example hands (番型):
%s

Context - Some example factors (加倍条件):
%s

Rules:
- Answer based on Sichuan Mahjong rules
- Keep your answer concise and clear
- If you're not sure about a specific rule, say so
- Use %s for your response

Question: %s

Answer:`, lang, handsJSON, factorsJSON, lang, question)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(question string, zh bool) (string, error) {
	body, err := codec.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: c.prompt(question, zh)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := codec.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
