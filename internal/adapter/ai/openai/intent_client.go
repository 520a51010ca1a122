package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

const systemPrompt = `You are an intent classifier for a clothing retail inventory assistant.
Classify the user's transcript into exactly one intent and extract entities.

Intents:
- get_stock: stock level questions ("how many black hoodies do we have")
- create_reorder: restock requests ("order 50 more medium jeans")
- get_sales_summary: sales questions ("how did we do this week")
- get_supplier_info: supplier lookups ("who supplies the denim jackets")
- get_delivery_status: delivery questions ("when is order PO-1042 arriving")
- unknown: anything else

Entities (omit keys you cannot extract):
- product_name: product type, singular ("hoodie", "jeans")
- color, size: as spoken
- sku: product code like TSH-001
- quantity: integer, digits only
- window_days: integer number of days for sales summaries
- reorder_id: purchase order id like PO-1042

Transcripts may be in English or Spanish. Always answer with a single JSON
object: {"intent": "...", "entities": {...}, "confidence": 0.0-1.0}.
Output ONLY the JSON object.`

const defaultModel = "gpt-4o-mini"

// IntentClient classifies transcripts through the OpenAI chat completions API.
// It implements ports.IntentModel and performs no fallback of its own.
type IntentClient struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func NewIntentClient(apiKey, model string, log *zap.Logger) *IntentClient {
	if model == "" {
		model = defaultModel
	}
	return &IntentClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}
}

func (c *IntentClient) ExtractIntent(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		MaxTokens:   300,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Language hint: %s\nTranscript: %s", lang, transcript)},
		},
	})
	if err != nil {
		return ports.ModelCompletion{}, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.ModelCompletion{}, fmt.Errorf("openai: no choices returned")
	}

	raw := resp.Choices[0].Message.Content
	completion, err := decodeCompletion(raw)
	if err != nil {
		c.log.Warn("Model returned undecodable payload", zap.String("raw", raw))
		return ports.ModelCompletion{}, err
	}

	c.log.Debug("Classified transcript",
		zap.String("intent", completion.Intent),
		zap.Int("entity_count", len(completion.Entities)))
	return completion, nil
}

type rawCompletion struct {
	Intent     string         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Confidence *float64       `json:"confidence"`
}

// decodeCompletion parses the model output, recovering the JSON object from
// surrounding prose if the model ignored the output instructions. Entity
// values arrive as strings or numbers depending on the model's mood, so both
// are accepted.
func decodeCompletion(raw string) (ports.ModelCompletion, error) {
	var parsed rawCompletion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		first := strings.IndexByte(raw, '{')
		last := strings.LastIndexByte(raw, '}')
		if first < 0 || last <= first {
			return ports.ModelCompletion{}, fmt.Errorf("openai: decode completion: %w", err)
		}
		if err2 := json.Unmarshal([]byte(raw[first:last+1]), &parsed); err2 != nil {
			return ports.ModelCompletion{}, fmt.Errorf("openai: decode completion: %w", err)
		}
	}

	entities := make(map[string]string, len(parsed.Entities))
	for k, v := range parsed.Entities {
		switch val := v.(type) {
		case string:
			entities[k] = val
		case float64:
			entities[k] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}

	return ports.ModelCompletion{
		Intent:     parsed.Intent,
		Entities:   entities,
		Confidence: parsed.Confidence,
	}, nil
}
