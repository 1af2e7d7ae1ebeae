package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

const clothingPrompt = `Analyze this laundry image. Identify the types of clothing items visible and count them.
Return the result strictly as a JSON object where keys are the item types and values are the counts.
Example: {"T-shirt": 3, "Pants": 2, "Socks": 5}
If no clothing items are found, return {}.
Do not include markdown formatting or any other text.`

// DetectItems asks the model to count clothing items in a base64 image. The
// image may carry a data URL prefix. A JSON answer is used as is; any other
// answer is read as a caption.
func (c *Client) DetectItems(ctx context.Context, imageBase64 string) (domain.Manifest, error) {
	mime, data := splitDataURL(imageBase64)
	if data == "" {
		return nil, fmt.Errorf("%w: empty image", ErrUnavailable)
	}

	text, err := c.generate(ctx,
		part{Text: clothingPrompt},
		part{InlineData: &inlineData{MimeType: mime, Data: data}},
	)
	if err != nil {
		return nil, err
	}
	return parseDetection(text), nil
}

// splitDataURL strips a "data:<mime>;base64," prefix and returns the mime type
// (image/jpeg when absent) and the payload.
func splitDataURL(s string) (mime, data string) {
	mime = "image/jpeg"
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "base64,"); i >= 0 {
		prefix := s[:i]
		if strings.HasPrefix(prefix, "data:") {
			if m := strings.TrimSuffix(strings.TrimPrefix(prefix, "data:"), ";"); m != "" {
				mime = m
			}
		}
		s = s[i+len("base64,"):]
	}
	return mime, s
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseDetection(text string) domain.Manifest {
	cleaned := stripFences(text)

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return ParseCaption(text)
	}

	m := domain.Manifest{}
	for name, v := range raw {
		if n := toCount(v); n > 0 {
			m.Add(name, n)
		}
	}
	return m
}

func toCount(v any) int {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
