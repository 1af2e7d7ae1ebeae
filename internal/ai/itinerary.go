package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func itineraryPrompt(destination string, days int, budget decimal.Decimal) string {
	return fmt.Sprintf(`Create a detailed travel itinerary for a trip to %s.
Duration: %d days
Budget: RM %s

Please include:
- Daily activities
- Local food recommendations
- Estimated costs for each activity

Format the response in Markdown with a heading for each day.
End with a "Budget Breakdown" section.
Make it fun and practical for a university student.`, destination, days, budget.StringFixed(2))
}

// GenerateItinerary returns a Markdown itinerary for the trip.
func (c *Client) GenerateItinerary(ctx context.Context, destination string, days int, budget decimal.Decimal) (string, error) {
	text, err := c.generate(ctx, part{Text: itineraryPrompt(destination, days, budget)})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
