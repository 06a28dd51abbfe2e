package classifier

import (
	"fmt"
	"strings"

	"tickertag/models"
)

const instructionTemplate = `
You are a content classifier for social-media posts by accounts tied to a tradable asset.
The input is a JSON object with four keys: text, author, timestamp, examples.
Classify the post burst in "text" and respond with a single JSON object with four keys:

1. category: exactly one of %s.
2. format: one of %s, describing the structural shape of the content.
3. tone: one of %s.
4. rationale: one or two sentences explaining the choice, grounded only in the text.

Constraints:
- Judge content only. You MUST NOT speculate about price movement, market
  impact, or financial consequences, and the rationale must not mention them.
- The "examples" key holds worked examples of correct classifications; follow
  their style but classify only the "text" field of the input.
- You MUST NOT wrap the JSON output in a markdown code block.
- The response must contain ONLY the raw JSON string.
`

// SystemInstruction renders the classification instruction for a taxonomy.
// The category list is closed; anything outside it is rejected on parse.
func SystemInstruction(taxonomy models.Taxonomy) string {
	categories := make([]string, 0, len(taxonomy.Categories))
	for _, c := range taxonomy.Categories {
		categories = append(categories, string(c))
	}
	formats := make([]string, 0, len(taxonomy.Formats))
	for _, f := range taxonomy.Formats {
		formats = append(formats, string(f))
	}
	tones := make([]string, 0, len(taxonomy.Tones))
	for _, v := range taxonomy.Tones {
		tones = append(tones, string(v))
	}
	return fmt.Sprintf(instructionTemplate,
		quoteList(categories), quoteList(formats), quoteList(tones))
}

// DefaultWorkedExamples is the fixed few-shot set sent with every request.
func DefaultWorkedExamples() []WorkedExample {
	return []WorkedExample{
		{
			Text:      "API is now live",
			Category:  string(models.CategoryUpdate),
			Rationale: "Announces that a product capability has shipped.",
		},
		{
			Text:      "gm",
			Category:  string(models.CategoryShitpost),
			Rationale: "Contentless ritual greeting with no informational value.",
		},
		{
			Text:      "Huge thanks to everyone who came to the meetup last night",
			Category:  string(models.CategoryCommunity),
			Rationale: "Addresses and appreciates the community rather than the product.",
		},
		{
			Text:      "The outage rumors are FUD, uptime has been 100% all week",
			Category:  string(models.CategoryDefense),
			Rationale: "Directly rebuts a circulating negative claim.",
		},
	}
}

func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, `"`+it+`"`)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
