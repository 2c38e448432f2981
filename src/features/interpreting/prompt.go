package interpreting

import "fmt"

const interpretPrompt = `Interpret this music request: "%s"

Return a JSON array of song objects. Each object should have:
- "comment": A brief comment about why this song matches the request
- "searchTerm": The full search term to use (artist name + song title)

Examples:
- "play some jazz" → [{"comment": "Classic smooth jazz piece", "searchTerm": "Miles Davis Kind of Blue"}, {"comment": "Uplifting jazz standard", "searchTerm": "Take Five Dave Brubeck"}]
- "Hotel California" → [{"comment": "The classic Eagles rock anthem", "searchTerm": "Hotel California Eagles"}]

Return ONLY valid JSON array, no other text. If the request is not about music, return [].`

// BuildPrompt embeds the transcript in the interpretation prompt.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(interpretPrompt, transcript)
}
