package music

import "fmt"

// ProviderFamily identifies a group of search instances sharing the same API schema.
type ProviderFamily string

const (
	FamilyPiped     ProviderFamily = "piped"
	FamilyInvidious ProviderFamily = "invidious"
)

// SearchResult is a playable video in the shape the player expects,
// regardless of which provider produced it.
type SearchResult struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail"`
}

// Valid reports whether the result can be handed to the player.
func (r SearchResult) Valid() bool {
	return r.VideoID != "" && r.Title != ""
}

// ProviderDescriptor describes one configured search instance.
// Priority is the position of the instance inside its family.
type ProviderDescriptor struct {
	Family   ProviderFamily `json:"family"`
	BaseURL  string         `json:"baseUrl"`
	Priority int            `json:"priority"`
}

func (d ProviderDescriptor) String() string {
	return fmt.Sprintf("%s#%d(%s)", d.Family, d.Priority, d.BaseURL)
}

// SongInterpretation is a single song suggestion derived from a spoken request.
type SongInterpretation struct {
	Comment    string `json:"comment"`
	SearchTerm string `json:"searchTerm"`
}
