package providers

import (
	"fmt"

	"github.com/contre95/voicemusic/src/features/config"
	"github.com/contre95/voicemusic/src/features/searching"
	"github.com/contre95/voicemusic/src/music"
)

// FromConfig builds the providers in try order: every instance of the first
// family, then every instance of the next one.
func FromConfig(cfg config.Search) ([]searching.Provider, error) {
	opts := Options{
		Timeout:    cfg.Timeout,
		UserAgent:  cfg.UserAgent,
		MaxResults: cfg.MaxResults,
	}.withDefaults()

	var list []searching.Provider
	for _, family := range cfg.Families {
		for i, instance := range family.Instances {
			switch music.ProviderFamily(family.Name) {
			case music.FamilyPiped:
				list = append(list, NewPipedProvider(instance, i+1, opts))
			case music.FamilyInvidious:
				list = append(list, NewInvidiousProvider(instance, i+1, opts))
			default:
				return nil, fmt.Errorf("unknown provider family %q", family.Name)
			}
		}
	}
	return list, nil
}
