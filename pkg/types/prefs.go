package types

// PreferenceSet carries the user's taste keywords. The menu extractor only
// consumes it per call; it never mutates or persists it.
type PreferenceSet struct {
	Dislikes  []string `json:"dislikes"`
	Favorites []string `json:"favorites"`
}

// DislikeSet returns the dislike keywords as a set.
func (s PreferenceSet) DislikeSet() map[string]struct{} {
	return toSet(s.Dislikes)
}

// FavoriteSet returns the favorite keywords as a set.
func (s PreferenceSet) FavoriteSet() map[string]struct{} {
	return toSet(s.Favorites)
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}
