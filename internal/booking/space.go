package booking

import "strings"

// ResolveSpace finds the space a submission refers to. An identifier must match a space id
// or, failing that, a space name exactly (case-insensitive). Only a free-text name falls
// through to partial matching. spaces is expected in name order so partial matches are stable.
func ResolveSpace(spaces []Space, id, name string) (Space, bool) {
	if id = strings.TrimSpace(id); id != "" {
		for _, s := range spaces {
			if s.ID == id {
				return s, true
			}
		}
		return exactName(spaces, id)
	}

	key := strings.TrimSpace(name)
	if key == "" {
		return Space{}, false
	}
	if s, ok := exactName(spaces, key); ok {
		return s, true
	}
	lower := strings.ToLower(key)
	for _, s := range spaces {
		if strings.Contains(strings.ToLower(s.Name), lower) {
			return s, true
		}
	}
	return Space{}, false
}

func exactName(spaces []Space, key string) (Space, bool) {
	for _, s := range spaces {
		if strings.EqualFold(s.Name, key) {
			return s, true
		}
	}
	return Space{}, false
}
