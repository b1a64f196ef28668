package entity

import "encoding/json"

// MarshalJSON flattens Nested into the top-level object so profiles
// round-trip through JSON with the same shape the fixture generator and
// API clients use.
func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// UnmarshalJSON splits the fixed profile fields from the open nested keys.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Profile{}
	for k, v := range raw {
		switch k {
		case "id":
			if s, ok := v.(string); ok {
				p.ID = s
			}
		case "name":
			if s, ok := v.(string); ok {
				p.Name = s
			}
		case "settings":
			if m, ok := v.(map[string]any); ok {
				p.Settings = m
			}
		case "preferences":
			if m, ok := v.(map[string]any); ok {
				p.Preferences = m
			}
		case "metadata":
			if m, ok := v.(map[string]any); ok {
				p.Metadata = metadataFromMap(m)
			}
		default:
			if p.Nested == nil {
				p.Nested = make(map[string]any)
			}
			p.Nested[k] = v
		}
	}
	return nil
}

func metadataFromMap(m map[string]any) Metadata {
	var md Metadata
	if s, ok := m["created_at"].(string); ok {
		md.CreatedAt = s
	}
	if s, ok := m["updated_at"].(string); ok {
		md.UpdatedAt = s
	}
	if s, ok := m["version"].(string); ok {
		md.Version = s
	}
	return md
}
