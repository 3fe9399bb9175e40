package entity

import (
	"encoding/json"
)

// VideoDraft is a create request. Fields of the wrong JSON type read as empty;
// isMuted uses loose boolean coercion.
type VideoDraft struct {
	Title       string
	VideoURL    string
	BannerURL   string
	Description string
	Category    string
	Visibility  string
	IsMuted     bool
	Chapters    ChapterInput
}

func (d *VideoDraft) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = VideoDraft{
		Title:       stringField(fields, "title"),
		VideoURL:    stringField(fields, "videoUrl"),
		BannerURL:   stringField(fields, "bannerUrl"),
		Description: stringField(fields, "description"),
		Category:    stringField(fields, "category"),
		Visibility:  stringField(fields, "visibility"),
		IsMuted:     Truthy(fields["isMuted"]),
	}
	if raw, ok := fields["timestamps"]; ok {
		_ = d.Chapters.UnmarshalJSON(raw)
	}
	return nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	if v := decodeField[string](fields, key); v != nil {
		return *v
	}
	return ""
}

// VideoPatch is a creator's edit request. Each field is decoded on its own, so a
// field of the wrong JSON type is dropped without failing the rest of the patch.
type VideoPatch struct {
	IsMuted     *bool
	Visibility  *string
	BannerURL   *string
	Title       *string
	Description *string
	Category    *string
	Chapters    ChapterInput
}

func (p *VideoPatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = VideoPatch{
		IsMuted:     decodeField[bool](fields, "isMuted"),
		Visibility:  decodeField[string](fields, "visibility"),
		BannerURL:   decodeField[string](fields, "bannerUrl"),
		Title:       decodeField[string](fields, "title"),
		Description: decodeField[string](fields, "description"),
		Category:    decodeField[string](fields, "category"),
	}
	if raw, ok := fields["timestamps"]; ok {
		_ = p.Chapters.UnmarshalJSON(raw)
	}
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// Truthy applies loose boolean coercion to a raw JSON value: absent, null,
// false, 0 and "" are false; everything else is true.
func Truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
