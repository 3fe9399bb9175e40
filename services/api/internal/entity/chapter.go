package entity

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Chapter marks a point of interest in a video, e.g. {"1:45", "Topic"}.
type Chapter struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

var chapterLine = regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+)`)

// ParseChapterText reads one chapter per line in the form "H:MM[:SS] label".
// Lines without a time marker followed by a label are skipped.
func ParseChapterText(text string) []Chapter {
	chapters := []Chapter{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		m := chapterLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[2])
		if label == "" {
			continue
		}
		chapters = append(chapters, Chapter{Time: m[1], Label: label})
	}
	return chapters
}

// ChapterInput is the chapters field of a create or update request. Clients send
// either a list of {time, label} objects or free text with one chapter per line.
type ChapterInput struct {
	Set  bool
	List []Chapter
	Text *string
}

func ChapterList(chapters ...Chapter) ChapterInput {
	return ChapterInput{Set: true, List: chapters}
}

func ChapterText(text string) ChapterInput {
	return ChapterInput{Set: true, Text: &text}
}

// UnmarshalJSON accepts a string or an array. Array entries whose time or label
// is not a string are dropped; any other JSON type leaves the input unset.
func (in *ChapterInput) UnmarshalJSON(data []byte) error {
	*in = ChapterInput{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
		in.Set = true
		in.Text = &text
	case '[':
		var raw []map[string]interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			var loose []interface{}
			if json.Unmarshal(data, &loose) != nil {
				return nil
			}
			raw = make([]map[string]interface{}, 0, len(loose))
			for _, item := range loose {
				if obj, ok := item.(map[string]interface{}); ok {
					raw = append(raw, obj)
				}
			}
		}
		in.Set = true
		in.List = []Chapter{}
		for _, item := range raw {
			t, okTime := item["time"].(string)
			l, okLabel := item["label"].(string)
			if okTime && okLabel {
				in.List = append(in.List, Chapter{Time: t, Label: l})
			}
		}
	}
	return nil
}

// Chapters resolves the input to the chapter list to store.
func (in ChapterInput) Chapters() []Chapter {
	if !in.Set {
		return []Chapter{}
	}
	if in.Text != nil {
		return ParseChapterText(*in.Text)
	}
	if in.List == nil {
		return []Chapter{}
	}
	return in.List
}
