package entity

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryMusic  Category = "music"
	CategoryGaming Category = "gaming"
	CategoryComedy Category = "comedy"
	CategoryMovies Category = "movies"
	CategoryTech   Category = "tech"
	CategoryTravel Category = "travel"
	CategoryOther  Category = "other"
)

var Categories = []Category{
	CategoryMusic,
	CategoryGaming,
	CategoryComedy,
	CategoryMovies,
	CategoryTech,
	CategoryTravel,
	CategoryOther,
}

// ParseCategory matches s case-insensitively against the fixed categories.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// NormalizeCategory is ParseCategory with a fallback to CategoryOther.
func NormalizeCategory(s string) Category {
	if c, ok := ParseCategory(s); ok {
		return c
	}
	return CategoryOther
}

// CategoryFilter turns a listing query value into a category filter.
// "" and "all" mean no filter; ok is false for values outside the enumeration.
func CategoryFilter(s string) (c Category, filtered bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", false, true
	}
	c, ok = ParseCategory(s)
	return c, true, ok
}

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// ParseVisibility accepts exactly "public", "private" or "unlisted".
func ParseVisibility(s string) (Visibility, bool) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return v, true
	}
	return "", false
}

type VideoSettings struct {
	IsMuted           bool       `json:"isMuted"`
	IsApproved        bool       `json:"isApproved"`
	AdminMuteOverride bool       `json:"adminMuteOverride"`
	Visibility        Visibility `json:"visibility"`
}

func DefaultVideoSettings() VideoSettings {
	return VideoSettings{
		IsApproved: true,
		Visibility: VisibilityPublic,
	}
}

type VideoStats struct {
	Views int64 `json:"views"`
}

// Video carries a snapshot of the creator's name and logo taken at creation.
// The snapshot is not refreshed when the creator later changes them.
type Video struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	VideoURL    string        `json:"videoUrl"`
	BannerURL   string        `json:"bannerUrl,omitempty"`
	CreatorID   string        `json:"creatorId"`
	CreatorName string        `json:"creatorName"`
	CreatorLogo string        `json:"creatorLogo"`
	Description string        `json:"description"`
	Chapters    []Chapter     `json:"timestamps"`
	Category    Category      `json:"category"`
	Settings    VideoSettings `json:"settings"`
	Stats       VideoStats    `json:"stats"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// OwnedBy reports whether userID is the video's creator.
func (v *Video) OwnedBy(userID string) bool {
	return userID != "" && v.CreatorID == userID
}

// VideoChanges lists the attributes a single update writes; nil means untouched.
type VideoChanges struct {
	Title             *string
	Description       *string
	BannerURL         *string
	Category          *Category
	Chapters          *[]Chapter
	IsMuted           *bool
	Visibility        *Visibility
	IsApproved        *bool
	AdminMuteOverride *bool
}

func (c VideoChanges) IsEmpty() bool {
	return c.Title == nil &&
		c.Description == nil &&
		c.BannerURL == nil &&
		c.Category == nil &&
		c.Chapters == nil &&
		c.IsMuted == nil &&
		c.Visibility == nil &&
		c.IsApproved == nil &&
		c.AdminMuteOverride == nil
}
