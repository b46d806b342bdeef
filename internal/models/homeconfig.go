package models

import "time"

// Aspect ratios recognized for carousel slides.
const (
    AspectPortrait  = "portrait"
    AspectLandscape = "landscape"
    AspectSquare    = "square"
)

// CarouselSlide is one image in the home-screen carousel.
// LinkUrl is optional; empty means the slide is not tappable.
type CarouselSlide struct {
    ID          string `json:"id"`
    ImageURL    string `json:"imageUrl"`
    AltText     string `json:"altText"`
    LinkURL     string `json:"linkUrl,omitempty"`
    AspectRatio string `json:"aspectRatio"`
}

// CarouselConfig holds slides in display order.
type CarouselConfig struct {
    Slides []CarouselSlide `json:"slides"`
}

// TextConfig is the home-screen text block. Heading and description may be
// empty; colors are always 6-digit hex.
type TextConfig struct {
    Heading          string `json:"heading"`
    HeadingColor     string `json:"headingColor"`
    Description      string `json:"description"`
    DescriptionColor string `json:"descriptionColor"`
}

// CtaConfig is the call-to-action button.
type CtaConfig struct {
    PrimaryText      string `json:"primaryText"`
    PrimaryURL       string `json:"primaryUrl"`
    PrimaryColor     string `json:"primaryColor"`
    PrimaryTextColor string `json:"primaryTextColor"`
}

// ConfigPayload is the unit the editor mutates and the validator checks:
// exactly one carousel, one text block, one CTA.
type ConfigPayload struct {
    Carousel CarouselConfig `json:"carousel"`
    Text     TextConfig     `json:"text"`
    Cta      CtaConfig      `json:"cta"`
}

// StoredConfig is the persisted envelope around a ConfigPayload.
// Timestamps are ISO-8601 strings, the on-disk wire format. CreatedAt never
// changes after creation; UpdatedAt advances on every successful update.
type StoredConfig struct {
    ID            string        `json:"id"`
    SchemaVersion int           `json:"schemaVersion"`
    CreatedAt     string        `json:"createdAt"`
    UpdatedAt     string        `json:"updatedAt"`
    Data          ConfigPayload `json:"data"`
}

// ConfigMeta is the listing view of a record: metadata only, never the payload.
type ConfigMeta struct {
    ID            string `json:"id"`
    SchemaVersion int    `json:"schemaVersion"`
    CreatedAt     string `json:"createdAt"`
    UpdatedAt     string `json:"updatedAt"`
}

// Meta returns the metadata view of a stored record.
func (s StoredConfig) Meta() ConfigMeta {
    return ConfigMeta{
        ID:            s.ID,
        SchemaVersion: s.SchemaVersion,
        CreatedAt:     s.CreatedAt,
        UpdatedAt:     s.UpdatedAt,
    }
}

// timestampLayout matches the original editor's exported files
// (millisecond-precision ISO-8601, always UTC).
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in the persisted ISO-8601 form.
func Timestamp(t time.Time) string {
    return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a persisted timestamp. Any RFC3339 string is
// accepted so hand-edited records still sort correctly in listings.
func ParseTimestamp(s string) (time.Time, error) {
    return time.Parse(time.RFC3339, s)
}
