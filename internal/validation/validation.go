// Package validation checks home-screen configuration payloads and stored
// records for structural and semantic problems. All checks are pure: they
// accumulate human-readable error strings and never fail on malformed input.
package validation

import (
    "encoding/json"
    "fmt"
    "regexp"
    "strings"
)

// Result is the outcome of a validation pass. Errors preserves the order in
// which rules were evaluated.
type Result struct {
    IsValid bool     `json:"isValid"`
    Errors  []string `json:"errors"`
}

var (
    hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
    // Relative URLs starting with / or # are allowed alongside full http(s)
    // URLs. Bare anchors ("#", "##") pass on purpose so draft content with
    // placeholder links still validates.
    urlRe = regexp.MustCompile(`^(https?://|/|#)`)
)

func isHexColor(v any) bool {
    s, ok := v.(string)
    return ok && hexColorRe.MatchString(s)
}

func isURL(v any) bool {
    s, ok := v.(string)
    return ok && urlRe.MatchString(s)
}

// asMap produces the decoded-JSON view of v. Typed values are round-tripped
// through encoding/json so field checks see the wire shape, the same shape an
// uploaded file decodes to. ok is false when v is nil, a JSON null, or not an
// object at all.
func asMap(v any) (map[string]any, bool) {
    switch t := v.(type) {
    case nil:
        return nil, false
    case map[string]any:
        return t, true
    }
    b, err := json.Marshal(v)
    if err != nil {
        return nil, false
    }
    var m map[string]any
    if err := json.Unmarshal(b, &m); err != nil || m == nil {
        return nil, false
    }
    return m, true
}

func nonEmptyString(v any) bool {
    s, ok := v.(string)
    return ok && s != ""
}

func validateCarousel(carousel map[string]any) []string {
    var errs []string

    slidesVal, ok := carousel["slides"].([]any)
    if !ok {
        return []string{"Carousel slides must be an array"}
    }

    for i, raw := range slidesVal {
        prefix := fmt.Sprintf("Slide %d", i+1)
        slide, _ := raw.(map[string]any)

        if !nonEmptyString(slide["id"]) {
            errs = append(errs, prefix+": id is required and must be a string")
        }

        if !nonEmptyString(slide["imageUrl"]) {
            errs = append(errs, prefix+": imageUrl is required and must be a string")
        } else if !isURL(slide["imageUrl"]) {
            errs = append(errs, prefix+": imageUrl must be a valid URL")
        }

        if !nonEmptyString(slide["altText"]) {
            errs = append(errs, prefix+": altText is required and must be a string")
        }

        if link, present := slide["linkUrl"]; present && link != "" && !isURL(link) {
            errs = append(errs, prefix+": linkUrl must be a valid URL if provided")
        }

        switch slide["aspectRatio"] {
        case "portrait", "landscape", "square":
        default:
            errs = append(errs, prefix+": aspectRatio must be 'portrait', 'landscape', or 'square'")
        }
    }

    return errs
}

func validateText(text map[string]any) []string {
    var errs []string

    if _, ok := text["heading"].(string); !ok {
        errs = append(errs, "Text heading must be a string")
    }
    if !isHexColor(text["headingColor"]) {
        errs = append(errs, "Text headingColor must be a valid hex color (e.g., #000000)")
    }
    if _, ok := text["description"].(string); !ok {
        errs = append(errs, "Text description must be a string")
    }
    if !isHexColor(text["descriptionColor"]) {
        errs = append(errs, "Text descriptionColor must be a valid hex color (e.g., #000000)")
    }

    return errs
}

func validateCta(cta map[string]any) []string {
    var errs []string

    if s, ok := cta["primaryText"].(string); !ok || strings.TrimSpace(s) == "" {
        errs = append(errs, "CTA primaryText is required and must be a non-empty string")
    }

    if s, ok := cta["primaryUrl"].(string); !ok || strings.TrimSpace(s) == "" {
        errs = append(errs, "CTA primaryUrl is required")
    } else if !isURL(s) {
        errs = append(errs, "CTA primaryUrl must be a valid URL")
    }

    if !isHexColor(cta["primaryColor"]) {
        errs = append(errs, "CTA primaryColor must be a valid hex color (e.g., #000000)")
    }
    if !isHexColor(cta["primaryTextColor"]) {
        errs = append(errs, "CTA primaryTextColor must be a valid hex color (e.g., #ffffff)")
    }

    return errs
}

// ValidatePayload checks a ConfigPayload (typed or decoded JSON). Every
// applicable rule is evaluated; nothing short-circuits except a missing or
// non-object section, which cannot be checked further.
func ValidatePayload(payload any) Result {
    m, ok := asMap(payload)
    if !ok {
        return Result{IsValid: false, Errors: []string{"Configuration payload is required"}}
    }

    var errs []string

    if v, present := m["carousel"]; !present || v == nil {
        errs = append(errs, "Carousel config is required")
    } else {
        section, _ := v.(map[string]any)
        errs = append(errs, validateCarousel(section)...)
    }

    if v, present := m["text"]; !present || v == nil {
        errs = append(errs, "Text config is required")
    } else {
        section, _ := v.(map[string]any)
        errs = append(errs, validateText(section)...)
    }

    if v, present := m["cta"]; !present || v == nil {
        errs = append(errs, "CTA config is required")
    } else {
        section, _ := v.(map[string]any)
        errs = append(errs, validateCta(section)...)
    }

    return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateStoredConfig checks a full on-disk record: envelope metadata plus
// the wrapped payload. Used at import time and when guarding reads of
// persisted files, never during normal payload updates.
func ValidateStoredConfig(cfg any) Result {
    m, ok := asMap(cfg)
    if !ok {
        return Result{IsValid: false, Errors: []string{"Configuration is required"}}
    }

    var errs []string

    if !nonEmptyString(m["id"]) {
        errs = append(errs, "Configuration id is required and must be a string")
    }
    if n, ok := m["schemaVersion"].(float64); !ok || n < 1 {
        errs = append(errs, "Configuration schemaVersion must be a positive number")
    }
    if !nonEmptyString(m["updatedAt"]) {
        errs = append(errs, "Configuration updatedAt is required")
    }
    if !nonEmptyString(m["createdAt"]) {
        errs = append(errs, "Configuration createdAt is required")
    }

    if v, present := m["data"]; !present || v == nil {
        errs = append(errs, "Configuration data payload is required")
    } else {
        errs = append(errs, ValidatePayload(v).Errors...)
    }

    return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateImportData accepts a value of unknown shape (typically a decoded
// upload) and dispatches on its keys: a stored-record envelope gets the full
// check, a bare payload gets the payload check, anything else is rejected.
// Both shapes are accepted because exports exist in the wild in both forms.
func ValidateImportData(data any) Result {
    m, ok := asMap(data)
    if !ok {
        return Result{IsValid: false, Errors: []string{"Import data must be a valid object"}}
    }

    if hasKeys(m, "data", "id", "schemaVersion") {
        return ValidateStoredConfig(m)
    }
    if hasKeys(m, "carousel", "text", "cta") {
        return ValidatePayload(m)
    }

    return Result{
        IsValid: false,
        Errors:  []string{"Import data must contain carousel, text, and cta configurations"},
    }
}

func hasKeys(m map[string]any, keys ...string) bool {
    for _, k := range keys {
        if _, ok := m[k]; !ok {
            return false
        }
    }
    return true
}
