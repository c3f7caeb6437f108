package store

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingField is returned when title, url, or rating is absent or empty.
	ErrMissingField = errors.New("field is required")

	// ErrInvalidRating is returned when rating is not an integer between 0 and 5.
	ErrInvalidRating = errors.New("rating must be an integer between 0 and 5 inclusive")

	// ErrInvalidURL is returned when url is not an absolute http or https URL.
	ErrInvalidURL = errors.New("url must be a valid http or https url")

	// ErrInvalidField is returned when a text field holds a non-string value,
	// or an update sets title to the empty string.
	ErrInvalidField = errors.New("field has an invalid value")

	// ErrEmptyUpdate is returned when a partial update names no updatable field.
	ErrEmptyUpdate = errors.New("update must contain at least one of title, url, description, rating")

	validate = validator.New()
)

// ValidateNewBookmark checks a decoded create payload and returns the
// normalized bookmark. Checks run in a fixed order: required fields, rating,
// then url.
//
// title and url count as missing when absent or empty. rating counts as
// missing when absent, null, false, or "", so a numeric 0 is accepted.
func ValidateNewBookmark(payload map[string]any) (NewBookmark, error) {
	for _, field := range []string{"title", "url"} {
		if !truthy(payload[field]) {
			return NewBookmark{}, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	if !ratingPresent(payload["rating"]) {
		return NewBookmark{}, fmt.Errorf("%w: rating", ErrMissingField)
	}

	rating, err := ValidateRating(payload["rating"])
	if err != nil {
		return NewBookmark{}, err
	}

	rawURL, ok := payload["url"].(string)
	if !ok {
		return NewBookmark{}, ErrInvalidURL
	}
	if err := ValidateURL(rawURL); err != nil {
		return NewBookmark{}, err
	}

	title, ok := payload["title"].(string)
	if !ok {
		return NewBookmark{}, fmt.Errorf("%w: title", ErrInvalidField)
	}

	var description string
	if d, present := payload["description"]; present && d != nil {
		if description, ok = d.(string); !ok {
			return NewBookmark{}, fmt.Errorf("%w: description", ErrInvalidField)
		}
	}

	return NewBookmark{Title: title, URL: rawURL, Description: description, Rating: rating}, nil
}

// ValidateBookmarkUpdate checks a decoded partial-update payload. A field is
// supplied when its key is present with a non-null value; unknown keys are
// ignored. Supplied fields obey the same rules as on create.
func ValidateBookmarkUpdate(payload map[string]any) (BookmarkUpdate, error) {
	var u BookmarkUpdate

	if v, ok := supplied(payload, "title"); ok {
		title, isString := v.(string)
		if !isString || title == "" {
			return BookmarkUpdate{}, fmt.Errorf("%w: title", ErrInvalidField)
		}
		u.Title = &title
	}
	if v, ok := supplied(payload, "url"); ok {
		rawURL, isString := v.(string)
		if !isString {
			return BookmarkUpdate{}, ErrInvalidURL
		}
		if err := ValidateURL(rawURL); err != nil {
			return BookmarkUpdate{}, err
		}
		u.URL = &rawURL
	}
	if v, ok := supplied(payload, "description"); ok {
		description, isString := v.(string)
		if !isString {
			return BookmarkUpdate{}, fmt.Errorf("%w: description", ErrInvalidField)
		}
		u.Description = &description
	}
	if v, ok := supplied(payload, "rating"); ok {
		rating, err := ValidateRating(v)
		if err != nil {
			return BookmarkUpdate{}, err
		}
		u.Rating = &rating
	}

	if u.Fields() == 0 {
		return BookmarkUpdate{}, ErrEmptyUpdate
	}
	return u, nil
}

// ValidateRating coerces v to an integer in [0,5]. Numbers, numeric strings,
// and booleans are accepted the way a JSON client would expect them to
// coerce; 2.5 or 6 are rejected.
func ValidateRating(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRating, x)
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidRating, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f > 5 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRating, v)
	}
	return int(f), nil
}

// ValidateURL reports whether raw is an absolute web URI: scheme http or
// https and a non-empty host.
func ValidateURL(raw string) error {
	if err := validate.Var(raw, "required,http_url"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" || strings.ContainsAny(raw, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

func supplied(payload map[string]any, key string) (any, bool) {
	v, ok := payload[key]
	return v, ok && v != nil
}

// truthy mirrors the falsy set of a JSON value: null, false, 0, "".
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

func ratingPresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	default:
		return true
	}
}
