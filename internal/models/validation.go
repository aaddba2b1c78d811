package models

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// FieldError describes a single offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every offending field of a record, not just the
// first one found.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks the record against the schema and returns a
// *ValidationError listing every offending field, or nil.
func (r *Restaurant) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(r.Name) == "" {
		verr.add("restaurant_name", "is required")
	}

	if strings.TrimSpace(r.Location.Address) == "" {
		verr.add("location.address", "is required")
	}

	if strings.TrimSpace(r.Location.City) == "" {
		verr.add("location.city", "is required")
	}

	if r.Location.badLatitude != "" {
		verr.add("location.latitude", "cannot parse %s as a number", r.Location.badLatitude)
	}

	if r.Location.badLongitude != "" {
		verr.add("location.longitude", "cannot parse %s as a number", r.Location.badLongitude)
	}

	if r.Contact != nil {
		if r.Contact.Email != nil && !isValidEmail(*r.Contact.Email) {
			verr.add("contact.email", "%q is not a valid email address", *r.Contact.Email)
		}

		if r.Contact.Website != nil && !isValidURL(*r.Contact.Website) {
			verr.add("contact.website", "%q is not a valid URL", *r.Contact.Website)
		}
	}

	for i, section := range r.Menu {
		if strings.TrimSpace(section.Section) == "" {
			verr.add(fmt.Sprintf("menu[%d].section", i), "is required")
		}

		for j, item := range section.Items {
			field := fmt.Sprintf("menu[%d].items[%d]", i, j)

			if strings.TrimSpace(item.Name) == "" {
				verr.add(field+".item_name", "is required")
			}

			if item.badPrice != "" {
				verr.add(field+".price", "cannot parse %s as a number", item.badPrice)
			} else if item.Price < 0 {
				verr.add(field+".price", "must be non-negative, got %v", item.Price)
			}
		}
	}

	for i, review := range r.Reviews {
		if review.badRating != "" {
			verr.add(fmt.Sprintf("reviews[%d].rating", i), "cannot parse %s as a number", review.badRating)
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	return nil
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)

	return err == nil && addr.Address == s
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)

	return err == nil && u.Scheme != "" && u.Host != ""
}
