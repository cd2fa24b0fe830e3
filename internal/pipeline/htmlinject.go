package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Placeholders substituted into a page template.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrMissingPlaceholder indicates a page template has no content placeholder.
var ErrMissingPlaceholder = errors.New("template missing placeholder")

// PageData holds the values substituted into a page template.
type PageData struct {
	Title   string
	Content string
}

// TemplateInjector defines the contract for placing a page into a template.
type TemplateInjector interface {
	InjectPage(ctx context.Context, tmpl string, data PageData) (string, error)
}

// TemplateInjection substitutes the title and content placeholders.
type TemplateInjection struct{}

// InjectPage replaces every occurrence of both placeholders in a single pass,
// so placeholder text inside the title or content is left as written.
// Returns ErrMissingPlaceholder if the template has nowhere to put content.
func (t *TemplateInjection) InjectPage(ctx context.Context, tmpl string, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateTemplate(tmpl); err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		TitlePlaceholder, data.Title,
		ContentPlaceholder, data.Content,
	)
	return r.Replace(tmpl), nil
}

// ValidateTemplate checks that tmpl contains the content placeholder.
// The title placeholder is optional.
func ValidateTemplate(tmpl string) error {
	if !strings.Contains(tmpl, ContentPlaceholder) {
		return fmt.Errorf("%w: %s", ErrMissingPlaceholder, ContentPlaceholder)
	}
	return nil
}

// Compile-time interface check.
var _ TemplateInjector = (*TemplateInjection)(nil)
