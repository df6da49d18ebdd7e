package content

import (
	"errors"
	"fmt"
	"strings"

	"learnhub/internal/config"
	"learnhub/internal/domain"
	models "learnhub/internal/domain/models/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// groupingKeyRules applies to institute, subject, chapter and topic names
var groupingKeyRules = []validation.Rule{
	validation.Required,
	validation.By(notBlank),
	validation.RuneLength(1, config.MaxGroupingKeyLength),
}

var titleRules = []validation.Rule{
	validation.Required,
	validation.By(notBlank),
	validation.RuneLength(1, config.MaxContentTitleLength),
}

// notBlank rejects strings made only of whitespace
func notBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// validContentType rejects types outside the closed set
func validContentType(value interface{}) error {
	t, ok := value.(models.ContentType)
	if !ok {
		return errors.New("must be a content type")
	}
	if !t.IsValid() {
		return fmt.Errorf("must be one of %v", models.ContentTypes)
	}
	return nil
}

// validateItem checks a fully populated item before it is written
func validateItem(item *models.ContentItem) error {
	err := validation.ValidateStruct(item,
		validation.Field(&item.Title, titleRules...),
		validation.Field(&item.Institute, groupingKeyRules...),
		validation.Field(&item.Subject, groupingKeyRules...),
		validation.Field(&item.Chapter, groupingKeyRules...),
		validation.Field(&item.Topic, groupingKeyRules...),
		validation.Field(&item.Type, validation.Required, validation.By(validContentType)),
		validation.Field(&item.URL,
			validation.When(item.Type.RequiresURL(), validation.Required),
			validation.Length(1, config.MaxContentURLLength),
			is.URL,
		),
		validation.Field(&item.Body,
			validation.When(item.Type == models.ContentTypeText, validation.Required),
			validation.Length(0, config.MaxContentBodyLength),
		),
	)
	return toValidationError(err)
}

// validateOrderedIDs checks a reorder payload against the topic's current items.
// Malformed payloads are validation errors; ids that no longer match the
// topic's items mean the caller's view is stale and yield a ConflictError.
func validateOrderedIDs(path models.TopicPath, ids []string, current []models.ContentItem) error {
	err := validation.Validate(ids,
		validation.Required,
		validation.Length(1, config.MaxTopicItems),
		validation.Each(validation.Required),
	)
	if err != nil {
		return toValidationError(validation.Errors{"ids": err})
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fieldError("ids", fmt.Sprintf("%s is listed more than once", id))
		}
		seen[id] = true
	}

	known := make(map[string]bool, len(current))
	for i := range current {
		known[current[i].ID] = true
	}

	for _, id := range ids {
		if !known[id] {
			return topicConflict(path, fmt.Sprintf("%s is no longer in this topic", id))
		}
	}
	if len(ids) != len(current) {
		return topicConflict(path, fmt.Sprintf("topic has %d items, got %d ids", len(current), len(ids)))
	}
	return nil
}

func topicConflict(path models.TopicPath, message string) error {
	return &domain.ConflictError{
		Message:      message,
		ResourceType: "topic",
		ResourceID:   TopicNodeID(path),
	}
}

func validatePath(path *models.TopicPath) error {
	err := validation.ValidateStruct(path,
		validation.Field(&path.Institute, groupingKeyRules...),
		validation.Field(&path.Subject, groupingKeyRules...),
		validation.Field(&path.Chapter, groupingKeyRules...),
		validation.Field(&path.Topic, groupingKeyRules...),
	)
	return toValidationError(err)
}

func fieldError(field, message string) error {
	return &domain.ValidationError{
		Message: fmt.Sprintf("%s: %s", field, message),
		Fields:  map[string]string{field: message},
	}
}

// toValidationError converts ozzo errors to a domain validation error
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for name, fieldErr := range fieldErrs {
		fields[name] = fieldErr.Error()
	}
	return &domain.ValidationError{
		Message: fieldErrs.Error(),
		Fields:  fields,
	}
}
