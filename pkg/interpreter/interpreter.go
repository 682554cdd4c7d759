package interpreter

import (
	"context"
	"errors"
	"strings"
)

// Intent is the classified purpose of a spoken command.
type Intent string

const (
	IntentSetField   Intent = "set_field"
	IntentFocusField Intent = "focus_field"
	IntentSubmitForm Intent = "submit_form"
	IntentResetForm  Intent = "reset_form"
	IntentHelp       Intent = "help"
	IntentUnknown    Intent = "unknown"
)

var knownIntents = map[Intent]bool{
	IntentSetField:   true,
	IntentFocusField: true,
	IntentSubmitForm: true,
	IntentResetForm:  true,
	IntentHelp:       true,
	IntentUnknown:    true,
}

// Extraction is what field-level operations hand back: proposed field updates
// plus a spoken confirmation line.
type Extraction struct {
	FieldUpdates map[string]string `json:"field_updates"`
	Confirmation string            `json:"confirmation"`
}

var (
	// ErrMalformedResponse means the model's answer was not well-formed JSON
	// even after stripping code fences and trailing commas.
	ErrMalformedResponse = errors.New("malformed interpreter response")
	// ErrInvalidAccount means an extracted recipientAccount failed the
	// 8-20 digit pattern. Never retried.
	ErrInvalidAccount = errors.New("extracted account number is invalid")
	// ErrUnknownField means the focus target was not a recognizable form field.
	ErrUnknownField = errors.New("no recognizable field in command")
)

// IInterpreter is the capability set any backing provider must satisfy.
// Implementations perform a single outbound call per invocation; retry policy
// belongs to the caller.
type IInterpreter interface {
	ClassifyIntent(ctx context.Context, command string) (Intent, error)
	ExtractFields(ctx context.Context, command string) (*Extraction, error)
	FocusField(ctx context.Context, command string, currentState map[string]string) (*Extraction, error)
}

// textModel is the narrow provider surface: one prompt in, raw text out.
type textModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type client struct {
	model textModel
}

func (c *client) ClassifyIntent(ctx context.Context, command string) (Intent, error) {
	raw, err := c.model.Generate(ctx, intentClassificationPrompt(command))
	if err != nil {
		return "", err
	}

	tag := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if !knownIntents[tag] {
		return IntentUnknown, nil
	}
	return tag, nil
}

func (c *client) ExtractFields(ctx context.Context, command string) (*Extraction, error) {
	raw, err := c.model.Generate(ctx, fieldExtractionPrompt(command))
	if err != nil {
		return nil, err
	}

	updates, err := parseFieldUpdates(raw)
	if err != nil {
		return nil, err
	}

	if err := normalizeFieldUpdates(updates); err != nil {
		return nil, err
	}

	return &Extraction{
		FieldUpdates: updates,
		Confirmation: generateConfirmation(updates),
	}, nil
}

func (c *client) FocusField(ctx context.Context, command string, currentState map[string]string) (*Extraction, error) {
	raw, err := c.model.Generate(ctx, focusFieldPrompt(command))
	if err != nil {
		return nil, err
	}

	field := strings.TrimSpace(raw)
	if _, known := fieldLabels[field]; !known {
		return nil, ErrUnknownField
	}

	return &Extraction{
		Confirmation: "Editing " + fieldLabels[field],
		FieldUpdates: map[string]string{field: currentState[field]},
	}, nil
}
