package prompt

import (
	"errors"

	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"

	"github.com/bitrise-client/bitrise-client/errs"
)

// ReadSecretStringFromUser can be used to read a value from the user by masking their input.
// It's useful for token input in our case.
func ReadSecretStringFromUser(message string) (string, error) {
	input := textinput.New(message)
	input.Hidden = true
	secret, err := input.RunPrompt()
	if err != nil {
		return "", cancelled(err)
	}
	return secret, nil
}

// ReadStringFromUser can be used to read any value from the user or the defaultValue when provided.
func ReadStringFromUser(message string, defaultValue string) (string, error) {
	input := textinput.New(message)
	input.Placeholder = defaultValue
	input.InitialValue = defaultValue
	input.Validate = func(s string) error { return nil }

	result, err := input.RunPrompt()
	if err != nil {
		return "", cancelled(err)
	}
	return result, nil
}

// AskUserToConfirm will prompt the user to confirm with the provided message.
func AskUserToConfirm(message string) bool {
	input := confirmation.New(message, confirmation.No)
	result, err := input.RunPrompt()
	return err == nil && result
}

// SelectFromList shows a single-choice picker and returns the chosen entry.
// Dismissing the picker returns an error matching errs.ErrCancelled.
func SelectFromList(message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errs.Cancelled("nothing to select")
	}

	sp := selection.New(message, choices)
	sp.PageSize = 10

	choice, err := sp.RunPrompt()
	if err != nil {
		return "", cancelled(err)
	}
	return choice, nil
}

func cancelled(err error) error {
	if errors.Is(err, promptkit.ErrAborted) {
		return errs.Cancelled(err.Error())
	}
	return err
}
