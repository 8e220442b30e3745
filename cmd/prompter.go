package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/pathfinder/internal/ikigai"
)

const maxSelectSize = 10

// terminalPrompter asks questions on the terminal with promptui.
type terminalPrompter struct{}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	size := len(items)
	if size > maxSelectSize {
		size = maxSelectSize
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  size,
	}
	idx, _, err := prompt.Run()
	return idx, err
}

func (terminalPrompter) Rate(label string, scale ikigai.Scale, current int) (int, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s (%d-%d)", label, scale.Min, scale.Max),
		Default:   strconv.Itoa(current),
		AllowEdit: true,
		Validate:  validateRating(scale),
	}

	out, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(out))
}

func (terminalPrompter) Text(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	out, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func validateRating(scale ikigai.Scale) promptui.ValidateFunc {
	return func(input string) error {
		value, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if value < scale.Min || value > scale.Max {
			return fmt.Errorf("enter a value between %d and %d", scale.Min, scale.Max)
		}
		return nil
	}
}
