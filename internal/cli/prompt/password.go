package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrPasswordMismatch indicates the password and confirmation differ.
var ErrPasswordMismatch = fmt.Errorf("passwords do not match")

// Password prompts for a masked password input. When stdin is not a
// terminal (piped input, scripts) it falls back to reading a plain line.
func Password(label string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return readLine(label)
	}

	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}

	result, err := prompt.Run()
	return result, wrapError(err)
}

// PasswordWithValidation prompts for a password with minimum length
// validation.
func PasswordWithValidation(label string, minLength int) (string, error) {
	validate := func(input string) error {
		if len(input) < minLength {
			return fmt.Errorf("password must be at least %d characters", minLength)
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		result, err := readLine(label)
		if err != nil {
			return "", err
		}
		if err := validate(result); err != nil {
			return "", err
		}
		return result, nil
	}

	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: validate,
	}

	result, err := prompt.Run()
	return result, wrapError(err)
}

// NewPassword prompts for a new password with confirmation.
// Returns ErrPasswordMismatch if the two entries differ.
func NewPassword() (string, error) {
	password, err := PasswordWithValidation("Password", 8)
	if err != nil {
		return "", err
	}

	confirm, err := Password("Confirm password")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", ErrPasswordMismatch
	}

	return password, nil
}

func readLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
