package cmd

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const yesFlagName = "yes"

// confirmFunc is replaced in tests
var confirmFunc = confirm

func confirm(question string) (bool, error) {
	prm := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
	}
	_, err := prm.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// mustConfirm asks before a destructive operation. It never prompts with
// --yes or when stdin is not an interactive terminal. Disabling colors does
// not skip the prompt.
func mustConfirm(cmd *cobra.Command, question string) {
	if Must(cmd.Flags().GetBool(yesFlagName)) || !isInteractive {
		return
	}
	confirmed, err := confirmFunc(question)
	if err != nil {
		DieErr(err)
	}
	if !confirmed {
		Die("Aborted", 1)
	}
}
