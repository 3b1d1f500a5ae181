/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/tutorpad/internal/app"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the tutor one question and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asHTML, _ := cmd.Flags().GetBool("html")
		noDelay, _ := cmd.Flags().GetBool("no-delay")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer cleanup()

		question := strings.Join(args, " ")
		var reply string
		if noDelay {
			if strings.TrimSpace(question) == "" {
				return fmt.Errorf("ask: question must not be empty")
			}
			reply = container.Dispatcher.Respond(question, container.Tutor.Level().Label)
		} else {
			msg, err := container.Tutor.Ask(cmd.Context(), question).Wait(cmd.Context())
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			reply = msg.Content
		}

		if asHTML {
			reply = feedback.RenderHTML(reply)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().Bool("html", false, "render the reply as HTML")
	askCmd.Flags().Bool("no-delay", false, "answer immediately instead of waiting feedback.reply_delay")
}
