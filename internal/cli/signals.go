package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtop/internal/platform"
	"github.com/rileyhilliard/rtop/internal/ui"
	"github.com/spf13/cobra"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List the signal ids accepted by the send-signal popup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSignals(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}

// listSignals prints every id in the accepted range with its signal name.
func listSignals(out io.Writer) error {
	var (
		rows       [][]string
		unresolved []string
	)
	for id := platform.MinSignalID; id <= platform.MaxSignalID; id++ {
		sig := platform.SignalFromID(id)
		if !sig.Resolved() {
			unresolved = append(unresolved, strconv.Itoa(id))
			continue
		}
		rows = append(rows, []string{strconv.Itoa(id), sig.String()})
	}

	fmt.Fprintln(out, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "ID", Width: 4},
		{Title: "Signal", Width: 10},
	}, rows))
	if len(unresolved) > 0 {
		fmt.Fprintln(out, ui.MutedStyle().Render(
			fmt.Sprintf("ids %s have no portable signal and can't be sent", strings.Join(unresolved, ", "))))
	}
	return nil
}
