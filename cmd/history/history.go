/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package history

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lightshow/go-fseq/pkg/command"
	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/report"
	"github.com/lightshow/go-fseq/pkg/state"
)

const (
	RemoteOptionName = "remote"
	OutputOptionName = "output"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored validation results",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewShowCommand(cfg))
	cmd.AddCommand(NewClearCommand(cfg))
	return cmd
}

// WriteRecords prints one line per record
func WriteRecords(out io.Writer, records []*state.Record) {
	for _, r := range records {
		status := r.Error
		if r.Results != nil {
			status = fmt.Sprintf("%.2f%% memory, %d frames", r.Results.MemoryUsage*100, r.Results.FrameCount)
		}
		checksum := r.Checksum
		if len(checksum) > 12 {
			checksum = checksum[:12]
		}
		fmt.Fprintf(out, "%s  %s  exit %d  %s: %s\n",
			r.Timestamp.Local().Format(time.RFC3339), checksum, r.ExitCode, r.Name, status)
	}
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored validation results, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []*state.Record
			var err error
			if remote {
				records, err = command.NewApiClient(cfg).History()
			} else {
				records, err = listLocal(cfg)
			}
			if err != nil {
				return err
			}
			WriteRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "List the history of the API server instead of the local one")
	return cmd
}

func listLocal(cfg *config.Config) ([]*state.Record, error) {
	st, err := state.NewState(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.List()
}

func NewShowCommand(cfg *config.Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show <checksum>",
		Short: "Show the report of a stored validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := state.NewState(cfg.DBPath())
			if err != nil {
				return err
			}
			defer st.Close()
			r, err := st.Get(args[0])
			if err != nil {
				return err
			}
			var validationErr error
			if r.Error != "" {
				validationErr = errors.New(r.Error)
			}
			if output == "" {
				output = cfg.Output
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			return report.NewWriter(cmd.OutOrStdout(), format).Write(r.Name, r.Results, validationErr)
		},
	}
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "", fmt.Sprintf("Output format. %s", report.HelpFormats))
	return cmd
}

func NewClearCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored validation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := state.NewState(cfg.DBPath())
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Clear()
		},
	}
	return cmd
}
