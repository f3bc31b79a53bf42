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

package remote

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lightshow/go-fseq/pkg/command"
	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/report"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	OutputOptionName  = "output"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address, output string
	var port int
	cmd := &cobra.Command{
		Use:   "remote <file>",
		Short: "Validate a sequence on the API server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.Address = address
			}
			if port != 0 {
				cfg.Port = port
			}
			if output == "" {
				output = cfg.Output
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			r, err := command.NewApiClient(cfg).Validate(filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			var validationErr error
			if r.Error != "" {
				validationErr = errors.New(r.Error)
			}
			if err := report.NewWriter(cmd.OutOrStdout(), format).Write(r.Name, r.Results, validationErr); err != nil {
				return err
			}
			if r.ExitCode != 0 {
				return report.ErrExit{Code: r.ExitCode}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Server address. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Server port. E.g. %d", config.DefaultApiPort))
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "", fmt.Sprintf("Output format. %s", report.HelpFormats))
	return cmd
}
