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

package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/fseq"
	"github.com/lightshow/go-fseq/pkg/log"
	"github.com/lightshow/go-fseq/pkg/report"
	"github.com/lightshow/go-fseq/pkg/state"
)

const (
	OutputOptionName = "output"
	RecordOptionName = "record"
)

type Options struct {
	Output string
	Record bool
}

// AddFlags registers the validation flags on a flag set
func AddFlags(flags *pflag.FlagSet, opts *Options) {
	flags.StringVarP(&opts.Output, OutputOptionName, "o", "", fmt.Sprintf("Output format. %s", report.HelpFormats))
	flags.BoolVar(&opts.Record, RecordOptionName, false, "Store the result in the history database")
}

func NewCommand(cfg *config.Config) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a sequence and report its memory usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, cfg, args[0], opts)
		},
	}
	AddFlags(cmd.Flags(), opts)
	return cmd
}

// Run validates a file and prints the report. It returns report.ErrExit when
// the sequence is invalid or does not fit into memory.
func Run(cmd *cobra.Command, cfg *config.Config, path string, opts *Options) error {
	output := cfg.Output
	if opts.Output != "" {
		output = opts.Output
	}
	format, err := report.ParseFormat(output)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	log.Info("Validating %s", path)
	res, validationErr := fseq.Validate(file)
	if validationErr != nil && !fseq.IsValidationError(validationErr) {
		return validationErr
	}

	if opts.Record || cfg.Record {
		if err := record(cfg, path, file, res, validationErr); err != nil {
			log.Warning("Could not record validation of %s: %s", path, err)
		}
	}

	err = report.NewWriter(cmd.OutOrStdout(), format).Write(filepath.Base(path), res, validationErr)
	if err != nil {
		return err
	}
	if code := report.ExitCode(res, validationErr); code != 0 {
		return report.ErrExit{Code: code}
	}
	return nil
}

func record(cfg *config.Config, path string, file io.ReadSeeker, res *fseq.ValidationResults, validationErr error) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	checksum, err := state.Checksum(file)
	if err != nil {
		return err
	}
	st, err := state.NewState(cfg.DBPath())
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Put(state.NewRecord(filepath.Base(path), checksum, res, validationErr))
}
