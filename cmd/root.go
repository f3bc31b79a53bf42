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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lightshow/go-fseq/cmd/completion"
	"github.com/lightshow/go-fseq/cmd/config"
	"github.com/lightshow/go-fseq/cmd/history"
	"github.com/lightshow/go-fseq/cmd/remote"
	"github.com/lightshow/go-fseq/cmd/sample"
	"github.com/lightshow/go-fseq/cmd/serve"
	"github.com/lightshow/go-fseq/cmd/validate"
	pkgconfig "github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"
)

// NewRootCommand builds the command tree. Given a file and no subcommand the
// root command validates it.
func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	opts := &validate.Options{}
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:   "go-fseq [file]",
		Short: "Tool to validate FSEQ v2.0 light show sequences",
		Long: `Tool to validate FSEQ v2.0 light show sequences.

Given a file and no subcommand, go-fseq validates the file. A file named like
a subcommand (history, config, sample, ...) runs that subcommand instead, so
use "go-fseq validate <file>" in scripts.`,
		Example:       "  go-fseq validate show.fseq\n  go-fseq show.fseq -o json",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg.SetFilepath(configPath)
			}
			if err := cfg.Load(); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return validate.Run(cmd, cfg, args[0], opts)
		},
	}
	cmd.SetOut(out)
	validate.AddFlags(cmd.Flags(), opts)
	cmd.AddCommand(validate.NewCommand(cfg))
	cmd.AddCommand(history.NewCommand(cfg))
	cmd.AddCommand(serve.NewCommand(cfg))
	cmd.AddCommand(remote.NewCommand(cfg))
	cmd.AddCommand(sample.NewCommand())
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, "", fmt.Sprintf("Config file. Default %s", pkgconfig.DefaultConfigPath()))
	return cmd
}
