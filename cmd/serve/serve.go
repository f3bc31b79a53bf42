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

package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/log"
	"github.com/lightshow/go-fseq/pkg/srv"
	"github.com/lightshow/go-fseq/pkg/state"
)

const (
	AddressOptionName   = "address"
	PortOptionName      = "port"
	NoHistoryOptionName = "no-history"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var port int
	var noHistory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the validation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.Address = address
			}
			if port != 0 {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var st *state.State
			if !noHistory {
				var err error
				st, err = state.NewState(cfg.DBPath())
				if err != nil {
					return err
				}
				defer st.Close()
				log.Info("Recording validations in %s", cfg.DBPath())
			}
			return srv.NewApiServer(ctx, cfg, st).Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().BoolVar(&noHistory, NoHistoryOptionName, false, "Do not record validations")
	return cmd
}
