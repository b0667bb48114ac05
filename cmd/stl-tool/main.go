// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/stltoys/pkg/config"
	"github.com/matrixorigin/stltoys/pkg/logutil"
)

func newRootCommand() *cobra.Command {
	var configPath string
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "stl-tool",
		Short:         "Exercise the containers against a configured allocator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				*cfg = *loaded
			}
			logutil.SetupLogger(&cfg.Log)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path of a TOML configuration file")

	root.AddCommand(growthCommand(cfg))
	root.AddCommand(metricsCommand(cfg))
	root.AddCommand(searchCommand(cfg))
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logutil.Errorf("stl-tool failed: %v", err)
		os.Exit(1)
	}
}
