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
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/config"
)

func metricsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Run the growth workload and dump the allocator metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd.OutOrStdout(), cfg)
		},
	}
}

func runMetrics(w io.Writer, cfg *config.Config) error {
	registry := prometheus.NewRegistry()
	if err := malloc.RegisterMetrics(registry); err != nil {
		return err
	}

	c := *cfg
	c.Malloc.Metrics = true
	allocs, err := runGrowth(w, &c)
	if err != nil {
		return err
	}
	for _, a := range []interface{ Flush() }{
		allocs.ints.(*malloc.MetricsAllocator[int]),
		allocs.bytes.(*malloc.MetricsAllocator[byte]),
	} {
		a.Flush()
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
