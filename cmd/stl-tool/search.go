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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/stltoys/pkg/config"
	"github.com/matrixorigin/stltoys/pkg/container/smallstr"
	"github.com/matrixorigin/stltoys/pkg/container/strview"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

func searchCommand(cfg *config.Config) *cobra.Command {
	var fold bool
	cmd := &cobra.Command{
		Use:   "search <text> <pattern>",
		Short: "Report where pattern occurs in text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fold {
				return runSearch[traits.ASCIIFold[byte]](cmd.OutOrStdout(), cfg, args[0], args[1])
			}
			return runSearch[traits.Default[byte]](cmd.OutOrStdout(), cfg, args[0], args[1])
		},
	}
	cmd.Flags().BoolVarP(&fold, "fold", "i", false, "ignore ASCII case")
	return cmd
}

func runSearch[Tr traits.Traits[byte]](w io.Writer, cfg *config.Config, text, pattern string) error {
	alloc, err := config.NewAllocator[byte](cfg.Malloc)
	if err != nil {
		return err
	}
	s, err := smallstr.FromView(strview.FromString[Tr, byte](text), alloc)
	if err != nil {
		return err
	}
	defer s.Free()
	p := strview.FromString[Tr, byte](pattern)

	var hits []int
	for pos := s.Find(p, 0); pos != smallstr.NPos; pos = s.Find(p, pos+1) {
		hits = append(hits, pos)
	}
	fmt.Fprintf(w, "find: %d\n", s.Find(p, 0))
	fmt.Fprintf(w, "rfind: %d\n", s.RFind(p, smallstr.NPos))
	fmt.Fprintf(w, "occurrences: %v\n", hits)
	return nil
}
