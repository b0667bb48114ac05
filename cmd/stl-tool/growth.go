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
	"go.uber.org/zap"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/config"
	"github.com/matrixorigin/stltoys/pkg/container/smallstr"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
	"github.com/matrixorigin/stltoys/pkg/container/vector"
	"github.com/matrixorigin/stltoys/pkg/logutil"
)

func growthCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Push elements one at a time and report how often storage moved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("elements") {
				n, err := cmd.Flags().GetInt("elements")
				if err != nil {
					return err
				}
				cfg.Growth.Elements = n
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, err := runGrowth(cmd.OutOrStdout(), cfg)
			return err
		},
	}
	cmd.Flags().IntP("elements", "n", 0, "number of elements to push")
	return cmd
}

type growthAllocators struct {
	ints  malloc.Allocator[int]
	bytes malloc.Allocator[byte]
}

func newGrowthAllocators(c config.MallocConfig) (growthAllocators, error) {
	ints, err := config.NewAllocator[int](c)
	if err != nil {
		return growthAllocators{}, err
	}
	bytes, err := config.NewAllocator[byte](c)
	if err != nil {
		return growthAllocators{}, err
	}
	return growthAllocators{ints: ints, bytes: bytes}, nil
}

// runGrowth pushes cfg.Growth.Elements values into a vector and a string.
func runGrowth(w io.Writer, cfg *config.Config) (growthAllocators, error) {
	allocs, err := newGrowthAllocators(cfg.Malloc)
	if err != nil {
		return allocs, err
	}
	n := cfg.Growth.Elements

	v := vector.New(allocs.ints)
	defer v.Free()
	vecMoves, last := 0, v.Capacity()
	for i := 0; i < n; i++ {
		if err := v.PushBack(i); err != nil {
			return allocs, err
		}
		if c := v.Capacity(); c != last {
			vecMoves++
			last = c
		}
	}

	s := smallstr.New[traits.Default[byte]](allocs.bytes)
	defer s.Free()
	strMoves, last := 0, s.Capacity()
	for i := 0; i < n; i++ {
		if err := s.PushBack(byte('a' + i%26)); err != nil {
			return allocs, err
		}
		if c := s.Capacity(); c != last {
			strMoves++
			last = c
		}
	}

	logutil.Info("growth finished",
		zap.String("allocator", cfg.Malloc.Allocator),
		zap.Int("elements", n),
		zap.Int("vector-reallocations", vecMoves),
		zap.Int("string-reallocations", strMoves),
	)
	fmt.Fprintf(w, "vector: %d elements, capacity %d, %d reallocations\n", v.Len(), v.Capacity(), vecMoves)
	fmt.Fprintf(w, "string: %d characters, capacity %d, %d reallocations\n", s.Len(), s.Capacity(), strMoves)
	return allocs, nil
}
