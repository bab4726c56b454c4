// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package zkvm

import (
	"fmt"

	"github.com/noel2004/ceno/pkg/emulator"
	"github.com/noel2004/ceno/pkg/trace"
	"github.com/noel2004/ceno/pkg/util"
	"github.com/noel2004/ceno/pkg/util/field"
)

// AssignmentBuilder configures how opcode circuit assignment turns a
// sequence of execution steps into witness rows.
type AssignmentBuilder[F field.Element[F]] struct {
	// Determines whether or not rows are assigned in concurrently executing
	// batches.  This should be the default, but a sequential option is
	// retained for debugging purposes.
	parallel bool
	// Specify the maximum number of rows assigned per batch.
	batchSize uint
}

// NewAssignmentBuilder constructs a default assignment builder.  The idea
// is that this could then be customized as needed following the builder
// pattern.
func NewAssignmentBuilder[F field.Element[F]]() AssignmentBuilder[F] {
	return AssignmentBuilder[F]{true, 1024}
}

// Parallel updates a given builder configuration to assign rows
// concurrently (or not).
func (ab AssignmentBuilder[F]) Parallel(flag bool) AssignmentBuilder[F] {
	nab := ab
	nab.parallel = flag
	//
	return nab
}

// BatchSize updates a given builder configuration to assign (at most) a
// given number of rows per batch.
func (ab AssignmentBuilder[F]) BatchSize(batchSize uint) AssignmentBuilder[F] {
	nab := ab
	nab.batchSize = batchSize
	//
	return nab
}

// rowBatch is the result of assigning one batch of rows: the lookup
// multiplicity those rows imply, or the first error encountered.
type rowBatch struct {
	mlt *trace.Multiplicity
	err error
}

// assignSteps fills one row of the given matrix per execution step,
// returning the lookup multiplicity of the whole matrix.  Batches of rows
// are dispatched to concurrently executing goroutines when the builder is
// configured for it; each batch writes a disjoint stripe of rows, so the
// only synchronisation required is collecting the per-batch multiplicities.
func assignSteps[F field.Element[F], C any](builder AssignmentBuilder[F],
	circuit OpcodeCircuit[F, C], config C, matrix trace.RowMajorMatrix[F],
	steps []emulator.StepRecord) (*trace.Multiplicity, error) {
	//
	stats := util.NewPerfStats()
	defer stats.Log(fmt.Sprintf("Assigning %d rows of %s", len(steps), circuit.Name()))
	// Sanity check batch size
	batchSize := int(builder.batchSize)
	if batchSize == 0 {
		batchSize = 1
	}
	// Fall back to a single batch when parallelism buys nothing.
	if !builder.parallel || len(steps) <= batchSize {
		mlt := trace.NewMultiplicity()
		//
		for i := 0; i < len(steps); i++ {
			if err := circuit.AssignInstance(config, matrix.Row(uint(i)), mlt, steps[i]); err != nil {
				return nil, err
			}
		}
		//
		return mlt, nil
	}
	// Construct a communication channel for batch results.
	ch := make(chan rowBatch, 1024)
	// Dispatch batches
	nbatches := 0
	//
	for start := 0; start < len(steps); start += batchSize {
		end := start + batchSize
		if end > len(steps) {
			end = len(steps)
		}
		//
		nbatches++
		//
		go func(start, end int) {
			mlt := trace.NewMultiplicity()
			//
			for i := start; i < end; i++ {
				if err := circuit.AssignInstance(config, matrix.Row(uint(i)), mlt, steps[i]); err != nil {
					ch <- rowBatch{nil, err}
					return
				}
			}
			//
			ch <- rowBatch{mlt, nil}
		}(start, end)
	}
	// Collect and merge all the results
	var (
		combined = trace.NewMultiplicity()
		err      error
	)
	//
	for i := 0; i < nbatches; i++ {
		res := <-ch
		//
		if res.err != nil && err == nil {
			err = res.err
		} else if res.err == nil {
			combined.Merge(res.mlt)
		}
	}
	//
	if err != nil {
		return nil, err
	}
	//
	return combined, nil
}
