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
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags]",
	Short: "print statistics for the built-in circuit set.",
	Long: `Print summary statistics for every built-in circuit: witness and
	fixed cell counts, along with constraint, lookup and served table counts.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		systems, _ := registerBuiltins()
		//
		fmt.Printf("%-20s %6s %6s %12s %8s %7s\n", "circuit", "witin", "fixed", "constraints", "lookups", "tables")
		//
		for _, name := range systems.Names() {
			cs, _ := systems.ConstraintSystem(name)
			//
			fmt.Printf("%-20s %6d %6d %12d %8d %7d\n", cs.Name, cs.NumWitIn, cs.NumFixed,
				len(cs.Constraints), len(cs.Lookups), len(cs.Tables))
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
