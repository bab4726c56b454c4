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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] key_file",
	Short: "print the contents of a proving key file.",
	Long: `Print the circuits recorded in a given proving key file, along
	with their fixed trace dimensions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		keys := readKeyFile[element](args[0])
		//
		for _, name := range keys.Names() {
			pk, _ := keys.ProvingKey(name)
			cs := pk.Vk.Cs
			//
			fmt.Printf("%s: %d witness cells, %d constraints, %d lookups", cs.Name,
				cs.NumWitIn, len(cs.Constraints), len(cs.Lookups))
			//
			if pk.FixedTrace != nil {
				fmt.Printf(", %d x %d fixed trace", pk.FixedTrace.NumRows(), pk.FixedTrace.NumCols())
			}
			//
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
