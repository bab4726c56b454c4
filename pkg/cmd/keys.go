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

var keysCmd = &cobra.Command{
	Use:   "keys [flags]",
	Short: "generate proving keys for the built-in circuit set.",
	Long: `Generate the proving key of every built-in circuit, pairing its
	constraint system with its fixed trace, and write the result as a single
	key file which can be subsequently inspected or consumed without
	re-registering the circuits.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		output := GetString(cmd, "output")
		systems, fixed := registerBuiltins()
		// Pair every constraint system with its fixed trace
		keys, err := systems.KeyGen(fixed)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Serialise as a gob file.
		writeKeyFile(keys, output)
		//
		fmt.Printf("Wrote %d proving keys to %s\n", len(keys.Names()), output)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().StringP("output", "o", "ceno.keys", "specify output file.")
}
