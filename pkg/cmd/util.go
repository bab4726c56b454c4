package cmd

import (
	"fmt"
	"os"

	"github.com/noel2004/ceno/pkg/riscv"
	"github.com/noel2004/ceno/pkg/util/field"
	"github.com/noel2004/ceno/pkg/zkvm"
	"github.com/spf13/cobra"
)

// GetFlag returns an expected boolean flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString returns an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Construct the full built-in circuit set, exiting on any construction
// failure.
func registerBuiltins() (*zkvm.ConstraintSystemSet[element], *zkvm.FixedTraceSet[element]) {
	systems := zkvm.NewConstraintSystemSet[element]()
	fixed := zkvm.NewFixedTraceSet[element]()
	//
	if err := riscv.RegisterAll(systems, fixed); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return systems, fixed
}

// Read and decode a proving key file, exiting on any failure.
func readKeyFile[F field.Element[F]](filename string) *zkvm.ZKVMProvingKey[F] {
	var keys zkvm.ZKVMProvingKey[F]
	// Read key file
	data, err := os.ReadFile(filename)
	// Handle errors
	if err == nil {
		err = keys.UnmarshalBinary(data)
	}
	// Return if no errors
	if err == nil {
		return &keys
	}
	// Handle error & exit
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Encode and write a proving key file, exiting on any failure.
func writeKeyFile[F field.Element[F]](keys *zkvm.ZKVMProvingKey[F], filename string) {
	data, err := keys.MarshalBinary()
	//
	if err == nil {
		err = os.WriteFile(filename, data, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
