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
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/noel2004/ceno/pkg/ir"
	"github.com/noel2004/ceno/pkg/util/field"
)

// KEYFILE_MAJOR_VERSION gives the major version of the key file format.  No
// matter what version, we should always have the ZKVMKEYS identifier first,
// followed by the version numbers.  What follows after that, however, is
// determined by the major version.
const KEYFILE_MAJOR_VERSION uint16 = 1

// KEYFILE_MINOR_VERSION gives the minor version of the key file format.
// The expected interpretation is that older versions are compatible with
// newer ones, but not vice-versa.
const KEYFILE_MINOR_VERSION uint16 = 0

// ZKVMKEYS is used as the file identifier for persisted proving key sets.
// This just helps us identify actual key files from corrupted files.
var ZKVMKEYS [8]byte = [8]byte{'Z', 'K', 'V', 'M', 'K', 'E', 'Y', 'S'}

// IsKeyFile checks whether the given data begins with the expected
// "ZKVMKEYS" identifier.
func IsKeyFile(data []byte) bool {
	var zkvmkeys [8]byte
	//
	if _, err := bytes.NewBuffer(data).Read(zkvmkeys[:]); err != nil {
		return false
	}
	// Check whether header identified
	return zkvmkeys == ZKVMKEYS
}

// keyFile is the gob-encoded payload of a persisted proving key set.  Names
// and keys are parallel slices in lexicographic name order, meaning
// identical registrations always serialize identically.
type keyFile[F field.Element[F]] struct {
	Names []string
	Keys  []ProvingKey[F]
}

// MarshalBinary converts this proving key set into a sequence of bytes,
// framed by the ZKVMKEYS identifier and format version.
func (p *ZKVMProvingKey[F]) MarshalBinary() ([]byte, error) {
	var (
		buffer       bytes.Buffer
		versionBytes [4]byte
		payload      keyFile[F]
	)
	// Expression variants travel behind the Expr interface.
	registerExprTypes[F]()
	// Write identifier
	buffer.Write(ZKVMKEYS[:])
	// Write major / minor version
	binary.BigEndian.PutUint16(versionBytes[0:2], KEYFILE_MAJOR_VERSION)
	binary.BigEndian.PutUint16(versionBytes[2:4], KEYFILE_MINOR_VERSION)
	buffer.Write(versionBytes[:])
	// Flatten keys in name order
	for _, name := range p.keys.Keys() {
		pk, _ := p.keys.Get(name)
		payload.Names = append(payload.Names, name)
		payload.Keys = append(payload.Keys, pk)
	}
	// Encode payload
	if err := gob.NewEncoder(&buffer).Encode(&payload); err != nil {
		return nil, err
	}
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this proving key set from a given set of data
// bytes.  This should match exactly the encoding above.
func (p *ZKVMProvingKey[F]) UnmarshalBinary(data []byte) error {
	var (
		buffer       = bytes.NewBuffer(data)
		zkvmkeys     [8]byte
		versionBytes [4]byte
		payload      keyFile[F]
	)
	//
	registerExprTypes[F]()
	// Read identifier
	if n, err := buffer.Read(zkvmkeys[:]); err != nil || n != 8 {
		return errors.New("malformed key file")
	} else if zkvmkeys != ZKVMKEYS {
		return errors.New("not a key file")
	}
	// Read major / minor version
	if n, err := buffer.Read(versionBytes[:]); err != nil || n != 4 {
		return errors.New("malformed key file")
	}
	//
	var (
		major = binary.BigEndian.Uint16(versionBytes[0:2])
		minor = binary.BigEndian.Uint16(versionBytes[2:4])
	)
	//
	if major != KEYFILE_MAJOR_VERSION || minor > KEYFILE_MINOR_VERSION {
		return fmt.Errorf("incompatible key file (was v%d.%d, but expected v%d.%d)",
			major, minor, KEYFILE_MAJOR_VERSION, KEYFILE_MINOR_VERSION)
	}
	// Decode payload
	if err := gob.NewDecoder(buffer).Decode(&payload); err != nil {
		return err
	} else if len(payload.Names) != len(payload.Keys) {
		return errors.New("malformed key file")
	}
	// Rebuild the ordered key set
	keys := newZKVMProvingKey[F]()
	//
	for i, name := range payload.Names {
		if !keys.keys.Insert(name, payload.Keys[i]) {
			return errors.New("malformed key file")
		}
	}
	//
	*p = *keys
	// Done
	return nil
}

// registerExprTypes registers every expression variant with gob, allowing
// constraints to travel behind the Expr interface.  Registration is
// idempotent for a fixed field, so calling this before every encode and
// decode is harmless.
func registerExprTypes[F field.Element[F]]() {
	gob.Register(ir.Expr[F](&ir.Add[F]{}))
	gob.Register(ir.Expr[F](&ir.Sub[F]{}))
	gob.Register(ir.Expr[F](&ir.Mul[F]{}))
	gob.Register(ir.Expr[F](&ir.Constant[F]{}))
	gob.Register(ir.Expr[F](&ir.WitnessAccess[F]{}))
	gob.Register(ir.Expr[F](&ir.FixedAccess[F]{}))
	gob.Register(ir.Expr[F](&ir.ChallengeAccess[F]{}))
}
