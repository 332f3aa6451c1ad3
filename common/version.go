// Copyright (c) 2017-2019 The qitmeer developers
//
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package common

import (
	"encoding/binary"
)

// BlockVersionMask masks a block version word down to its low 16 bits,
// the convention the era-tagged consensus fields ride on.
func BlockVersionMask(blockVersion uint32) uint32 {
	b := make([]byte, 4)
	newVersionData := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, blockVersion)
	copy(newVersionData[:2], b[:2])
	return binary.LittleEndian.Uint32(newVersionData)
}
