// Package crc8 implements the CRC-8 variant used to protect FLAC frame
// headers: polynomial 0x07, initial value 0x00, no input or output
// reflection, no final xor.
package crc8

import "github.com/CartoonFan/flake/internal/hashutil"

// Size is the size, in bytes, of a CRC-8 checksum.
const Size = 1

const poly = 0x07

var table [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		crc := uint8(i)
		for b := 0; b < 8; b++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
}

type digest struct {
	crc uint8
}

// NewATM returns a new hashutil.Hash8 computing the CRC-8 used for FLAC frame
// headers (so named after the table-driven "ATM" CRC-8 variant it matches:
// poly 0x07, no reflection, no xor-out).
func NewATM() hashutil.Hash8 {
	return &digest{}
}

func (d *digest) Write(p []byte) (int, error) {
	crc := d.crc
	for _, b := range p {
		crc = table[crc^b]
	}
	d.crc = crc
	return len(p), nil
}

func (d *digest) Sum(in []byte) []byte {
	return append(in, d.crc)
}

func (d *digest) Sum8() uint8    { return d.crc }
func (d *digest) Reset()         { d.crc = 0 }
func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return 1 }
