package conformance

import (
	"bytes"
	"fmt"

	"github.com/MixinNetwork/merlin/keccak"
	"golang.org/x/crypto/sha3"
)

const shake128Rate = 168

// CheckPermutation iterates keccak.State.Permute from the padded SHAKE128
// absorb state of seed and compares every iterate's rate bytes with the
// SHAKE128 output stream of golang.org/x/crypto/sha3. Only the 168 rate bytes
// are visible in the stream; an error confined to the capacity lanes shows up
// one iterate later.
func CheckPermutation(seed []byte, iterations int) error {
	if len(seed) >= shake128Rate {
		return fmt.Errorf("CheckPermutation seed of %d bytes does not fit one block", len(seed))
	}

	var st keccak.State
	st.XorBytes(seed)
	st.XorByte(len(seed), 0x1f)
	st.XorByte(shake128Rate-1, 0x80)

	shake := sha3.NewShake128()
	shake.Write(seed)

	want := make([]byte, shake128Rate)
	for i := 0; i < iterations; i++ {
		st.Permute()
		if _, err := shake.Read(want); err != nil {
			return err
		}
		got := st.Bytes()
		if !bytes.Equal(got[:shake128Rate], want) {
			return fmt.Errorf("%w: permutation iterate %d got %x want %x", ErrMismatch, i+1, got[:shake128Rate], want)
		}
	}
	return nil
}
