package namehash

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Hash computes the canonical ENS namehash for a dotted name. The empty name
// maps to the zero hash. The result must match the on-chain algorithm
// byte-for-byte since it is used as the node argument of contract calls.
func Hash(name string) common.Hash {
	if name == "" {
		return common.Hash{}
	}
	labels := strings.Split(name, ".")
	labelHash := crypto.Keccak256([]byte(labels[len(labels)-1]))
	remainderHash := Hash(strings.Join(labels[:len(labels)-1], ".")).Bytes()
	return crypto.Keccak256Hash(append(remainderHash, labelHash...))
}

// ReverseNode computes the node used for reverse (address to name) lookups:
// the namehash of "{lowercase-hex-address-without-0x}.addr.reverse".
func ReverseNode(addr common.Address) common.Hash {
	hexAddr := strings.ToLower(strings.TrimPrefix(addr.Hex(), "0x"))
	return Hash(hexAddr + ".addr.reverse")
}
