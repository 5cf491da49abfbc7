// Package pow implements the proof of work puzzle used to extend the
// blockchain and the check any node can run to verify a solution.
package pow

import (
	"context"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// DefaultDifficulty is the number of leading zeros a solution hash needs
// when no other value has been configured.
const DefaultDifficulty uint = 4

// checkInterval is how many attempts are made between checks for a
// cancelled context and progress events.
const checkInterval = 100_000

// =============================================================================

// Search finds the smallest proof, starting from zero, that solves the puzzle
// for the previous proof at the specified difficulty. The search can be
// cancelled through the context.
func Search(ctx context.Context, prevProof uint64, difficulty uint, ev func(v string, args ...any)) (uint64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: Search: MINING: started: prevProof[%d]: difficulty[%d]", prevProof, difficulty)
	defer ev("pow: Search: MINING: completed")

	var proof uint64
	for {
		if proof%checkInterval == 0 {
			if proof > 0 {
				ev("pow: Search: MINING: attempts[%d]", proof)
			}

			// Did we timeout trying to solve the problem.
			if ctx.Err() != nil {
				ev("pow: Search: MINING: CANCELLED: attempts[%d]", proof)
				return 0, ctx.Err()
			}
		}

		if Valid(prevProof, proof, difficulty) {
			ev("pow: Search: MINING: SOLVED: prevProof[%d]: proof[%d]", prevProof, proof)
			return proof, nil
		}

		proof++
	}
}

// Valid checks if the proof solves the puzzle for the previous proof. The
// two proofs are concatenated as text and hashed, and the hex digest must
// start with a difficulty number of 0's.
func Valid(prevProof uint64, proof uint64, difficulty uint) bool {
	guess := strconv.AppendUint(nil, prevProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)

	return isHashSolved(difficulty, signature.Digest(guess))
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if difficulty > uint(len(hash)) {
		return false
	}

	for i := range difficulty {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}
