// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Genesis represents the genesis file.
type Genesis struct {
	PrevHash     string  `json:"previous_hash"` // Sentinel used as the previous hash of the first block.
	Proof        uint64  `json:"proof"`         // Well known proof of the first block.
	Difficulty   uint    `json:"difficulty"`    // How difficult it needs to be to solve the work problem.
	MiningReward float64 `json:"mining_reward"` // Reward for mining a block.
}

// Default returns the genesis values every node agrees on when no genesis
// file is provided.
func Default() Genesis {
	return Genesis{
		PrevHash:     "1",
		Proof:        100,
		Difficulty:   pow.DefaultDifficulty,
		MiningReward: 1,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file
// keep their default. An empty path returns the defaults.
func Load(path string) (Genesis, error) {
	genesis := Default()
	if path == "" {
		return genesis, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("parsing genesis file %s: %w", path, err)
	}

	if genesis.PrevHash == "" {
		return Genesis{}, fmt.Errorf("genesis file %s: previous_hash can't be empty", path)
	}

	return genesis, nil
}
