package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

func Test_Load(t *testing.T) {
	gen, err := genesis.Load("")
	if err != nil {
		t.Fatalf("Should be able to load the defaults: %s", err)
	}

	if gen != genesis.Default() {
		t.Logf("got: %+v", gen)
		t.Logf("exp: %+v", genesis.Default())
		t.Fatalf("Should get back the defaults for an empty path.")
	}

	path := filepath.Join(t.TempDir(), "genesis.json")
	if err := os.WriteFile(path, []byte(`{"difficulty":3,"mining_reward":2.5}`), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %s", err)
	}

	gen, err = genesis.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the genesis file: %s", err)
	}

	exp := genesis.Genesis{PrevHash: "1", Proof: 100, Difficulty: 3, MiningReward: 2.5}
	if gen != exp {
		t.Logf("got: %+v", gen)
		t.Logf("exp: %+v", exp)
		t.Fatalf("Should override only the values in the file.")
	}

	if err := os.WriteFile(path, []byte(`{"previous_hash":""}`), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %s", err)
	}

	if _, err := genesis.Load(path); err == nil {
		t.Fatalf("Should reject an empty previous hash.")
	}

	if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("Should fail on a missing file.")
	}
}
