package signature_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	hash := "0f6887ac85101d6d6425a617edf35bd721b5f619fb92c36c3d2224e3bdb0ee5a"

	h := signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}

func Test_HashFieldChange(t *testing.T) {
	type value struct {
		Name  string
		Count int
	}

	h1 := signature.Hash(value{Name: "Bill", Count: 1})
	h2 := signature.Hash(value{Count: 1, Name: "Bill"})
	if h1 != h2 {
		t.Logf("got: %s", h2)
		t.Logf("exp: %s", h1)
		t.Fatalf("Should get the same hash regardless of construction order.")
	}

	h3 := signature.Hash(value{Name: "Bill", Count: 2})
	if h1 == h3 {
		t.Fatalf("Should get a different hash when a field changes.")
	}
}

func Test_HashUnsupported(t *testing.T) {
	h := signature.Hash(make(chan int))
	if h != signature.ZeroHash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", signature.ZeroHash)
		t.Fatalf("Should get back the zero hash for a value that can't be marshaled.")
	}
}

func Test_Digest(t *testing.T) {
	tt := []struct {
		name string
		data string
		hash string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			h := signature.Digest([]byte(tst.data))
			if h != tst.hash {
				t.Logf("got: %s", h)
				t.Logf("exp: %s", tst.hash)
				t.Fatalf("Should get back the right digest.")
			}
		}

		t.Run(tst.name, f)
	}
}
