package peer_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host3"}},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, peer := range tst.peers {
				ps.Add(peer)
			}

			peers := ps.Copy("")
			if len(peers) != len(tst.peers) {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers))
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			peers = ps.Copy("host2")
			if len(peers) != len(tst.peers)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers)-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			ps.Remove(tst.peers[0])
			if ps.Len() != len(tst.peers)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, ps.Len())
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers)-1)
				t.Fatalf("Test %s:\tShould be able to remove a peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Idempotent(t *testing.T) {
	ps := peer.NewPeerSet()

	for _, address := range []string{"http://192.168.0.5:5000", "192.168.0.5:5000", "HTTP://192.168.0.5:5000/chain"} {
		pr, err := peer.Parse(address)
		if err != nil {
			t.Fatalf("Should be able to parse %q: %s", address, err)
		}
		ps.Add(pr)
	}

	if ps.Len() != 1 {
		t.Logf("got: %d", ps.Len())
		t.Logf("exp: %d", 1)
		t.Fatalf("Should only hold one peer for the same address.")
	}

	pr, _ := peer.Parse("192.168.0.5:5000")
	if ps.Add(pr) {
		t.Fatalf("Should report the peer as already known.")
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		name    string
		address string
		host    string
		err     bool
	}

	tt := []table{
		{name: "full", address: "http://192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "path", address: "http://192.168.0.5:5000/v1/chain?x=1", host: "192.168.0.5:5000"},
		{name: "bare", address: "192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "case", address: "https://Node-A.Local:9080", host: "node-a.local:9080"},
		{name: "noport", address: "localhost", host: "localhost"},
		{name: "ipv6", address: "http://[::1]:5000/", host: "[::1]:5000"},
		{name: "space", address: "  localhost:8080 ", host: "localhost:8080"},
		{name: "empty", address: "", err: true},
		{name: "nohost", address: "http:///chain", err: true},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			pr, err := peer.Parse(tst.address)

			if tst.err {
				if !errors.Is(err, peer.ErrInvalidAddress) {
					t.Fatalf("Test %s:\tShould get an invalid address error: %v", tst.name, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Test %s:\tShould be able to parse the address: %s", tst.name, err)
			}

			if pr.Host != tst.host {
				t.Logf("Test %s:\tgot: %s", tst.name, pr.Host)
				t.Logf("Test %s:\texp: %s", tst.name, tst.host)
				t.Fatalf("Test %s:\tShould get back the canonical host.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Advertised(t *testing.T) {
	type table struct {
		name   string
		listen string
		host   string
	}

	tt := []table{
		{name: "any", listen: "0.0.0.0:8080", host: "localhost:8080"},
		{name: "anyv6", listen: "[::]:8080", host: "localhost:8080"},
		{name: "port", listen: ":8080", host: "localhost:8080"},
		{name: "ip", listen: "192.168.0.5:8080", host: "192.168.0.5:8080"},
		{name: "name", listen: "Node-A.Local:8080", host: "node-a.local:8080"},
		{name: "url", listen: "http://node-a:8080/v1", host: "node-a:8080"},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			pr, err := peer.Advertised(tst.listen)
			if err != nil {
				t.Fatalf("Test %s:\tShould be able to build the advertised peer: %s", tst.name, err)
			}

			if pr.Host != tst.host {
				t.Logf("Test %s:\tgot: %s", tst.name, pr.Host)
				t.Logf("Test %s:\texp: %s", tst.name, tst.host)
				t.Fatalf("Test %s:\tShould get back the host other nodes use.", tst.name)
			}

			self, err := peer.Parse("http://" + tst.host + "/v1/chain")
			if err != nil {
				t.Fatalf("Test %s:\tShould be able to parse the registered address: %s", tst.name, err)
			}

			if !self.Match(pr.Host) {
				t.Fatalf("Test %s:\tShould match the peer registered with that host.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
