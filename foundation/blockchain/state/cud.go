package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RegisterPeer parses the node address into its canonical form and adds it to
// the set of known peers. Registering a known peer does nothing.
func (s *State) RegisterPeer(address string) (peer.Peer, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return peer.Peer{}, err
	}

	if s.knownPeers.Add(pr) {
		s.evHandler("state: RegisterPeer: add peer-node %s", pr)
	}

	return pr, nil
}
