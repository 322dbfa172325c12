package session

import "encoding/json"

// MarshalState serializes the full mutable session state as one opaque
// blob for the snapshot sink. The blob carries Version, so a restored
// context resumes the same write sequence.
func (c *Context) MarshalState() ([]byte, error) {
	return json.Marshal(c)
}

// RestoreState replaces the context's state with the decoded blob. A
// round trip through MarshalState reproduces an identical ledger state.
func (c *Context) RestoreState(blob []byte) error {
	var next Context
	if err := json.Unmarshal(blob, &next); err != nil {
		return err
	}
	if next.Players == nil {
		next.Players = make(map[string]*Player)
	}
	*c = next
	return nil
}
