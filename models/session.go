package models

// ConnectResponse is returned to the transport after a successful connect.
// SlowSync is set when no completed session is on record for the collection
// and every live item is about to be reported as added.
type ConnectResponse struct {
	Collection string `json:"collection"`
	SlowSync   bool   `json:"slow_sync"`
}

// ChangesResponse carries the change stream produced by one enumeration.
type ChangesResponse struct {
	Collection string         `json:"collection"`
	Changes    []ChangeRecord `json:"changes"`

	// Length is the number of entries in Changes.
	Length int `json:"length"`
}

// CommitResponse carries the record as it was applied: with the final item
// identifier and the recomputed fingerprint.
type CommitResponse struct {
	Collection string       `json:"collection"`
	Change     ChangeRecord `json:"change"`
}
