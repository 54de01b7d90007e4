package models

// StateEntry is the last fingerprint reported for one item of a collection.
// An entry exists if and only if the item was reported present in some
// prior completed session.
type StateEntry struct {
	ID          string `json:"id"`
	Fingerprint string `json:"fingerprint"`
}
