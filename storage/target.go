package storage

import "strings"

// Target is where a run's result goes. It is chosen once at startup and is
// either DatasetOnly or DatasetAndRelational.
type Target interface {
	target()
}

// DatasetOnly writes the result to the job dataset alone
type DatasetOnly struct{}

// DatasetAndRelational also writes price rows to the relational store
type DatasetAndRelational struct {
	Credentials Credentials
}

func (DatasetOnly) target()          {}
func (DatasetAndRelational) target() {}

// SelectTarget enables the relational store only when both the store
// address and its key are given.
func SelectTarget(storeURL, storeKey string) Target {
	if strings.TrimSpace(storeURL) == "" || strings.TrimSpace(storeKey) == "" {
		return DatasetOnly{}
	}
	return DatasetAndRelational{Credentials: Credentials{URL: strings.TrimSpace(storeURL), Key: strings.TrimSpace(storeKey)}}
}
