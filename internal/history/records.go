// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/email-scout/pkg/types"
)

// FromSingle builds a record for one scrape. The label is the URL.
func FromSingle(r types.SingleResult) (Record, error) {
	return newRecord(KindSingle, r.URL, r.Count, r)
}

// FromBatch builds a record for a batch. The label names the first URL and
// how many others followed it.
func FromBatch(r types.BatchReport) (Record, error) {
	label := ""
	switch n := len(r.Results); n {
	case 0:
	case 1:
		label = r.Results[0].URL
	default:
		label = fmt.Sprintf("%s and %d more", r.Results[0].URL, n-1)
	}
	return newRecord(KindBatch, label, r.UniqueEmailCount, r)
}

// FromSearch builds a record for a search. The label is the keyword and,
// when set, the region.
func FromSearch(r types.SearchReport) (Record, error) {
	label := r.Keyword
	if r.Region != "" {
		label += " [" + r.Region + "]"
	}
	return newRecord(KindSearch, label, r.Count, r)
}

func newRecord(kind Kind, label string, count int, v any) (Record, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("encoding %s record: %w", kind, err)
	}
	return Record{Kind: kind, Label: label, Count: count, Payload: payload}, nil
}

// Decode returns the payload as a *types.SingleResult, *types.BatchReport
// or *types.SearchReport according to the record kind.
func (r Record) Decode() (any, error) {
	var v any
	switch r.Kind {
	case KindSingle:
		v = &types.SingleResult{}
	case KindBatch:
		v = &types.BatchReport{}
	case KindSearch:
		v = &types.SearchReport{}
	default:
		return nil, fmt.Errorf("record %s: unknown kind %q", r.ID, r.Kind)
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return nil, fmt.Errorf("record %s: decoding payload: %w", r.ID, err)
	}
	return v, nil
}

// EmailRow pairs an address with the page it was found on.
type EmailRow struct {
	Email     string
	SourceURL string
}

// EmailRows returns the addresses in a single or batch record, one row per
// address and page. Search records carry no addresses.
func (r Record) EmailRows() ([]EmailRow, error) {
	v, err := r.Decode()
	if err != nil {
		return nil, err
	}
	var rows []EmailRow
	add := func(res types.SingleResult) {
		if !res.Success {
			return
		}
		for _, e := range res.Emails {
			rows = append(rows, EmailRow{Email: e, SourceURL: res.URL})
		}
	}
	switch p := v.(type) {
	case *types.SingleResult:
		add(*p)
	case *types.BatchReport:
		for _, res := range p.Results {
			add(res)
		}
	}
	return rows, nil
}
