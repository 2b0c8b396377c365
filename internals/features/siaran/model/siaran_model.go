package model

import (
	"fmt"
	"sort"
	"strconv"

	"tvdigital_backend/internals/databases/store"
)

// Nama field leaf di bawah siaran/<provinsi>/<wilayah>/<mux>.
const (
	FieldSiaran            = "siaran"
	FieldLastUpdatedBy     = "last_updated_by"
	FieldLastUpdatedByName = "last_updated_by_name"
	FieldLastUpdatedDate   = "last_updated_date"
	FieldLastUpdatedTime   = "last_updated_time"
)

// BroadcastRecord adalah daftar siaran satu multiplex plus metadata audit.
type BroadcastRecord struct {
	Siaran            []string `json:"siaran"`
	LastUpdatedBy     string   `json:"last_updated_by,omitempty"`
	LastUpdatedByName string   `json:"last_updated_by_name,omitempty"`
	LastUpdatedDate   string   `json:"last_updated_date,omitempty"`
	LastUpdatedTime   string   `json:"last_updated_time,omitempty"`

	// field lain yang ada di record tapi tidak dikenal, tetap dibawa apa adanya
	Extra map[string]any `json:"extra,omitempty"`
}

// IsEmpty true kalau record tidak ditemukan di store.
func (r *BroadcastRecord) IsEmpty() bool {
	return r == nil || (len(r.Siaran) == 0 &&
		r.LastUpdatedBy == "" &&
		r.LastUpdatedByName == "" &&
		r.LastUpdatedDate == "" &&
		r.LastUpdatedTime == "" &&
		len(r.Extra) == 0)
}

// ToMap menghasilkan bentuk yang ditulis ke store. Field kosong tidak ikut.
func (r *BroadcastRecord) ToMap() map[string]any {
	out := make(map[string]any, 5+len(r.Extra))
	for k, v := range r.Extra {
		out[k] = v
	}
	siaran := r.Siaran
	if siaran == nil {
		siaran = []string{}
	}
	out[FieldSiaran] = siaran
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put(FieldLastUpdatedBy, r.LastUpdatedBy)
	put(FieldLastUpdatedByName, r.LastUpdatedByName)
	put(FieldLastUpdatedDate, r.LastUpdatedDate)
	put(FieldLastUpdatedTime, r.LastUpdatedTime)
	return out
}

// FromNode membaca record dari subtree store.
func FromNode(n store.Node) *BroadcastRecord {
	r := &BroadcastRecord{Siaran: []string{}}
	for k, v := range n {
		switch k {
		case FieldSiaran:
			r.Siaran = toStrings(v)
		case FieldLastUpdatedBy:
			r.LastUpdatedBy = toString(v)
		case FieldLastUpdatedByName:
			r.LastUpdatedByName = toString(v)
		case FieldLastUpdatedDate:
			r.LastUpdatedDate = toString(v)
		case FieldLastUpdatedTime:
			r.LastUpdatedTime = toString(v)
		default:
			if r.Extra == nil {
				r.Extra = map[string]any{}
			}
			r.Extra[k] = v
		}
	}
	return r
}

// Counts adalah ringkasan untuk dashboard.
type Counts struct {
	Provinces   int `json:"provinsi"`
	Regions     int `json:"wilayah"`
	Multiplexes int `json:"mux"`
	Channels    int `json:"siaran"`
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// toStrings menerima array ([]any / []string) atau object berindeks angka
// seperti yang kadang dihasilkan store untuk list lama.
func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if x != nil {
				out = append(out, toString(x))
			}
		}
		return out
	case map[string]any:
		keys := store.Node(t).Keys()
		sort.SliceStable(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA == nil && errB == nil {
				return a < b
			}
			return keys[i] < keys[j]
		})
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			out = append(out, toString(t[k]))
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}
