package seen

import (
	"encoding/json"
	"log"
	"os"

	"github.com/gofrs/flock"
)

// Source names double as the keys of the persisted JSON object.
const (
	SourceNHS          = "nhs"
	SourceHealthJobsUK = "healthjobsuk"
)

// Store is the persisted record of job ids already notified. It is loaded once
// at run start, mutated by the scrapers, and saved once at run end.
type Store struct {
	path string
	ids  map[string][]string
}

func defaultIDs() map[string][]string {
	return map[string][]string{
		SourceNHS:          {},
		SourceHealthJobsUK: {},
	}
}

// Load never fails: an absent, unreadable or malformed file is treated as a
// first run and the empty default takes its place.
func Load(path string) *Store {
	st := &Store{path: path, ids: defaultIDs()}

	b, err := os.ReadFile(path)
	if err != nil {
		return st
	}

	var m map[string][]string
	if err := json.Unmarshal(b, &m); err != nil {
		log.Printf("[seen] %s is not valid JSON, starting fresh: %v", path, err)
		return st
	}
	for source, list := range m {
		if list == nil {
			list = []string{}
		}
		st.ids[source] = list
	}
	return st
}

func (st *Store) Has(source, id string) bool {
	for _, s := range st.ids[source] {
		if s == id {
			return true
		}
	}
	return false
}

// Add appends id to the source's list unless it is already present. Insertion
// order is preserved but carries no meaning.
func (st *Store) Add(source, id string) {
	if st.Has(source, id) {
		return
	}
	st.ids[source] = append(st.ids[source], id)
}

// IDs returns a copy of the source's id list.
func (st *Store) IDs(source string) []string {
	out := make([]string, len(st.ids[source]))
	copy(out, st.ids[source])
	return out
}

// Save overwrites the file wholesale. An advisory lock keeps overlapping
// scheduler invocations from interleaving writes; there is no atomic rename,
// so a crash mid-write can still corrupt the file and Load tolerates that.
func (st *Store) Save() error {
	lk := flock.New(st.path + ".lock")
	if err := lk.Lock(); err != nil {
		log.Printf("[seen] could not lock %s: %v", st.path, err)
	} else {
		defer func() {
			_ = lk.Unlock()
		}()
	}

	b, err := json.Marshal(st.ids)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, b, 0o644)
}
