package repo

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
)

// ViewHistory is the durable record of per-entity view events. All events are
// held in memory; every mutation rewrites the whole backing JSON file
// synchronously under the lock, so a crash never loses an acknowledged view.
//
// The file shape is a contract with migration tooling: a single JSON object
// mapping string-encoded ids to arrays of RFC 3339 timestamps, keys in
// first-view order. Load preserves that key order so ranking tie-breaks
// survive a restart.
type ViewHistory struct {
	conf *appconfig.Config

	mu     sync.Mutex
	events map[int][]time.Time
	order  []int
}

func NewViewHistory(conf *appconfig.Config) (*ViewHistory, error) {
	if dir := filepath.Dir(conf.PopularityPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create view history directory %s", dir)
		}
	}
	r := &ViewHistory{
		conf:   conf,
		events: make(map[int][]time.Time),
	}
	r.load()
	return r, nil
}

// Append records one view event and persists the full history before
// returning. The event stays recorded in memory even if persistence fails.
func (r *ViewHistory) Append(id int, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.events[id]; !seen {
		r.order = append(r.order, id)
	}
	r.events[id] = append(r.events[id], ts)

	return r.persistLocked()
}

// Snapshot returns a deep copy of the event table together with the
// first-view id order.
func (r *ViewHistory) Snapshot() (map[int][]time.Time, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make(map[int][]time.Time, len(r.events))
	for id, stamps := range r.events {
		events[id] = append([]time.Time(nil), stamps...)
	}
	order := append([]int(nil), r.order...)
	return events, order
}

// Cleanup drops every event older than horizon, removes ids left without
// events, and persists the trimmed history. It returns the number of events
// removed.
func (r *ViewHistory) Cleanup(horizon time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	kept := make([]int, 0, len(r.order))
	for _, id := range r.order {
		stamps := r.events[id]
		retained := stamps[:0]
		for _, ts := range stamps {
			if ts.Before(horizon) {
				removed++
				continue
			}
			retained = append(retained, ts)
		}
		if len(retained) == 0 {
			delete(r.events, id)
			continue
		}
		r.events[id] = retained
		kept = append(kept, id)
	}
	r.order = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, r.persistLocked()
}

// persistLocked rewrites the backing file as a single ordered JSON object.
// The encoder is not used directly for the top-level object because map
// marshaling would destroy key order.
func (r *ViewHistory) persistLocked() error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, id := range r.order {
		stamps := r.events[id]
		if len(stamps) == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		encoded := make([]string, len(stamps))
		for i, ts := range stamps {
			encoded[i] = ts.Format(time.RFC3339Nano)
		}
		arr, err := json.Marshal(encoded)
		if err != nil {
			return errors.Wrap(err, "failed to encode view history")
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(id)))
		buf.WriteByte(':')
		buf.Write(arr)
	}
	buf.WriteByte('}')

	if err := os.WriteFile(r.conf.PopularityPath, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "failed to persist view history")
	}
	return nil
}

// load reads the backing file, preserving its key order. A missing file is a
// fresh start; a corrupt file is logged and replaced by an empty history.
func (r *ViewHistory) load() {
	raw, err := os.ReadFile(r.conf.PopularityPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is unreadable; starting empty")
		}
		return
	}

	events := make(map[int][]time.Time)
	var order []int

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		log.Error().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
		return
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			log.Error().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
			return
		}
		key, ok := keyTok.(string)
		if !ok {
			log.Error().Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
			return
		}
		id, err := strconv.Atoi(key)
		if err != nil {
			log.Error().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
			return
		}
		var encoded []string
		if err := dec.Decode(&encoded); err != nil {
			log.Error().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
			return
		}
		stamps := make([]time.Time, 0, len(encoded))
		for _, s := range encoded {
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				log.Error().Err(err).Str("path", r.conf.PopularityPath).Msg("view history file is corrupt; starting empty")
				return
			}
			stamps = append(stamps, ts)
		}
		if _, seen := events[id]; !seen {
			order = append(order, id)
		}
		events[id] = append(events[id], stamps...)
	}

	r.events = events
	r.order = order

	total := 0
	for _, stamps := range events {
		total += len(stamps)
	}
	log.Info().Int("entities", len(events)).Int("events", total).Msg("loaded view history")
}
