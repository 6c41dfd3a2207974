package engine

import (
	"log/slog"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reconcileRoster runs on every membership event. Reception housekeeping
// runs unconditionally first (it also runs on the periodic tick); the
// roster diff itself only runs when membership actually changed.
//
// The diff classifies participants three ways:
//
//	disconnected = (every name ever seen) - connected
//	reconnected  = (names currently rendered offline) ∩ connected
//
// Names are deduplicated under NFC normalization before comparison, so a
// peer re-announcing the same display name in a different Unicode
// composition is the same participant.
func (e *Engine) reconcileRoster(added, removed []state.ClientID) {
	e.housekeepReception()

	if len(added) == 0 && len(removed) == 0 {
		return
	}

	// Departed clients must not hold dispatcher memo: a reconnecting
	// client gets a fresh ClientID, and a stale one must not mask a
	// future id collision.
	for _, id := range removed {
		delete(e.seen, id)
	}

	states := e.dir.States()
	connected := make(map[string]Participant)
	for _, rec := range states {
		name := canonicalName(rec.User.Name)
		if name == "" {
			continue
		}
		connected[name] = Participant{Name: name, ID: rec.User.ID, Color: rec.User.Color}
	}
	for name, p := range connected {
		e.known[name] = p
	}

	var disconnectedNames []string
	for name := range e.known {
		if _, ok := connected[name]; !ok {
			disconnectedNames = append(disconnectedNames, name)
		}
	}
	sort.Strings(disconnectedNames)

	var reconnectedNames []string
	for name := range e.offline {
		if _, ok := connected[name]; ok {
			reconnectedNames = append(reconnectedNames, name)
		}
	}
	sort.Strings(reconnectedNames)

	connectedNames := make([]string, 0, len(connected))
	for name := range connected {
		connectedNames = append(connectedNames, name)
	}
	sort.Strings(connectedNames)

	slog.Debug("roster reconciled",
		"connected", len(connectedNames),
		"disconnected", len(disconnectedNames),
		"reconnected", len(reconnectedNames),
	)

	e.syncReceptionList(connected)

	var effects []ui.Effect

	// Recordings owned by departed participants become deletable by
	// everyone; a reconnecting owner takes back that exclusivity, except
	// the local user's own delete control, which stays visible.
	for _, name := range disconnectedNames {
		effects = append(effects, ui.SetDeleteVisible{Owner: name, Visible: true})
	}
	localName := canonicalName(e.dir.LocalUser().Name)
	for _, name := range reconnectedNames {
		if name == localName {
			continue
		}
		effects = append(effects, ui.SetDeleteVisible{Owner: name, Visible: false})
	}

	knownNames := make([]string, 0, len(e.known))
	for name := range e.known {
		knownNames = append(knownNames, name)
	}
	sort.Strings(knownNames)
	for _, name := range knownNames {
		_, online := connected[name]
		effects = append(effects, ui.SetPresence{Participant: name, Online: online})
	}

	entries := make([]ui.RosterEntry, 0, len(knownNames))
	for _, name := range connectedNames {
		p := connected[name]
		entries = append(entries, ui.RosterEntry{
			Name:      p.Name,
			ID:        p.ID,
			Color:     p.Color,
			AvatarURL: e.surface.AvatarURL(p.ID),
			Online:    true,
		})
	}
	for _, name := range disconnectedNames {
		p := e.known[name]
		entries = append(entries, ui.RosterEntry{
			Name:      p.Name,
			ID:        p.ID,
			Color:     p.Color,
			AvatarURL: e.surface.AvatarURL(p.ID),
			Online:    false,
		})
	}
	effects = append(effects, ui.RenderRoster{Entries: entries})

	e.offline = make(map[string]bool, len(disconnectedNames))
	for _, name := range disconnectedNames {
		e.offline[name] = true
	}

	e.emit(effects...)
}

// syncReceptionList keeps the shared reception list congruent with the
// connected set: newly connected names join unacknowledged, departed
// names leave entirely.
func (e *Engine) syncReceptionList(connected map[string]Participant) {
	reception := e.stores.Reception
	present := make(map[string]bool)
	for _, key := range reception.Keys() {
		present[key] = true
		if _, ok := connected[key]; !ok {
			reception.Delete(key)
		}
	}
	for name := range connected {
		if !present[name] {
			reception.Set(name, false)
		}
	}
}

// canonicalName normalizes a display name for set comparison.
func canonicalName(name string) string {
	return norm.NFC.String(name)
}
