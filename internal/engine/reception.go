package engine

import (
	"fmt"
	"log/slog"

	"github.com/tenuto/segno/internal/ui"
)

// housekeepReception sweeps the shared reception list. A recording is
// announced by writing its id (a string) under the recorder's name; every
// other participant flips their own entry to true once the audio has
// arrived. The sweep fires only when no entry is still pending:
//
//	[]                 -> nothing to do
//	any entry == false -> someone has not received the audio yet
//	first string entry -> (recorder, recording id); unlock controls
//
// After unlocking, every entry resets to false so the list is ready for
// the next announcement. The reset is unconditional: last-write-wins on
// the shared map makes a concurrent sweep by another client converge to
// the same state.
func (e *Engine) housekeepReception() {
	reception := e.stores.Reception
	keys := reception.Keys()
	if len(keys) == 0 {
		return
	}

	recorder := ""
	recID := ""
	for _, key := range keys {
		val, _ := reception.Get(key)
		switch v := val.(type) {
		case bool:
			if !v {
				return
			}
		case string:
			if recorder == "" {
				recorder = key
				recID = v
			}
		default:
			slog.Debug("ignoring reception entry of unexpected type",
				"participant", key,
				"type", fmt.Sprintf("%T", val),
			)
		}
	}
	if recorder == "" {
		return
	}

	slog.Debug("recording fully received", "recorder", recorder, "rec_id", recID)

	e.emit(ui.EnableBackingControl{RecID: recID})
	if canonicalName(e.dir.LocalUser().Name) == canonicalName(recorder) {
		e.emit(ui.EnableDeleteControl{RecID: recID})
	}

	for _, key := range keys {
		reception.Set(key, false)
	}
}
