package engine

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from YAML strings ("1s",
// "200ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Delays names every sequencing delay of the protocol.
//
// These are not tuning knobs to taste: the remote catch-up delays
// manufacture ordering over a channel that has none, and each must be
// strictly longer than the self-side advance delay whose intermediate
// status it depends on observing. Validate() encodes those dependencies;
// a configuration that fails it produces duplicate or missing reactions.
type Delays struct {
	// AnalysisClear is the lease on a completed analysis announcement
	// before the owner clears the field.
	AnalysisClear Duration `yaml:"analysis_clear"`

	// RecordingClear is the lease on a stopped recording announcement.
	RecordingClear Duration `yaml:"recording_clear"`

	// TrackEditAdvance is the self-side pause between announcing
	// editInitiated and advancing to editInProgress. It also spans the
	// window during which the edit toggle stays disabled to absorb
	// re-entrant reactions.
	TrackEditAdvance Duration `yaml:"track_edit_advance"`

	// TrackEditClear is the lease on a completed track edit before the
	// owner clears the field and the toggle re-enables everywhere.
	TrackEditClear Duration `yaml:"track_edit_clear"`

	// TrackEditCatchUp is the late-joiner replay delay for a track edit
	// already in progress. Must exceed TrackEditAdvance.
	TrackEditCatchUp Duration `yaml:"track_edit_catch_up"`

	// ChordEditAdvance is the self-side pause between announcing started
	// and advancing to inProgress.
	ChordEditAdvance Duration `yaml:"chord_edit_advance"`

	// ChordEditClear is the lease on a completed chord edit.
	ChordEditClear Duration `yaml:"chord_edit_clear"`

	// ChordEditCatchUp is the late-joiner replay delay for a chord edit
	// already in progress. Must exceed ChordEditAdvance, and must not be
	// shorter than TrackEditCatchUp so a late joiner replays the track
	// edit entry before the chord editor opens on top of it.
	ChordEditCatchUp Duration `yaml:"chord_edit_catch_up"`

	// CancelSaveClear is the lease on a cancel/save announcement.
	CancelSaveClear Duration `yaml:"cancel_save_clear"`

	// HousekeepingTick is the period of the unconditional roster and
	// reception sweep.
	HousekeepingTick Duration `yaml:"housekeeping_tick"`
}

// DefaultDelays returns the production delay set.
func DefaultDelays() Delays {
	return Delays{
		AnalysisClear:    Duration(1 * time.Second),
		RecordingClear:   Duration(100 * time.Millisecond),
		TrackEditAdvance: Duration(1 * time.Second),
		TrackEditClear:   Duration(1 * time.Second),
		TrackEditCatchUp: Duration(7 * time.Second),
		ChordEditAdvance: Duration(1 * time.Second),
		ChordEditClear:   Duration(200 * time.Millisecond),
		ChordEditCatchUp: Duration(7 * time.Second),
		CancelSaveClear:  Duration(1 * time.Second),
		HousekeepingTick: Duration(30 * time.Second),
	}
}

// Override returns d with every non-zero field of o applied on top.
func (d Delays) Override(o Delays) Delays {
	if o.AnalysisClear != 0 {
		d.AnalysisClear = o.AnalysisClear
	}
	if o.RecordingClear != 0 {
		d.RecordingClear = o.RecordingClear
	}
	if o.TrackEditAdvance != 0 {
		d.TrackEditAdvance = o.TrackEditAdvance
	}
	if o.TrackEditClear != 0 {
		d.TrackEditClear = o.TrackEditClear
	}
	if o.TrackEditCatchUp != 0 {
		d.TrackEditCatchUp = o.TrackEditCatchUp
	}
	if o.ChordEditAdvance != 0 {
		d.ChordEditAdvance = o.ChordEditAdvance
	}
	if o.ChordEditClear != 0 {
		d.ChordEditClear = o.ChordEditClear
	}
	if o.ChordEditCatchUp != 0 {
		d.ChordEditCatchUp = o.ChordEditCatchUp
	}
	if o.CancelSaveClear != 0 {
		d.CancelSaveClear = o.CancelSaveClear
	}
	if o.HousekeepingTick != 0 {
		d.HousekeepingTick = o.HousekeepingTick
	}
	return d
}

// Validate checks that every delay is positive and that every ordering
// dependency between delay pairs holds.
func (d Delays) Validate() error {
	positive := []struct {
		name  string
		value Duration
	}{
		{"analysis_clear", d.AnalysisClear},
		{"recording_clear", d.RecordingClear},
		{"track_edit_advance", d.TrackEditAdvance},
		{"track_edit_clear", d.TrackEditClear},
		{"track_edit_catch_up", d.TrackEditCatchUp},
		{"chord_edit_advance", d.ChordEditAdvance},
		{"chord_edit_clear", d.ChordEditClear},
		{"chord_edit_catch_up", d.ChordEditCatchUp},
		{"cancel_save_clear", d.CancelSaveClear},
		{"housekeeping_tick", d.HousekeepingTick},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("delay %s must be positive, got %s", p.name, p.value.Std())
		}
	}

	if d.TrackEditCatchUp <= d.TrackEditAdvance {
		return fmt.Errorf("track_edit_catch_up (%s) must exceed track_edit_advance (%s): a late joiner must observe editInProgress, not replay over a still-initiating editor",
			d.TrackEditCatchUp.Std(), d.TrackEditAdvance.Std())
	}
	if d.ChordEditCatchUp <= d.ChordEditAdvance {
		return fmt.Errorf("chord_edit_catch_up (%s) must exceed chord_edit_advance (%s)",
			d.ChordEditCatchUp.Std(), d.ChordEditAdvance.Std())
	}
	if d.ChordEditCatchUp < d.TrackEditCatchUp {
		return fmt.Errorf("chord_edit_catch_up (%s) must not be shorter than track_edit_catch_up (%s): the chord editor replays on top of the track edit entry",
			d.ChordEditCatchUp.Std(), d.TrackEditCatchUp.Std())
	}
	return nil
}
