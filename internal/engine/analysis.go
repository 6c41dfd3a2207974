package engine

import (
	"fmt"
	"log/slog"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reduceAnalysis drives the backing-track analysis machine:
// initiated -> inProgress -> completed -> (cleared).
//
// Only the announcing client advances the machine; everyone else observes.
// The owner's sole job is the lease-expiry clear once completed.
func (e *Engine) reduceAnalysis(self bool, analyzer state.User, st *state.AnalysisState) []ui.Effect {
	switch st.Status {
	case state.AnalysisInitiated:
		if self {
			return nil
		}
		return []ui.Effect{
			ui.Notify{
				Text:     fmt.Sprintf("%s started a backing track analysis. Waiting for the result...", analyzer.Name),
				Severity: ui.SeverityInfo,
			},
			ui.ShowAnalysisProgress{},
		}

	case state.AnalysisInProgress:
		if self {
			// The owner renders its own progress directly, not through
			// the awareness channel.
			return nil
		}
		return []ui.Effect{ui.SetAnalysisProgress{Percent: st.Progress}}

	case state.AnalysisCompleted:
		if self {
			e.clearLater(state.FeatureAnalysis, e.delays.AnalysisClear, "analysis-clear")
			return nil
		}
		if st.ResultURL == state.AnalysisURLNone {
			return []ui.Effect{
				ui.Notify{Text: "Backing track analysis failed.", Severity: ui.SeverityDanger},
				ui.HideAnalysisProgress{},
			}
		}
		return []ui.Effect{
			ui.Notify{Text: "Backing track analysis completed!", Severity: ui.SeverityInfo},
			ui.SetAnalysisProgress{Percent: 100},
			ui.HideAnalysisProgress{},
			ui.LoadAnnotationFile{URL: st.ResultURL},
		}

	default:
		slog.Debug("ignoring unknown analysis status", "status", st.Status)
		return nil
	}
}
