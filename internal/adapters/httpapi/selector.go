package httpapi

import (
	"net/http"
	"strings"

	"fpadmin/internal/core"
	"fpadmin/internal/selector"
)

type toggleRequest struct {
	Kind    selector.Kind `json:"kind" validate:"required,oneof=objectives ods"`
	Current []string      `json:"current"`
	ID      string        `json:"id" validate:"required"`
	Checked bool          `json:"checked"`
}

func splitIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) objectiveSelector() selector.Selector {
	return selector.Selector{
		Objectives: s.records.Objectives(),
		ODS:        s.records.ODS(),
	}
}

func (s *Server) handleSelectorOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := selector.Action{
		Objectives: splitIDs(q.Get("objectives")),
		ODS:        splitIDs(q.Get("ods")),
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": s.objectiveSelector().Options(action)})
}

func (s *Server) handleSelectorToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := core.ValidateStruct(req); err != nil {
		writeServiceError(w, err)
		return
	}
	var action selector.Action
	if req.Kind == selector.KindODS {
		action.ODS = req.Current
	} else {
		action.Objectives = req.Current
	}
	patch := s.objectiveSelector().Toggle(action, req.Kind, req.ID, req.Checked)
	patch.Apply(&action)
	selected := action.Objectives
	if req.Kind == selector.KindODS {
		selected = action.ODS
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": req.Kind, "selected": selected})
}
