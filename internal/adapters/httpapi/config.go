package httpapi

import (
	"net/http"

	"fpadmin/pkg/domain"
)

func (s *Server) handleGetMeeting(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.meetings.Config()})
}

func (s *Server) handlePutMeeting(w http.ResponseWriter, r *http.Request) {
	var cfg domain.MeetingConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}
	if err := s.meetings.UpdateConfig(r.Context(), cfg); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": s.meetings.Config()})
}

func (s *Server) handleMeetingURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.meetings.GenerateMeetingURL(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleGetBranding(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Branding(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": cfg})
}

func (s *Server) handlePutBranding(w http.ResponseWriter, r *http.Request) {
	var cfg domain.BrandingConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}
	if err := s.settings.UpdateBranding(r.Context(), cfg); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": cfg})
}

func (s *Server) handleGetEmail(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Email(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": cfg})
}

func (s *Server) handlePutEmail(w http.ResponseWriter, r *http.Request) {
	var cfg domain.EmailConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}
	if err := s.settings.UpdateEmail(r.Context(), cfg); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": cfg})
}
