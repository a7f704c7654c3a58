package httpapi

import "net/http"

// Tab is one section of the admin console.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DefaultTab is shown when no valid tab is requested.
const DefaultTab = "branding"

// AdminTabs lists the admin console sections in display order.
var AdminTabs = []Tab{
	{ID: "branding", Label: "Personalización"},
	{ID: "codes", Label: "Códigos de Registro"},
	{ID: "roles", Label: "Roles y Permisos"},
	{ID: "email", Label: "Configuración de Correo"},
	{ID: "meetings", Label: "Videoconferencias"},
}

// ResolveTab returns id when it names a known tab, DefaultTab otherwise.
func ResolveTab(id string) string {
	for _, t := range AdminTabs {
		if t.ID == id {
			return id
		}
	}
	return DefaultTab
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tabs":    AdminTabs,
		"default": DefaultTab,
		"active":  ResolveTab(r.URL.Query().Get("active")),
	})
}
