package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fpadmin/internal/core"
	"fpadmin/pkg/domain"
)

// resource wires the standard collection routes for one record type.
type resource[T any, P any] struct {
	list   func() []T
	set    func(context.Context, []T) (core.Result, error)
	create func(context.Context, T) (T, core.Result, error)
	update func(context.Context, string, P) (T, core.Result, error)
	remove func(context.Context, string) (core.Result, error)
}

func (res resource[T, P]) mount(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": res.list()})
	})
	if res.set != nil {
		r.Put("/", func(w http.ResponseWriter, r *http.Request) {
			var items []T
			if !decodeJSON(w, r, &items) {
				return
			}
			result, err := res.set(r.Context(), items)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeResult(w, http.StatusOK, res.list(), result)
		})
	}
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var item T
		if !decodeJSON(w, r, &item) {
			return
		}
		created, result, err := res.create(r.Context(), item)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeResult(w, http.StatusCreated, created, result)
	})
	r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if !decodeJSON(w, r, &patch) {
			return
		}
		updated, result, err := res.update(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeResult(w, http.StatusOK, updated, result)
	})
	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		result, err := res.remove(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeResult(w, http.StatusOK, nil, result)
	})
}

// lookup serves a single record found by a path parameter.
func lookup[T any](param string, entity domain.EntityType, find func(context.Context, string) (T, bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, param)
		item, ok, err := find(r.Context(), key)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !ok {
			writeServiceError(w, domain.ErrNotFound{Entity: entity, ID: key})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": item})
	}
}

// toggle serves the objective and ODS active flag flips.
func toggle(fn func(context.Context, string) (domain.Objective, core.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, result, err := fn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeResult(w, http.StatusOK, updated, result)
	}
}

func (s *Server) mountRecords(r chi.Router) {
	svc := s.records

	r.Route("/networks", func(r chi.Router) {
		resource[domain.Network, domain.NetworkPatch]{
			list: svc.Networks, set: svc.SetNetworks, create: svc.CreateNetwork,
			update: svc.UpdateNetwork, remove: svc.DeleteNetwork,
		}.mount(r)
		r.Get("/by-code/{code}", lookup("code", domain.EntityNetwork, svc.NetworkByCode))
	})
	r.Route("/centers", func(r chi.Router) {
		resource[domain.Center, domain.CenterPatch]{
			list: svc.Centers, set: svc.SetCenters, create: svc.CreateCenter,
			update: svc.UpdateCenter, remove: svc.DeleteCenter,
		}.mount(r)
		r.Get("/by-name/{name}", lookup("name", domain.EntityCenter, svc.CenterByName))
	})
	r.Route("/families", func(r chi.Router) {
		resource[domain.ProfessionalFamily, domain.FamilyPatch]{
			list: svc.Families, set: svc.SetFamilies, create: svc.CreateFamily,
			update: svc.UpdateFamily, remove: svc.DeleteFamily,
		}.mount(r)
		r.Get("/by-code/{code}", lookup("code", domain.EntityFamily, svc.FamilyByCode))
	})
	r.Route("/departments", func(r chi.Router) {
		resource[domain.Department, domain.DepartmentPatch]{
			list: svc.Departments, set: svc.SetDepartments, create: svc.CreateDepartment,
			update: svc.UpdateDepartment, remove: svc.DeleteDepartment,
		}.mount(r)
		r.Get("/by-code/{code}", lookup("code", domain.EntityDepartment, svc.DepartmentByCode))
	})
	r.Route("/objectives", func(r chi.Router) {
		resource[domain.Objective, domain.ObjectivePatch]{
			list: svc.Objectives, set: svc.SetObjectives, create: svc.CreateObjective,
			update: svc.UpdateObjective, remove: svc.DeleteObjective,
		}.mount(r)
		r.Get("/{id}", lookup("id", domain.EntityObjective, svc.ObjectiveByID))
		r.Post("/{id}/toggle", toggle(svc.ToggleObjective))
	})
	r.Route("/ods", func(r chi.Router) {
		resource[domain.Objective, domain.ObjectivePatch]{
			list: svc.ODS, set: svc.SetODS, create: svc.CreateODS,
			update: svc.UpdateODS, remove: svc.DeleteODS,
		}.mount(r)
		r.Post("/{id}/toggle", toggle(svc.ToggleODS))
	})
	r.Route("/roles", func(r chi.Router) {
		resource[domain.Role, domain.RolePatch]{
			list: svc.Roles, create: svc.CreateRole,
			update: svc.UpdateRole, remove: svc.DeleteRole,
		}.mount(r)
	})
	r.Route("/permissions", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": svc.Permissions()})
		})
		r.Put("/", func(w http.ResponseWriter, r *http.Request) {
			var items []domain.Permission
			if !decodeJSON(w, r, &items) {
				return
			}
			result, err := svc.SetPermissions(r.Context(), items)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeResult(w, http.StatusOK, svc.Permissions(), result)
		})
	})
}
