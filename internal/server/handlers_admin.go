package server

import (
	"net/http"

	"tracker/internal/api"
	"tracker/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo reports the schema version and task counts by status. It is
// usable before migration, in which case all counts are zero.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	plan, err := store.MigrationPlan(s.store.DB())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	resp := api.InfoResponse{
		SchemaVersion: plan.CurrentVersion,
		TaskCounts:    map[string]int{},
	}

	exists, err := s.store.TableExists(r.Context(), "todos")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if exists {
		tasks, err := s.store.LoadAllTasks(r.Context())
		if err != nil {
			s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
			return
		}
		for _, task := range tasks {
			resp.TaskCounts[task.Status]++
		}
		resp.TotalTasks = len(tasks)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminMigrate(w http.ResponseWriter, r *http.Request) {
	before, err := store.MigrationPlan(s.store.DB())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	if err := s.store.Migrate(r.Context()); err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	after, err := store.MigrationPlan(s.store.DB())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusOK, api.MigrateResponse{
		CurrentVersion: after.CurrentVersion,
		Applied:        after.CurrentVersion > before.CurrentVersion,
	})
}
