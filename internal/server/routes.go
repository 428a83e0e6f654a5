package server

import (
	"net/http"

	"github.com/rs/cors"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Tasks collection.
	mux.HandleFunc("POST /v1/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /v1/tasks", s.handleListTasks)

	// Single task.
	mux.HandleFunc("GET /v1/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PUT /v1/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /v1/tasks/{id}/toggle", s.handleToggleTask)

	// Subtasks.
	mux.HandleFunc("GET /v1/tasks/{id}/subtasks", s.handleListSubtasks)
	mux.HandleFunc("POST /v1/tasks/{id}/subtasks", s.handleCreateSubtask)
	mux.HandleFunc("POST /v1/tasks/{id}/subtasks/done-all", s.handleMarkAllSubtasksDone)
	mux.HandleFunc("POST /v1/subtasks/{id}/done", s.handleSetSubtaskDone)

	// Admin.
	mux.HandleFunc("POST /v1/admin/migrate", s.handleAdminMigrate)

	// Live updates.
	mux.HandleFunc("GET /ws", s.handleWS)

	// HTML UI.
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /tasks", s.handleUICreateTask)
	mux.HandleFunc("POST /tasks/{id}/edit", s.handleUIEditTask)
	mux.HandleFunc("POST /tasks/{id}/cancel", s.handleUICancelEdit)
	mux.HandleFunc("POST /tasks/{id}/save", s.handleUISaveTask)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleUIDeleteTask)
	mux.HandleFunc("POST /tasks/{id}/toggle", s.handleUIToggleTask)
	mux.HandleFunc("POST /tasks/{id}/subtasks", s.handleUIAddSubtask)
	mux.HandleFunc("POST /tasks/{id}/subtasks/done-all", s.handleUIMarkAllSubtasks)
	mux.HandleFunc("POST /subtasks/{id}/toggle", s.handleUIToggleSubtask)
	mux.HandleFunc("POST /admin/create-table", s.handleUICreateTable)

	corsMiddleware := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return s.withRequestLogging(corsMiddleware.Handler(mux))
}
