package server

import (
	"net/http"

	"tracker/internal/api"
	"tracker/internal/models"
)

func (s *Server) handleListSubtasks(w http.ResponseWriter, r *http.Request) {
	if !s.requireSchema(w, r) {
		return
	}

	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	subtasks, err := s.service.Subtasks(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, subtaskResponses(subtasks))
}

func (s *Server) handleCreateSubtask(w http.ResponseWriter, r *http.Request) {
	if !s.requireSchema(w, r) {
		return
	}

	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.SubtaskCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	subtasks, err := s.service.CreateSubtask(r.Context(), id, req.Title)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, subtaskResponses(subtasks))
}

func (s *Server) handleSetSubtaskDone(w http.ResponseWriter, r *http.Request) {
	if !s.requireSchema(w, r) {
		return
	}

	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.SubtaskDoneRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if err := s.service.MarkSubtask(r.Context(), id, req.Done); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllSubtasksDone(w http.ResponseWriter, r *http.Request) {
	if !s.requireSchema(w, r) {
		return
	}

	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.MarkAllSubtasksDone(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func subtaskResponses(subtasks []models.Subtask) []api.SubtaskResponse {
	resp := make([]api.SubtaskResponse, 0, len(subtasks))
	for _, subtask := range subtasks {
		resp = append(resp, api.SubtaskResponse{Subtask: subtask})
	}
	return resp
}
