package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

type createCaseRequest struct {
	ClientInfo     model.ClientInfo      `json:"clientInfo"`
	ChangeRequests []model.ChangeRequest `json:"changeRequests"`
	Documents      []model.Document      `json:"documents"`
}

type updateStatusRequest struct {
	Status   types.CaseStatus `json:"status"`
	Assignee string           `json:"assignee"`
}

type addCommentRequest struct {
	Text     string                `json:"text"`
	Target   types.CommentTarget   `json:"target"`
	TargetID model.ChangeRequestID `json:"targetId"`
}

type addAttachmentRequest struct {
	Name string `json:"name"`
}

type uploadAttachmentRequest struct {
	FileHandle string `json:"fileHandle"`
}

type requirementsRequest struct {
	ChangeRequests []model.ChangeRequest `json:"changeRequests"`
}

type requirementsResponse struct {
	RequiredDocuments []string `json:"requiredDocuments"`
	AnyRequired       bool     `json:"anyRequired"`
}

func caseIDParam(r *http.Request) model.CaseID {
	return model.CaseID(chi.URLParam(r, "caseID"))
}

func documentIDParam(r *http.Request) model.DocumentID {
	return model.DocumentID(chi.URLParam(r, "documentID"))
}

func listOptions(r *http.Request) ([]interfaces.ListCaseOption, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status, err := types.ParseCaseStatus(raw)
	if err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "unknown status filter", goerr.V(model.StatusKey, raw))
	}
	return []interfaces.ListCaseOption{interfaces.WithStatus(status)}, nil
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.Case.CreateCase(r.Context(), req.ClientInfo, req.ChangeRequests, req.Documents)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cases, err := s.uc.Case.VisibleCases(r.Context(), opts...)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cases": cases})
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	c, err := s.uc.Case.GetCase(r.Context(), caseIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) getPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := s.uc.Case.Permissions(r.Context(), caseIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, perms)
}

func (s *Server) getRequiredDocuments(w http.ResponseWriter, r *http.Request) {
	names, err := s.uc.Case.RequiredDocumentNames(r.Context(), caseIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, requirementsResponse{
		RequiredDocuments: names,
		AnyRequired:       len(names) > 0,
	})
}

func (s *Server) previewRequirements(w http.ResponseWriter, r *http.Request) {
	var req requirementsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	names := s.uc.Case.ResolveRequirements(req.ChangeRequests)
	writeJSON(w, r, http.StatusOK, requirementsResponse{
		RequiredDocuments: names,
		AnyRequired:       len(names) > 0,
	})
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if !req.Status.IsValid() {
		handleError(w, r, goerr.Wrap(model.ErrValidation, "unknown status", goerr.V(model.TargetStatusKey, req.Status)))
		return
	}

	updated, err := s.uc.Case.UpdateStatus(r.Context(), caseIDParam(r), req.Status, req.Assignee)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := types.CommentTargetClientInfo
	if raw := q.Get("target"); raw != "" {
		target = types.CommentTarget(raw)
	}

	comments, err := s.uc.Case.Comments(r.Context(), caseIDParam(r), target, model.ChangeRequestID(q.Get("targetId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"comments": comments})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.uc.Case.AddComment(r.Context(), caseIDParam(r), model.Comment{
		Text:     req.Text,
		Target:   req.Target,
		TargetID: req.TargetID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, updated)
}

func (s *Server) addAttachment(w http.ResponseWriter, r *http.Request) {
	var req addAttachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.uc.Case.AddAttachment(r.Context(), caseIDParam(r), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, updated)
}

func (s *Server) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	var req uploadAttachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.uc.Case.UploadAttachment(r.Context(), caseIDParam(r), documentIDParam(r), req.FileHandle)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) removeAttachment(w http.ResponseWriter, r *http.Request) {
	updated, err := s.uc.Case.RemoveAttachment(r.Context(), caseIDParam(r), documentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.uc.Report.Export(r.Context(), opts...)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
