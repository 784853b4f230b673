package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/caseflow/pkg/controller/http"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/repository/memory"
	"github.com/secmon-lab/caseflow/pkg/usecase"
)

type caller struct {
	t      *testing.T
	server http.Handler
	role   types.Role
	client string
}

func (c caller) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.role != "" {
		req.Header.Set(httpctrl.HeaderRole, string(c.role))
	}
	if c.client != "" {
		req.Header.Set(httpctrl.HeaderClient, c.client)
	}
	w := httptest.NewRecorder()
	c.server.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func newServer(t *testing.T) (http.Handler, *usecase.UseCases) {
	t.Helper()
	uc := usecase.New(memory.New())
	srv, err := httpctrl.New(uc)
	gt.NoError(t, err)
	return srv, uc
}

func submitBody() map[string]any {
	return map[string]any{
		"clientInfo": map[string]any{
			"clientName":        "Acme Corporation",
			"address":           "123 Business Ave",
			"dateOfInformation": "2024-01-15",
			"email":             "contact@acme.com",
		},
		"changeRequests": []map[string]any{
			{"hdiNumber": "HDI-001", "country": "United States", "typeOfChange": "Address Update"},
		},
		"documents": []map[string]any{
			{"name": "Proof of Address", "fileHandle": "blob-1"},
		},
	}
}

func TestNew(t *testing.T) {
	_, err := httpctrl.New(nil)
	gt.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	w := caller{t: t, server: srv}.do(http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
}

func TestActorHeaders(t *testing.T) {
	srv, _ := newServer(t)

	t.Run("missing role", func(t *testing.T) {
		w := caller{t: t, server: srv}.do(http.MethodGet, "/api/cases", nil)
		gt.Value(t, w.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("unknown role", func(t *testing.T) {
		w := caller{t: t, server: srv, role: "admin"}.do(http.MethodGet, "/api/cases", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestCaseLifecycle(t *testing.T) {
	srv, uc := newServer(t)
	client := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}
	okw := caller{t: t, server: srv, role: types.RoleOKW}
	cdd := caller{t: t, server: srv, role: types.RoleCDD}

	w := client.do(http.MethodPost, "/api/cases", submitBody())
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	created := decode[model.Case](t, w)
	gt.Value(t, created.Status).Equal(types.CaseStatusPending)
	gt.Value(t, created.CurrentAssignee).Equal(types.LabelSystem)
	gt.Value(t, created.SubmittedBy).Equal("acme")

	_, err := uc.Case.AssignIntake(t.Context(), created.ID)
	gt.NoError(t, err)

	base := "/api/cases/" + string(created.ID)

	t.Run("client cannot move the case", func(t *testing.T) {
		w := client.do(http.MethodPost, base+"/status", map[string]any{"status": "with-cdd"})
		gt.Value(t, w.Code).Equal(http.StatusForbidden)
	})

	t.Run("assignee must match target", func(t *testing.T) {
		w := okw.do(http.MethodPost, base+"/status", map[string]any{"status": "with-cdd", "assignee": "OKW Team"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		w := okw.do(http.MethodPost, base+"/status", map[string]any{"status": "archived"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	w = okw.do(http.MethodGet, base+"/permissions", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	perms := decode[model.Permissions](t, w)
	gt.Bool(t, perms.CanMoveForward).True()
	gt.Bool(t, perms.CanComment).True()

	w = okw.do(http.MethodPost, base+"/status", map[string]any{"status": "with-cdd", "assignee": "CDD Team"})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	moved := decode[model.Case](t, w)
	gt.Value(t, moved.Status).Equal(types.CaseStatusWithCDD)
	gt.Value(t, moved.CurrentAssignee).Equal(types.LabelCDD)

	t.Run("okw can no longer act", func(t *testing.T) {
		w := okw.do(http.MethodPost, base+"/status", map[string]any{"status": "approved"})
		gt.Value(t, w.Code).Equal(http.StatusForbidden)
	})

	w = cdd.do(http.MethodPost, base+"/status", map[string]any{"status": "approved"})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	approved := decode[model.Case](t, w)
	gt.Value(t, approved.Status).Equal(types.CaseStatusApproved)

	t.Run("decided case is no longer assigned", func(t *testing.T) {
		w := cdd.do(http.MethodPost, base+"/status", map[string]any{"status": "rejected"})
		gt.Value(t, w.Code).Equal(http.StatusForbidden)
	})

	t.Run("no transition leads into pending", func(t *testing.T) {
		w := cdd.do(http.MethodPost, base+"/status", map[string]any{"status": "pending"})
		gt.Value(t, w.Code).Equal(http.StatusConflict)
	})
}

func TestVisibility(t *testing.T) {
	srv, _ := newServer(t)
	acme := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}
	other := caller{t: t, server: srv, role: types.RoleClient, client: "globex"}
	okw := caller{t: t, server: srv, role: types.RoleOKW}

	w := acme.do(http.MethodPost, "/api/cases", submitBody())
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	created := decode[model.Case](t, w)

	w = other.do(http.MethodGet, "/api/cases/"+string(created.ID), nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)

	w = other.do(http.MethodGet, "/api/cases", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.A(t, decode[struct {
		Cases []model.Case `json:"cases"`
	}](t, w).Cases).Length(0)

	w = okw.do(http.MethodGet, "/api/cases?status=pending", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.A(t, decode[struct {
		Cases []model.Case `json:"cases"`
	}](t, w).Cases).Length(1)

	w = okw.do(http.MethodGet, "/api/cases?status=unknown", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestCommentsAndDocuments(t *testing.T) {
	srv, uc := newServer(t)
	client := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}
	okw := caller{t: t, server: srv, role: types.RoleOKW}

	w := client.do(http.MethodPost, "/api/cases", submitBody())
	created := decode[model.Case](t, w)
	_, err := uc.Case.AssignIntake(t.Context(), created.ID)
	gt.NoError(t, err)
	base := "/api/cases/" + string(created.ID)

	t.Run("client cannot comment", func(t *testing.T) {
		w := client.do(http.MethodPost, base+"/comments", map[string]any{"text": "hello", "target": "client-info"})
		gt.Value(t, w.Code).Equal(http.StatusForbidden)
	})

	w = okw.do(http.MethodPost, base+"/comments", map[string]any{"text": "Address verified", "target": "client-info"})
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	w = okw.do(http.MethodGet, base+"/comments", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	thread := decode[struct {
		Comments []model.Comment `json:"comments"`
	}](t, w).Comments
	gt.A(t, thread).Length(1)
	gt.Value(t, thread[0].Author).Equal(types.LabelOKW)

	w = okw.do(http.MethodPost, base+"/documents", map[string]any{"name": "Board Resolution"})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	withDoc := decode[model.Case](t, w)
	added := withDoc.Documents[len(withDoc.Documents)-1]
	gt.Value(t, added.Name).Equal("Board Resolution")
	gt.Bool(t, added.Uploaded).False()

	w = okw.do(http.MethodPut, base+"/documents/"+string(added.ID)+"/file", map[string]any{"fileHandle": "blob-2"})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	w = okw.do(http.MethodDelete, base+"/documents/"+string(added.ID), nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	removed := decode[model.Case](t, w)
	gt.A(t, removed.Documents).Length(len(withDoc.Documents) - 1)

	w = okw.do(http.MethodGet, base+"/required-documents", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[map[string]any](t, w)["anyRequired"]).Equal(any(true))
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newServer(t)
	client := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}

	w := client.do(http.MethodPost, "/api/cases", map[string]any{"unexpected": true})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestPreviewRequirements(t *testing.T) {
	srv, _ := newServer(t)
	client := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}

	w := client.do(http.MethodPost, "/api/requirements", map[string]any{
		"changeRequests": []map[string]any{
			{"hdiNumber": "HDI-001", "country": "US", "typeOfChange": "Address Update"},
			{"hdiNumber": "HDI-002", "country": "US", "typeOfChange": "Other"},
		},
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	resp := decode[struct {
		RequiredDocuments []string `json:"requiredDocuments"`
		AnyRequired       bool     `json:"anyRequired"`
	}](t, w)
	gt.Bool(t, resp.AnyRequired).True()
	gt.A(t, resp.RequiredDocuments).Length(1)
	gt.Value(t, resp.RequiredDocuments[0]).Equal("Proof of Address")
}

func TestReport(t *testing.T) {
	srv, _ := newServer(t)
	client := caller{t: t, server: srv, role: types.RoleClient, client: "acme"}
	cdd := caller{t: t, server: srv, role: types.RoleCDD}

	w := client.do(http.MethodPost, "/api/cases", submitBody())
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	w = client.do(http.MethodGet, "/api/report", nil)
	gt.Value(t, w.Code).Equal(http.StatusForbidden)

	w = cdd.do(http.MethodGet, "/api/report", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	report := decode[model.Report](t, w)
	gt.Value(t, report.Summary.TotalCases).Equal(1)
	gt.Value(t, report.Summary.StatusDistribution[types.CaseStatusPending]).Equal(1)
}
