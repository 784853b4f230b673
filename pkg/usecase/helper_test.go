package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/repository/memory"
	"github.com/secmon-lab/caseflow/pkg/usecase"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*model.CaseEvent
	ch     chan *model.CaseEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan *model.CaseEvent, 16)}
}

func (n *recordingNotifier) Notify(ctx context.Context, event *model.CaseEvent) error {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
	n.ch <- event
	return nil
}

func (n *recordingNotifier) wait(t *testing.T) *model.CaseEvent {
	t.Helper()
	select {
	case ev := <-n.ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return nil
	}
}

func newUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, interfaces.Repository) {
	t.Helper()
	repo := memory.New()
	clock := testNow
	opts = append([]usecase.Option{usecase.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})}, opts...)
	return usecase.New(repo, opts...), repo
}

func actorCtx(role types.Role, clientRef string) context.Context {
	return model.ContextWithActor(context.Background(), model.Actor{Role: role, ClientRef: clientRef})
}

func clientCtx() context.Context { return actorCtx(types.RoleClient, "acme") }
func okwCtx() context.Context    { return actorCtx(types.RoleOKW, "") }
func cddCtx() context.Context    { return actorCtx(types.RoleCDD, "") }

func acmeInfo() model.ClientInfo {
	return model.ClientInfo{
		ClientName:        "Acme Corporation",
		Address:           "123 Business Ave",
		DateOfInformation: "2024-01-15",
		AccountID:         "C12345",
		Email:             "contact@acme.com",
	}
}

func addressChange() []model.ChangeRequest {
	return []model.ChangeRequest{
		{HDINumber: "HDI-001", Country: "United States", TypeOfChange: types.ChangeTypeAddressUpdate},
	}
}

// submitComplete creates a case whose required documents are all uploaded
func submitComplete(t *testing.T, uc *usecase.UseCases) *model.Case {
	t.Helper()
	created, err := uc.Case.CreateCase(clientCtx(), acmeInfo(), addressChange(), []model.Document{
		{Name: "Proof of Address", FileHandle: "blob:proof"},
	})
	gt.NoError(t, err).Required()
	return created
}

// moveTo drives a case into status using the proper actors
func moveTo(t *testing.T, uc *usecase.UseCases, id model.CaseID, status types.CaseStatus) *model.Case {
	t.Helper()
	var (
		c   *model.Case
		err error
	)
	switch status {
	case types.CaseStatusWithOKW:
		c, err = uc.Case.AssignIntake(context.Background(), id)
	case types.CaseStatusWithCDD:
		c, err = uc.Case.UpdateStatus(okwCtx(), id, status, "")
	case types.CaseStatusApproved, types.CaseStatusRejected:
		c, err = uc.Case.UpdateStatus(cddCtx(), id, status, "")
	}
	gt.NoError(t, err).Required()
	return c
}
