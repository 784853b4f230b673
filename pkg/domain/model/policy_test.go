package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		name     string
		role     types.Role
		status   types.CaseStatus
		assignee string
		want     model.Permissions
	}{
		{
			name:     "okw may move a pending case forward without being assigned",
			role:     types.RoleOKW,
			status:   types.CaseStatusPending,
			assignee: types.LabelSystem,
			want:     model.Permissions{CanMoveForward: true},
		},
		{
			name:     "assigned okw on with-okw",
			role:     types.RoleOKW,
			status:   types.CaseStatusWithOKW,
			assignee: types.LabelOKW,
			want:     model.Permissions{CanComment: true, CanMoveForward: true},
		},
		{
			name:     "cdd looking at with-okw case",
			role:     types.RoleCDD,
			status:   types.CaseStatusWithOKW,
			assignee: types.LabelOKW,
			want:     model.Permissions{},
		},
		{
			name:     "assigned cdd on with-cdd",
			role:     types.RoleCDD,
			status:   types.CaseStatusWithCDD,
			assignee: types.LabelCDD,
			want:     model.Permissions{CanComment: true, CanApprove: true, CanReject: true},
		},
		{
			name:     "client on with-cdd",
			role:     types.RoleClient,
			status:   types.CaseStatusWithCDD,
			assignee: types.LabelCDD,
			want:     model.Permissions{},
		},
		{
			name:     "cdd on with-cdd assigned elsewhere",
			role:     types.RoleCDD,
			status:   types.CaseStatusWithCDD,
			assignee: "Someone Else",
			want:     model.Permissions{},
		},
		{
			name:     "decided case keeps only comment for assignee",
			role:     types.RoleCDD,
			status:   types.CaseStatusApproved,
			assignee: types.LabelCDD,
			want:     model.Permissions{CanComment: true},
		},
		{
			name:     "unknown role gets nothing",
			role:     types.Role("auditor"),
			status:   types.CaseStatusWithCDD,
			assignee: "",
			want:     model.Permissions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCase()
			c.Status = tt.status
			c.CurrentAssignee = tt.assignee

			first := model.PermissionsFor(tt.role, c)
			second := model.PermissionsFor(tt.role, c)
			gt.Value(t, first).Equal(tt.want)
			gt.Value(t, second).Equal(first)
		})
	}
}

func TestPermissions_Allows(t *testing.T) {
	all := model.Permissions{CanComment: true, CanApprove: true, CanReject: true, CanMoveForward: true}
	gt.Bool(t, all.Allows(model.TransitionMoveForward)).True()
	gt.Bool(t, all.Allows(model.TransitionApprove)).True()
	gt.Bool(t, all.Allows(model.TransitionReject)).True()
	gt.Bool(t, all.Allows(model.TransitionIntake)).False()

	gt.Bool(t, model.Permissions{}.Allows(model.TransitionApprove)).False()
}

func TestCheckTransition(t *testing.T) {
	c := newTestCase()
	c.Status = types.CaseStatusWithCDD
	c.CurrentAssignee = types.LabelCDD

	gt.NoError(t, model.CheckTransition(types.RoleCDD, c, model.TransitionApprove)).Required()
	gt.Error(t, model.CheckTransition(types.RoleClient, c, model.TransitionApprove)).Is(model.ErrPermissionDenied)
	gt.Error(t, model.CheckTransition(types.RoleOKW, c, model.TransitionReject)).Is(model.ErrPermissionDenied)
}

func TestVisibleCases(t *testing.T) {
	mine := newTestCase()
	mine.SubmittedBy = "acme"
	theirs := newTestCase()
	theirs.SubmittedBy = "globex"
	anonymous := newTestCase()
	anonymous.SubmittedBy = ""
	cases := []*model.Case{mine, theirs, anonymous}

	t.Run("client sees only own cases", func(t *testing.T) {
		visible := model.VisibleCases(model.Actor{Role: types.RoleClient, ClientRef: "acme"}, cases)
		gt.Array(t, visible).Length(1)
		gt.Value(t, visible[0].ID).Equal(mine.ID)
	})

	t.Run("client without reference sees nothing", func(t *testing.T) {
		visible := model.VisibleCases(model.Actor{Role: types.RoleClient}, cases)
		gt.Array(t, visible).Length(0)
	})

	t.Run("review teams see everything in order", func(t *testing.T) {
		for _, role := range []types.Role{types.RoleOKW, types.RoleCDD} {
			visible := model.VisibleCases(model.Actor{Role: role}, cases)
			gt.Array(t, visible).Length(3)
			gt.Value(t, visible[1].ID).Equal(theirs.ID)
		}
	})
}
