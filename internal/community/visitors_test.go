package community

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterVisitor(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	ctx := context.Background()

	visitor, err := desk.Register(ctx, f.actor("guard", RoleWatchman), VisitorParams{
		VisitorName: "  Ravi  ",
		Purpose:     "Delivery",
		FlatNumber:  "A-101",
		ResidentID:  "alice",
	})
	require.NoError(t, err)
	require.Equal(t, VisitorPending, visitor.Status)
	require.Equal(t, "Ravi", visitor.VisitorName)
	require.Equal(t, "guard", visitor.CreatedBy)
	require.Equal(t, "alice", visitor.ResidentID)
	require.Empty(t, visitor.DecidedBy)

	_, err = desk.Register(ctx, f.actor("alice", RoleResident), VisitorParams{VisitorName: "Ravi", Purpose: "Delivery", FlatNumber: "A-101"})
	require.True(t, IsNotAuthorized(err), "residents do not staff the gate: %v", err)
}

func TestRegisterVisitorValidation(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	guard := f.actor("guard", RoleWatchman)

	tests := []struct {
		name   string
		params VisitorParams
		field  string
	}{
		{"blank name", VisitorParams{VisitorName: " ", Purpose: "Delivery", FlatNumber: "A-101"}, "visitor_name"},
		{"blank flat", VisitorParams{VisitorName: "Ravi", Purpose: "Delivery"}, "flat_number"},
		{"blank purpose", VisitorParams{VisitorName: "Ravi", FlatNumber: "A-101"}, "purpose"},
		{"unknown resident", VisitorParams{VisitorName: "Ravi", Purpose: "Delivery", FlatNumber: "A-101", ResidentID: "ghost"}, "resident_id"},
		{"watchman as resident", VisitorParams{VisitorName: "Ravi", Purpose: "Delivery", FlatNumber: "A-101", ResidentID: "guard"}, "resident_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := desk.Register(context.Background(), guard, tt.params)
			var validation ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestDecideVisitorIsOneWay(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	ctx := context.Background()

	visitor, err := desk.Register(ctx, f.actor("guard", RoleWatchman), VisitorParams{
		VisitorName: "Ravi", Purpose: "Delivery", FlatNumber: "A-101", ResidentID: "alice",
	})
	require.NoError(t, err)

	_, err = desk.Decide(ctx, f.actor("bob", RoleResident), visitor.ID, VisitorApproved)
	require.True(t, IsNotAuthorized(err), "only the addressed resident decides: %v", err)
	_, err = desk.Decide(ctx, f.actor("guard", RoleWatchman), visitor.ID, VisitorApproved)
	require.True(t, IsNotAuthorized(err), "watchmen never decide: %v", err)
	_, err = desk.Decide(ctx, f.actor("alice", RoleResident), visitor.ID, VisitorPending)
	require.True(t, IsValidation(err))

	approved, err := desk.Decide(ctx, f.actor("alice", RoleResident), visitor.ID, VisitorApproved)
	require.NoError(t, err)
	require.Equal(t, VisitorApproved, approved.Status)
	require.Equal(t, "alice", approved.DecidedBy)

	_, err = desk.Decide(ctx, f.actor("sec", RoleSecretary), visitor.ID, VisitorRejected)
	var transition TransitionError
	require.ErrorAs(t, err, &transition)
	require.Equal(t, VisitorApproved, transition.From)

	stored, err := desk.Get(ctx, f.societyID, visitor.ID)
	require.NoError(t, err)
	require.Equal(t, VisitorApproved, stored.Status)
}

func TestDecideUnaddressedVisitor(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	ctx := context.Background()

	open, err := desk.Register(ctx, f.actor("guard", RoleWatchman), VisitorParams{VisitorName: "Plumber", Purpose: "Repair", FlatNumber: "B-2"})
	require.NoError(t, err)
	rejected, err := desk.Decide(ctx, f.actor("bob", RoleResident), open.ID, VisitorRejected)
	require.NoError(t, err)
	require.Equal(t, VisitorRejected, rejected.Status)

	other, err := desk.Register(ctx, f.actor("sec", RoleSecretary), VisitorParams{VisitorName: "Cab", Purpose: "Pickup", FlatNumber: "A-101", ResidentID: "alice"})
	require.NoError(t, err)
	_, err = desk.Decide(ctx, f.actor("sec", RoleSecretary), other.ID, VisitorApproved)
	require.NoError(t, err, "managers decide any request")
}

func TestDecideVisitorOtherSociety(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	ctx := context.Background()

	visitor, err := desk.Register(ctx, f.actor("guard", RoleWatchman), VisitorParams{VisitorName: "Ravi", Purpose: "Delivery", FlatNumber: "A-101"})
	require.NoError(t, err)

	outsider := Actor{UserID: "sec", SocietyID: "another-society", Role: RoleSecretary}
	_, err = desk.Decide(ctx, outsider, visitor.ID, VisitorApproved)
	require.True(t, IsNotFound(err), "expected not found, got %v", err)
}

func TestListVisitors(t *testing.T) {
	f := newFixture(t)
	desk := NewVisitorDesk(f.db)
	ctx := context.Background()
	guard := f.actor("guard", RoleWatchman)

	first, err := desk.Register(ctx, guard, VisitorParams{VisitorName: "First", Purpose: "Visit", FlatNumber: "A-1"})
	require.NoError(t, err)
	second, err := desk.Register(ctx, guard, VisitorParams{VisitorName: "Second", Purpose: "Visit", FlatNumber: "A-2"})
	require.NoError(t, err)
	_, err = desk.Decide(ctx, f.actor("alice", RoleResident), first.ID, VisitorApproved)
	require.NoError(t, err)

	all, err := desk.List(ctx, f.societyID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, second.ID, all[0].ID, "newest first")

	pending, err := desk.List(ctx, f.societyID, VisitorPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)

	_, err = desk.List(ctx, f.societyID, "expired")
	require.True(t, IsValidation(err))
}
