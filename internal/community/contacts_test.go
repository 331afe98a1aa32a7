package community

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    string
		wantErr bool
	}{
		{name: "service code", raw: "100", region: "IN", want: "100"},
		{name: "emergency code", raw: " 112 ", region: "IN", want: "112"},
		{name: "international", raw: "+91 98765 43210", region: "IN", want: "+919876543210"},
		{name: "national", raw: "98765-43210", region: "IN", want: "+919876543210"},
		{name: "international ignores region", raw: "+91 (98765) 43210", region: "US", want: "+919876543210"},
		{name: "too short", raw: "12345678", region: "IN", wantErr: true},
		{name: "letters", raw: "call-me", region: "IN", wantErr: true},
		{name: "blank", raw: "  ", region: "IN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if tt.wantErr {
				require.True(t, IsValidation(err), "expected validation error, got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDirectory(t *testing.T) {
	f := newFixture(t)
	dir := NewDirectory(f.db, "in")
	ctx := context.Background()
	sec := f.actor("sec", RoleSecretary)

	police, err := dir.Add(ctx, sec, ContactParams{Name: "Local station", Phone: "100", Category: "Police"})
	require.NoError(t, err)
	require.Equal(t, "police", police.Category)
	hospital, err := dir.Add(ctx, sec, ContactParams{Name: "City Hospital", Phone: "098765 43210", Category: "hospital", Description: "24x7"})
	require.NoError(t, err)
	require.Equal(t, "+919876543210", hospital.Phone)
	plumber, err := dir.Add(ctx, sec, ContactParams{Name: "Plumber", Phone: "+91 98765 43211"})
	require.NoError(t, err)
	require.Equal(t, "other", plumber.Category)

	list, err := dir.List(ctx, f.societyID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{"hospital", "other", "police"}, []string{list[0].Category, list[1].Category, list[2].Category})

	_, err = dir.Add(ctx, f.actor("alice", RoleResident), ContactParams{Name: "x", Phone: "100"})
	require.True(t, IsNotAuthorized(err))
	_, err = dir.Add(ctx, sec, ContactParams{Name: "x", Phone: "100", Category: "taxi"})
	require.True(t, IsValidation(err))

	require.True(t, IsNotAuthorized(dir.Remove(ctx, f.actor("guard", RoleWatchman), police.ID)))
	require.NoError(t, dir.Remove(ctx, sec, police.ID))
	require.True(t, IsNotFound(dir.Remove(ctx, sec, police.ID)))
}
