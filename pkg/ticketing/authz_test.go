package ticketing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActorCanManage(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID string
		want    bool
	}{
		{
			name:    "owner can manage",
			actor:   Actor{ID: "user-1"},
			ownerID: "user-1",
			want:    true,
		},
		{
			name:    "stranger cannot manage",
			actor:   Actor{ID: "user-2"},
			ownerID: "user-1",
			want:    false,
		},
		{
			name:    "admin can manage",
			actor:   Actor{ID: "user-2", IsAdmin: true},
			ownerID: "user-1",
			want:    true,
		},
		{
			name:    "guild owner can manage",
			actor:   Actor{ID: "user-2", IsGuildOwner: true},
			ownerID: "user-1",
			want:    true,
		},
		{
			name:    "unknown owner requires privilege",
			actor:   Actor{ID: "user-1"},
			ownerID: "",
			want:    false,
		},
		{
			name:    "admin manages ticket with unknown owner",
			actor:   Actor{ID: "user-2", IsAdmin: true},
			ownerID: "",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.actor.CanManage(tt.ownerID))
		})
	}
}
