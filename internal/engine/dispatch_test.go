package engine

import (
	"testing"

	"github.com/Seven-Network/GameServer/internal/protocol"
)

func TestRoutingTablesCoverEveryTag(t *testing.T) {
	for _, tag := range protocol.AllTags() {
		unauth := unauthenticatedRoutes[tag] != nil
		auth := authenticatedRoutes[tag] != nil

		if tag == protocol.TagAuth {
			if !unauth || auth {
				t.Errorf("auth: unauthenticated=%v authenticated=%v, want true/false", unauth, auth)
			}
			continue
		}
		if unauth {
			t.Errorf("%s reachable before authentication", tag)
		}
		if !auth {
			t.Errorf("%s has no authenticated handler", tag)
		}
	}

	if unauthenticatedRoutes[protocol.TagUnknown] != nil || authenticatedRoutes[protocol.TagUnknown] != nil {
		t.Error("unknown tag must not be routed")
	}
}

func TestDecodeAuth(t *testing.T) {
	tests := []struct {
		name     string
		args     protocol.Args
		wantErr  bool
		wantHash string
		wantMap  string
	}{
		{
			name:     "full",
			args:     protocol.Args{true, "alpha", "Lilium", "Scar", map[string]any{"map": "Tundra"}, "abc"},
			wantHash: "abc",
			wantMap:  "Tundra",
		},
		{
			name: "no options or hash",
			args: protocol.Args{true, "alpha", "Lilium", "Scar"},
		},
		{
			name: "nil options",
			args: protocol.Args{true, "alpha", "Lilium", "Scar", nil, "none"},
			wantHash: "none",
		},
		{
			name:    "missing weapon",
			args:    protocol.Args{true, "alpha", "Lilium"},
			wantErr: true,
		},
		{
			name:    "numeric name",
			args:    protocol.Args{true, 5, "Lilium", "Scar"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := decodeAuth(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeAuth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Hash != tt.wantHash || p.RequestedMap() != tt.wantMap {
				t.Errorf("payload = %+v", p)
			}
		})
	}
}

func TestDecodeDamageHeadshotOptional(t *testing.T) {
	p, err := decodeDamage(protocol.Args{int8(3), 12.5})
	if err != nil {
		t.Fatalf("decodeDamage: %v", err)
	}
	if p.TargetID != 3 || p.Amount != 12.5 || p.Headshot {
		t.Errorf("payload = %+v", p)
	}
}
