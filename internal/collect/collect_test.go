package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wayland"
)

func TestChooseProtocol(t *testing.T) {
	legacy := &wayland.Global{Name: 1, Interface: wayland.ForeignToplevelManagerInterface, Version: 3}
	modern := &wayland.Global{Name: 2, Interface: wayland.ForeignToplevelListInterface, Version: 1}

	tests := []struct {
		name    string
		legacy  *wayland.Global
		modern  *wayland.Global
		want    Protocol
		wantErr error
	}{
		{"both advertised prefers legacy", legacy, modern, ProtocolLegacy, nil},
		{"legacy only", legacy, nil, ProtocolLegacy, nil},
		{"modern only", nil, modern, ProtocolModern, nil},
		{"neither advertised", nil, nil, ProtocolNone, ErrUnsupported},
		{
			"legacy below floor falls back to modern",
			&wayland.Global{Interface: wayland.ForeignToplevelManagerInterface, Version: 2},
			modern,
			ProtocolModern,
			nil,
		},
		{
			"legacy below floor alone is unsupported",
			&wayland.Global{Interface: wayland.ForeignToplevelManagerInterface, Version: 2},
			nil,
			ProtocolNone,
			ErrUnsupported,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := chooseProtocol(tc.legacy, tc.modern)
			assert.Equal(t, tc.want, got)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	legacy := legacyCapabilities()
	assert.False(t, legacy.Identifier)
	assert.True(t, legacy.Activated)
	assert.True(t, legacy.Fullscreen)
	assert.True(t, legacy.Minimized)
	assert.True(t, legacy.Maximized)

	modern := modernCapabilities()
	assert.True(t, modern.Identifier)
	assert.False(t, modern.Activated)
	assert.False(t, modern.Fullscreen)
	assert.False(t, modern.Minimized)
	assert.False(t, modern.Maximized)
}

func TestLegacyAdapter_BuffersUntilDone(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.Title("draft")
	sink.Title("Editor")
	sink.AppID("editor.App")
	assert.Empty(t, store.Toplevels(), "nothing commits before done")

	sink.Done()
	require.Len(t, store.Toplevels(), 1)
	tl := store.Toplevels()[0]
	assert.Equal(t, "Editor", tl.Title.Value)
	assert.Equal(t, "editor.App", tl.AppID.Value)
}

func TestLegacyAdapter_DuplicateDone(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.Done()
	sink.Done()

	assert.Len(t, store.Toplevels(), 1)
}

func TestLegacyAdapter_StateReplacesAtomically(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.State([]wayland.ToplevelState{wayland.StateMaximized, wayland.StateActivated})
	// The server resends the complete set; the earlier flags must not stick.
	sink.State([]wayland.ToplevelState{wayland.StateFullscreen})
	sink.Done()

	tl := store.Toplevels()[0]
	assert.False(t, tl.Maximized)
	assert.False(t, tl.Activated)
	assert.False(t, tl.Minimized)
	assert.True(t, tl.Fullscreen)
}

func TestLegacyAdapter_UnknownStateIgnored(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.State([]wayland.ToplevelState{wayland.ToplevelState(99), wayland.StateMinimized})
	sink.Done()

	tl := store.Toplevels()[0]
	assert.True(t, tl.Minimized)
}

func TestLegacyAdapter_OutputMembership(t *testing.T) {
	store := snapshot.NewStore()
	out := store.RegisterOutput(9, 33, nil)
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.OutputEnter(9)
	sink.Done()

	tl := store.Toplevels()[0]
	assert.Equal(t, []*snapshot.Output{out}, tl.Outputs)
	assert.Equal(t, []*snapshot.Toplevel{tl}, out.Toplevels)
}

func TestLegacyAdapter_UnadvertisedOutputDropped(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newLegacyAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.OutputEnter(1234)
	sink.Done()

	// Membership is dropped, the toplevel itself survives in the bucket.
	require.Len(t, store.Toplevels(), 1)
	tl := store.Toplevels()[0]
	require.Len(t, tl.Outputs, 1)
	assert.True(t, tl.Outputs[0].Synthetic())
}

func TestModernAdapter_Identifier(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newModernAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.Title("Browser")
	sink.AppID("web.Browser")
	sink.Identifier("stable-1")
	sink.Done()

	tl := store.Toplevels()[0]
	assert.Equal(t, "stable-1", tl.Identifier.Value)
	// No output membership exists in this protocol.
	require.Len(t, tl.Outputs, 1)
	assert.True(t, tl.Outputs[0].Synthetic())
}

func TestModernAdapter_IdentifierResetAccepted(t *testing.T) {
	store := snapshot.NewStore()
	adapter := newModernAdapter(store)

	sink := adapter.NewToplevel(nil)
	sink.Identifier("stable-1")
	// Re-setting the identifier is a protocol violation, tolerated: the new
	// value wins.
	sink.Identifier("stable-2")
	sink.Done()

	assert.Equal(t, "stable-2", store.Toplevels()[0].Identifier.Value)
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "zwlr-foreign-toplevel-management-v1", ProtocolLegacy.String())
	assert.Equal(t, "ext-foreign-toplevel-list-v1", ProtocolModern.String())
	assert.Equal(t, "none", ProtocolNone.String())
}
