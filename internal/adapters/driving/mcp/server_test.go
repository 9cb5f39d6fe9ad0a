package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("requires a search service", func(t *testing.T) {
		server, err := NewServer(&Ports{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSearchService)
		assert.Nil(t, server)
	})

	t.Run("search service alone is enough", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   Ports
		wantErr error
	}{
		{
			name:    "empty ports",
			ports:   Ports{},
			wantErr: ErrMissingSearchService,
		},
		{
			name:  "search only",
			ports: Ports{Search: &mockSearchService{}},
		},
		{
			name: "backend and history without search",
			ports: Ports{
				Backend: &mockBackendService{},
				History: &mockHistoryService{},
			},
			wantErr: ErrMissingSearchService,
		},
		{
			name: "all ports",
			ports: Ports{
				Search:  &mockSearchService{},
				Backend: &mockBackendService{},
				History: &mockHistoryService{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
