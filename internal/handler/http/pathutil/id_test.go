package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	const validID = "8c2b79e7-4b6e-4a5d-9a1e-0f78c5f0a3b2"

	tests := []struct {
		name      string
		path      string
		prefix    string
		wantID    string
		wantError error
	}{
		{
			name:   "valid article ID",
			path:   "/articles/" + validID,
			prefix: "/articles/",
			wantID: validID,
		},
		{
			name:      "invalid ID - not a uuid",
			path:      "/articles/abc",
			prefix:    "/articles/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - empty",
			path:      "/articles/",
			prefix:    "/articles/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - with extra path",
			path:      "/articles/" + validID + "/images",
			prefix:    "/articles/",
			wantError: ErrInvalidID,
		},
		{
			name:      "invalid ID - numeric",
			path:      "/articles/123",
			prefix:    "/articles/",
			wantError: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotErr := ExtractID(tt.path, tt.prefix)

			if gotID != tt.wantID {
				t.Errorf("ExtractID() id = %v, want %v", gotID, tt.wantID)
			}
			if !errors.Is(gotErr, tt.wantError) {
				t.Errorf("ExtractID() error = %v, want %v", gotErr, tt.wantError)
			}
		})
	}
}
