package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantMeta map[string]any
		wantBody string
		wantErr  error
	}{
		{
			name:     "with frontmatter",
			content:  "---\nSubject: Hi\nLayout: note.html\n---\nBody\n",
			wantMeta: map[string]any{"Subject": "Hi", "Layout": "note.html"},
			wantBody: "Body\n",
		},
		{
			name:     "windows line endings",
			content:  "---\r\nSubject: Hi\r\n---\r\nBody",
			wantMeta: map[string]any{"Subject": "Hi"},
			wantBody: "Body",
		},
		{
			name:     "no frontmatter",
			content:  "# Title\n",
			wantMeta: map[string]any{},
			wantBody: "# Title\n",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n\n---\nBody",
			wantMeta: map[string]any{},
			wantBody: "Body",
		},
		{
			name:    "missing closing delimiter",
			content: "---\nSubject: Hi\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "nothing after opening delimiter",
			content: "---\n",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "invalid yaml",
			content: "---\nSubject: [unclosed\n---\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTemplate([]byte(tt.content))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantMeta, got.Metadata)
			require.Equal(t, tt.wantBody, got.Body)
		})
	}
}
