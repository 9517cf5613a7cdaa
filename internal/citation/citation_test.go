package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCitedSources(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single source with section detail",
			content: "Piedāvājumi jāiesniedz EIS sistēmā.\nAvots: Nolikums, 3. nodaļa",
			want:    []string{"Nolikums"},
		},
		{
			name:    "plural label with semicolons",
			content: "Sistēmai jānodrošina 99.5% pieejamība.\nAvoti: Nolikums; Tehniskā specifikācija",
			want:    []string{"Nolikums", "Tehniskā specifikācija"},
		},
		{
			name:    "no source line",
			content: "Atvainojiet, nevarēju atrast atbildi dokumentācijā.",
			want:    nil,
		},
		{
			name:    "comma separated document list",
			content: "Avoti: Nolikums, Līguma projekts",
			want:    []string{"Nolikums", "Līguma projekts"},
		},
		{
			name:    "free-text variations normalize to canonical names",
			content: "Avoti: iepirkuma nolikums; tehniskā specifikācija (2. pielikums); finanšu apkopojums",
			want:    []string{"Nolikums", "Tehniskā specifikācija", "Finanšu piedāvājumu apkopojums"},
		},
		{
			name:    "unknown name passes through verbatim",
			content: "Avots: Cits dokuments",
			want:    []string{"Cits dokuments"},
		},
		{
			name:    "duplicates removed preserving order",
			content: "Avoti: Nolikums; nolikuma 5. punkts; Līguma projekts",
			want:    []string{"Nolikums", "Līguma projekts"},
		},
		{
			name:    "case-insensitive label",
			content: "teksts\navots: Esošās situācijas apraksts",
			want:    []string{"Esošās situācijas procesu apraksts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCitedSources(tt.content))
		})
	}
}
