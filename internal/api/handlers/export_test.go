package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestExportHandler(t *testing.T) {
	router := setupTestRouter(testConfig(), nil)

	tests := []struct {
		name             string
		path             string
		expectedCode     int
		expectedFilename string
		expectedTracks   int
	}{
		{"major scale", "/api/v1/export/scale/C", http.StatusOK, `"C-major.mid"`, 1},
		{"minor scale low octave", "/api/v1/export/scale/La?type=minor&octave=2", http.StatusOK, `"A-minor.mid"`, 1},
		{"sharp chord", "/api/v1/export/chord/F%23m", http.StatusOK, `"Fsharpm.mid"`, 1},
		{"unicode sharp chord", "/api/v1/export/chord/F%E2%99%AFm", http.StatusOK, `filename="Fsharpm.mid"`, 1},
		{"spanish chord", "/api/v1/export/chord/Solm7", http.StatusOK, `filename="Gm7.mid"`, 1},
		{"diminished seventh", "/api/v1/export/chord/C%C2%B07", http.StatusOK, `filename="Cdim7.mid"`, 1},
		{"unknown root", "/api/v1/export/scale/H", http.StatusBadRequest, "", 0},
		{"unknown scale type", "/api/v1/export/scale/C?type=bebop", http.StatusBadRequest, "", 0},
		{"bad octave", "/api/v1/export/chord/Am?octave=12", http.StatusBadRequest, "", 0},
		{"bad chord", "/api/v1/export/chord/Q7", http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode != http.StatusOK {
				return
			}

			assert.Equal(t, midiContentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.expectedFilename)

			file, err := smf.ReadFrom(bytes.NewReader(w.Body.Bytes()))
			require.NoError(t, err)
			assert.Len(t, file.Tracks, tt.expectedTracks)
		})
	}
}
