package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-ops/balancer"
	"github.com/Dosada05/tournament-ops/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"team_size": 3}`, ""},
		{"empty", ``, "body must not be empty"},
		{"syntax", `{"team_size": }`, "badly-formed JSON"},
		{"wrong type", `{"team_size": "three"}`, `incorrect JSON type for field "team_size"`},
		{"unknown key", `{"team_size": 3, "extra": 1}`, `unknown key "extra"`},
		{"two values", `{"team_size": 3}{"team_size": 4}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var input services.AssembleLineupInput
			err := readJSON(httptest.NewRecorder(), req, &input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, 3, input.TeamSize)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: bad tier", services.ErrValidationFailed), http.StatusBadRequest},
		{balancer.ErrNoPlayersSelected, http.StatusUnprocessableEntity},
		{&balancer.UnsupportedSizeError{Size: 0}, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
