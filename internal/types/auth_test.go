//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request SignupRequest
		wantErr bool
		errTag  string
	}{
		{
			name: "valid request",
			request: SignupRequest{
				Name:            "Jane Doe",
				Email:           "jane@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
		},
		{
			name: "six character password is enough",
			request: SignupRequest{
				Name:            "Jane Doe",
				Email:           "jane@example.com",
				Password:        "abcdef",
				ConfirmPassword: "abcdef",
			},
		},
		{
			name: "missing name",
			request: SignupRequest{
				Email:           "jane@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
			wantErr: true,
			errTag:  "required",
		},
		{
			name: "invalid email format",
			request: SignupRequest{
				Name:            "Jane Doe",
				Email:           "not-an-email",
				Password:        "secret1",
				ConfirmPassword: "secret1",
			},
			wantErr: true,
			errTag:  "email",
		},
		{
			name: "password too short",
			request: SignupRequest{
				Name:            "Jane Doe",
				Email:           "jane@example.com",
				Password:        "abc",
				ConfirmPassword: "abc",
			},
			wantErr: true,
			errTag:  "min",
		},
		{
			name: "passwords differ",
			request: SignupRequest{
				Name:            "Jane Doe",
				Email:           "jane@example.com",
				Password:        "secret1",
				ConfirmPassword: "secret2",
			},
			wantErr: true,
			errTag:  "eqfield",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.errTag, verrs[0].Tag())
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "jane@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "jane", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "jane@example.com"}).Validate())
}

func TestAccount_JSONOmitsNothingSensitive(t *testing.T) {
	acct := Account{
		ID:        uuid.New(),
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(acct)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, acct.ID.String(), generic["uid"])
	assert.Equal(t, "2024-01-02T03:04:05Z", generic["created_at"])
	assert.NotContains(t, generic, "password")
}
