package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/schoolapi/common/model"
)

func TestDecodeAPIError_Detail(t *testing.T) {
	err := model.DecodeAPIError(401, []byte(`{"detail": "Token is invalid or expired"}`))
	assert.Equal(t, 401, err.StatusCode)
	assert.Equal(t, "Token is invalid or expired", err.Message)
	assert.Empty(t, err.Fields)
}

func TestDecodeAPIError_FieldErrors(t *testing.T) {
	body := `{"start_date": ["This field is required."], "reason": ["This field may not be blank."]}`
	err := model.DecodeAPIError(400, []byte(body))

	assert.Equal(t, "validation failed", err.Message)
	require.Len(t, err.Fields, 2)
	assert.Equal(t, []string{"This field is required."}, err.Fields["start_date"])
	assert.Contains(t, err.Error(), "start_date")
}

func TestDecodeAPIError_SingleStringField(t *testing.T) {
	err := model.DecodeAPIError(400, []byte(`{"status": "invalid choice"}`))
	assert.Equal(t, []string{"invalid choice"}, err.Fields["status"])
}

func TestDecodeAPIError_NonJSONBody(t *testing.T) {
	err := model.DecodeAPIError(502, []byte("<html>bad gateway</html>"))
	assert.Equal(t, 502, err.StatusCode)
	assert.Equal(t, "Bad Gateway", err.Message)
}
