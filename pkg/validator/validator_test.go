package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(&sample{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&sample{Username: "al", Email: "nope"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)
	require.Equal(t, "username", failures[0].Field)
	require.Equal(t, "min", failures[0].Tag)
	require.Equal(t, "email", failures[1].Field)
}
