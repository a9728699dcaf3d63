package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserBeforeSave_NormalizesEmail(t *testing.T) {
	user := &User{Email: "  Laura.Williams@Example.COM "}
	assert.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, "laura.williams@example.com", user.Email)
}
