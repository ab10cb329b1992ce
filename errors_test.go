package promesso

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorBuilders(t *testing.T) {
	base := NewError("E42", "widget missing")
	e := base.WithHTTPCode(404).WithHTTPResponse("no widget").WithCause(io.EOF)

	assert.Equal(t, 0, base.HTTPCode(), "builders must not modify the original")
	assert.Nil(t, base.HTTPResponse())

	assert.Equal(t, "E42", e.ErrorCode())
	assert.Equal(t, 404, e.HTTPCode())
	assert.Equal(t, "no widget", e.HTTPResponse())
	assert.ErrorIs(t, e, io.EOF)
	assert.Equal(t, "[E42] widget missing: EOF", e.Error())
	assert.Equal(t, "[E42] widget missing", base.Error())

	assert.Equal(t, "[X] 3 widgets", Errorf("X", "%d widgets", 3).Error())
	assert.Equal(t, "[Y] Not Found", Error{Code: "Y", HTTPStatus: 404}.Error())
}

func TestErrorIsDomainError(t *testing.T) {
	var derr DomainError
	assert.True(t, errors.As(ErrNotFound.WithCause(io.EOF), &derr))
	assert.Equal(t, "NOT_FOUND", derr.ErrorCode())
}
