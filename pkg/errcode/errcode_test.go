package errcode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidParam.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthorized.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrConvNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, ErrCustomerExists.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, (&Error{Code: 1}).HTTPStatus())
}

func TestError_WrapKeepsStatus(t *testing.T) {
	wrapped := ErrInvalidParam.Wrap(errors.New("fullName is required"))
	assert.Equal(t, http.StatusBadRequest, wrapped.HTTPStatus())
	assert.Equal(t, ErrInvalidParam.Code, wrapped.Code)
	assert.Contains(t, wrapped.Msg, "fullName is required")
	assert.True(t, errors.Is(wrapped, ErrInvalidParam))
	assert.Same(t, ErrInvalidParam, ErrInvalidParam.Wrap(nil))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	e := From(fmt.Errorf("outer: %w", ErrCustomerExists))
	assert.Equal(t, ErrCustomerExists.Code, e.Code)

	raw := From(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, raw.HTTPStatus())
	assert.Equal(t, "connection reset", raw.Msg)
}
