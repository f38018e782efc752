package lferror_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLFError(t *testing.T) {
	err := lferror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, lferror.StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, lferror.StatusCode(lferror.InvalidParameter("bad")))
	assert.Equal(t, http.StatusForbidden, lferror.StatusCode(lferror.NewWithTagCode(http.StatusForbidden, "forbidden", "nope")))
	assert.Equal(t, http.StatusInternalServerError, lferror.StatusCode(errors.New("boom")))
}

func TestRender(t *testing.T) {
	b, err := json.Marshal(lferror.InvalidParameter("Unknown status."))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":{"tag":"invalid-parameter","message":"Unknown status."}}`, string(b))
}
