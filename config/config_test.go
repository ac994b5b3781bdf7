package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"response":"error it borked, bad request"}`, rr.Body.String())
}

func TestErrorStatusEscapesErrorText(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New(`unexpected "quoted" input`))

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, `error it borked, unexpected "quoted" input`, resp["response"])
}

func TestLocationDefaultsToUTC(t *testing.T) {
	conf := &Config{}
	assert.Equal(t, time.UTC, conf.Location())
}

func TestLocationInvalidFallsBackToUTC(t *testing.T) {
	conf := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, conf.Location())
}

func TestLocationResolvesValidZone(t *testing.T) {
	conf := &Config{Timezone: "America/Chicago"}
	loc := conf.Location()

	assert.Equal(t, "America/Chicago", loc.String())
}
