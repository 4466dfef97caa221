package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hafriyat "github.com/goliatone/go-hafriyat"
	"github.com/goliatone/go-hafriyat/internal/config"
	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/testsupport"
	"github.com/goliatone/go-hafriyat/pkg/validation"
)

func newTestSite(t *testing.T) *hafriyat.Site {
	t.Helper()
	site, err := hafriyat.NewSite(testsupport.Context(), *config.DefaultConfig())
	require.NoError(t, err)
	return site
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "hafriyat.yml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSimulate_Success(t *testing.T) {
	result, err := simulate(testsupport.Context(), newTestSite(t), testsupport.ValidValues(), false)
	require.NoError(t, err)

	assert.Equal(t, model.StateIdleAfterSuccess.String(), result.State)
	assert.True(t, result.DefaultPrevented)
	assert.True(t, result.DialogShown)
	assert.Empty(t, result.Form.Errors)
	assert.Equal(t, model.DefaultSubmitLabel, result.Form.SubmitLabel)
	assert.False(t, result.Form.Disabled)
	for name, value := range result.Form.Values {
		assert.Emptyf(t, value, "field %s must be cleared", name)
	}
}

func TestSimulate_InvalidValues(t *testing.T) {
	values := testsupport.ValidValues()
	values[model.FieldEmail] = "ornek@"
	values[model.FieldName] = ""

	result, err := simulate(testsupport.Context(), newTestSite(t), values, false)
	require.NoError(t, err)

	assert.Equal(t, model.StateIdle.String(), result.State)
	assert.True(t, result.DefaultPrevented)
	assert.False(t, result.DialogShown)
	assert.Equal(t, validation.RequiredMessage(model.FieldName), result.Form.Errors[model.FieldName])
	assert.NotEmpty(t, result.Form.Errors[model.FieldEmail])
	assert.Equal(t, "ornek@", result.Form.Values[model.FieldEmail])
}

func TestSimulate_DeliveryFailure(t *testing.T) {
	result, err := simulate(testsupport.Context(), newTestSite(t), testsupport.ValidValues(), true)
	require.NoError(t, err)

	assert.Equal(t, model.StateIdle.String(), result.State)
	assert.False(t, result.DialogShown)
	assert.Equal(t, controller.SubmitFailedMessage, result.Form.FormError)
	assert.Equal(t, model.DefaultSubmitLabel, result.Form.SubmitLabel)
	assert.False(t, result.Form.Disabled)
	assert.Equal(t, testsupport.ValidValues()[model.FieldEmail], result.Form.Values[model.FieldEmail])
}

func TestSimulateCmd_PrintsJSON(t *testing.T) {
	values := testsupport.ValidValues()
	args := []string{"simulate"}
	for _, name := range []string{model.FieldName, model.FieldEmail, model.FieldPhone, model.FieldMessage} {
		args = append(args, "--"+name, values[name])
	}

	stdout, _, err := execute(t, args...)
	require.NoError(t, err)

	var got simulation
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, model.StateIdleAfterSuccess.String(), got.State)
	assert.True(t, got.DialogShown)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hafriyat "+Version+"\n", stdout)
}

func TestLinkCmd(t *testing.T) {
	stdout, stderr, err := execute(t, "link", "--message", "Merhaba")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "https://wa.me/"), stdout)
	assert.Contains(t, stdout, "text=Merhaba")
	assert.Contains(t, stderr, "placeholder")
}

func TestContactCmd_RejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "contact", "--format", "xml")
	require.Error(t, err)
}
