package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCaptureFlags() {
	captureURL = ""
	captureID = ""
	captureName = ""
}

func TestTemplateCmd_Use(t *testing.T) {
	assert.Equal(t, "template", templateCmd.Use)
	assert.Equal(t, "capture", templateCaptureCmd.Use)
	assert.Equal(t, "list", templateListCmd.Use)
	assert.Equal(t, "get [template-id]", templateGetCmd.Use)
	assert.Equal(t, "remove [template-id]", templateRemoveCmd.Use)
}

func TestTemplateCaptureCmd_RequiresReference(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCaptureFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"template", "capture"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--url or --id")
}

func TestTemplateCaptureCmd_ByURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCaptureFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"template", "capture",
		"--url", "https://wiki.example.com/spaces/ENG/pages/102/Onboarding",
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Captured template")
	assert.Contains(t, buf.String(), "Onboarding")
}

func TestTemplateCaptureCmd_UnparseableURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCaptureFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"template", "capture",
		"--url", "https://wiki.example.com/dashboard",
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find a page id")
}

func TestTemplateListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"template", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tpl-1")
	assert.Contains(t, buf.String(), "Base")
}

func TestTemplateRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"template", "remove", "tpl-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed template tpl-1")
}

func TestTemplateGetCmd_Missing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"template", "get", "tpl-nope"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
