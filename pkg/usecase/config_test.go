package usecase_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hiroq/pipet/pkg/usecase"
)

func TestConfigService(t *testing.T) {
	t.Run("GenerateTemplate returns valid template", func(t *testing.T) {
		service := usecase.NewConfigService()
		template := service.GenerateTemplate()
		gt.NotEqual(t, "", template)
		gt.True(t, strings.Contains(template, "hooks:"))
		gt.True(t, strings.Contains(template, "step_success:"))
		gt.True(t, strings.Contains(template, "step_failure:"))
		gt.True(t, strings.Contains(template, "complete_success:"))
		gt.True(t, strings.Contains(template, "complete_failure:"))
		gt.True(t, strings.Contains(template, "PIPET_EXIT_CODE"))
	})

	t.Run("SaveTemplate creates file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")

		service := usecase.NewConfigService()
		err := service.SaveTemplate(configPath, false)
		gt.NoError(t, err)

		content, err := os.ReadFile(configPath)
		gt.NoError(t, err)
		gt.True(t, strings.Contains(string(content), "hooks:"))
	})

	t.Run("SaveTemplate fails without force when file exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")

		service := usecase.NewConfigService()

		err := service.SaveTemplate(configPath, false)
		gt.NoError(t, err)

		err = service.SaveTemplate(configPath, false)
		gt.Error(t, err)

		err = service.SaveTemplate(configPath, true)
		gt.NoError(t, err)
	})

	t.Run("Load parses valid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")

		yamlContent := `
hooks:
  step_failure:
    - type: command
      command: notify-send
      args: ["pipet", "step failed"]
  complete_failure:
    - type: slack
      webhook_url: https://hooks.slack.com/services/x/y/z
      message: "pipeline failed"
`
		err := os.WriteFile(configPath, []byte(yamlContent), 0644)
		gt.NoError(t, err)

		service := usecase.NewConfigService()
		config, err := service.Load(configPath)
		gt.NoError(t, err)
		gt.Equal(t, 1, len(config.Hooks.StepFailure))
		gt.Equal(t, "command", config.Hooks.StepFailure[0].Type)
		gt.Equal(t, 1, len(config.Hooks.CompleteFailure))
		gt.Equal(t, "slack", config.Hooks.CompleteFailure[0].Type)
	})

	t.Run("template parses back into a config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "template.yml")

		service := usecase.NewConfigService()
		gt.NoError(t, service.SaveTemplate(configPath, false))

		config, err := service.Load(configPath)
		gt.NoError(t, err)
		gt.Equal(t, 0, len(config.Hooks.StepSuccess))
	})

	t.Run("LoadFromDirectory with no config file found", func(t *testing.T) {
		tempDir := t.TempDir()
		configService := usecase.NewConfigService()

		config, path, err := configService.LoadFromDirectory(tempDir)
		gt.NoError(t, err)
		gt.V(t, config).NotNil()
		gt.Equal(t, path, "")
		gt.Equal(t, len(config.Hooks.StepSuccess), 0)
	})

	t.Run("LoadFromDirectory with .pipet.yml found", func(t *testing.T) {
		tempDir := t.TempDir()
		configService := usecase.NewConfigService()

		configPath := filepath.Join(tempDir, ".pipet.yml")
		configContent := `hooks:
  step_success:
    - type: command
      command: echo
`
		err := os.WriteFile(configPath, []byte(configContent), 0600)
		gt.NoError(t, err)

		config, loadedPath, err := configService.LoadFromDirectory(tempDir)
		gt.NoError(t, err)
		gt.Equal(t, loadedPath, configPath)
		gt.Equal(t, len(config.Hooks.StepSuccess), 1)
	})

	t.Run("LoadFromDirectory yml has priority over yaml", func(t *testing.T) {
		tempDir := t.TempDir()
		configService := usecase.NewConfigService()

		ymlPath := filepath.Join(tempDir, ".pipet.yml")
		yamlPath := filepath.Join(tempDir, ".pipet.yaml")

		ymlContent := `hooks:
  step_success:
    - type: command
      command: from-yml
`
		yamlContent := `hooks:
  step_success:
    - type: command
      command: from-yaml
`

		gt.NoError(t, os.WriteFile(ymlPath, []byte(ymlContent), 0600))
		gt.NoError(t, os.WriteFile(yamlPath, []byte(yamlContent), 0600))

		config, loadedPath, err := configService.LoadFromDirectory(tempDir)
		gt.NoError(t, err)
		gt.Equal(t, loadedPath, ymlPath)

		command, ok := config.Hooks.StepSuccess[0].Data["command"].(string)
		gt.True(t, ok)
		gt.Equal(t, command, "from-yml")
	})

	t.Run("LoadFromDirectory with invalid yaml content", func(t *testing.T) {
		tempDir := t.TempDir()
		configService := usecase.NewConfigService()

		configPath := filepath.Join(tempDir, ".pipet.yml")
		invalidContent := `hooks:
  step_success:
    - type command  # invalid yaml syntax
      command: echo
`
		gt.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0600))

		_, loadedPath, err := configService.LoadFromDirectory(tempDir)
		gt.Error(t, err)
		gt.Equal(t, loadedPath, configPath) // Path should still be returned even on error
	})

	t.Run("FindConfigInDirectory returns empty for bare dir", func(t *testing.T) {
		tempDir := t.TempDir()
		service := &usecase.ConfigService{}
		gt.Equal(t, "", service.FindConfigInDirectory(tempDir))
	})
}
