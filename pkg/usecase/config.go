package usecase

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/hiroq/pipet/pkg/domain"
	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

type configService struct{}

// NewConfigService creates a service for hooks configuration files
func NewConfigService() interfaces.ConfigService {
	return &configService{}
}

var _ interfaces.ConfigService = &configService{}

// Load parses a hooks config file
func (c *configService) Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is a user-supplied config file
	if err != nil {
		return nil, domain.ErrConfiguration.Wrap(err)
	}

	var config model.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, domain.ErrConfiguration.Wrap(err)
	}

	return &config, nil
}

// LoadDefault loads the config from the default path, returning an
// empty config when the file does not exist.
func (c *configService) LoadDefault() (*model.Config, error) {
	path := c.GetDefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &model.Config{}, nil
	}
	return c.Load(path)
}

// LoadFromDirectory looks for .pipet.yml (then .pipet.yaml) in dir.
// Returns the loaded config and the path it came from; an empty config
// and empty path when neither file exists.
func (c *configService) LoadFromDirectory(dir string) (*model.Config, string, error) {
	path := c.findConfigInDirectory(dir)
	if path == "" {
		return &model.Config{}, "", nil
	}

	config, err := c.Load(path)
	if err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func (c *configService) findConfigInDirectory(dir string) string {
	for _, name := range []string{".pipet.yml", ".pipet.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (c *configService) GetDefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "pipet", "config.yml")
}

// GenerateTemplate returns a commented hooks config template
func (c *configService) GenerateTemplate() string {
	return `# pipet hooks configuration
#
# Events:
#   step_success      - a step exited 0
#   step_failure      - a step exited non-zero
#   complete_success  - every step exited 0
#   complete_failure  - the pipeline aborted on a failing step
#
# Hook commands receive the event through environment variables:
#   PIPET_EVENT_TYPE, PIPET_PIPELINE, PIPET_STEP, PIPET_EXIT_CODE

hooks:
  step_success: []

  step_failure:
    # - type: command
    #   command: notify-send
    #   args: ["pipet", "step $PIPET_STEP failed ($PIPET_EXIT_CODE)"]

  complete_success:
    # - type: slack
    #   webhook_url: $SLACK_WEBHOOK_URL
    #   message: "pipeline {{.Pipeline}} passed"
    #   color: good

  complete_failure:
    # - type: slack
    #   webhook_url: $SLACK_WEBHOOK_URL
    #   message: "pipeline {{.Pipeline}} failed at {{.Step}} (exit {{.ExitCode}})"
    #   color: danger
`
}

// SaveTemplate writes the template to path, refusing to overwrite
// unless force is set.
func (c *configService) SaveTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return goerr.New("config file already exists: " + path + " (use --force to overwrite)")
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return domain.ErrConfiguration.Wrap(err)
		}
	}

	if err := os.WriteFile(path, []byte(c.GenerateTemplate()), 0600); err != nil {
		return domain.ErrConfiguration.Wrap(err)
	}

	return nil
}
