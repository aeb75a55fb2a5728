package initcmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/suzuki-shunsuke/leakreview/refs/heads/main/json-schema/leakreview.json
# leakreview - https://github.com/suzuki-shunsuke/leakreview

# Annotate pull requests for every finding. By default only the first finding is processed.
# all_findings: true

# Exit with 1 even if the repository of a finding can't be located.
# strict: true

# comment_template: |
#   :rotating_light: Secret Detected :rotating_light:
#   {{.Detector}} secret detected at line {{.Line}} in file {{.File}}. Please review.

# timeout: 5m
# api_timeout: 30s
# comment_interval: 1s
# retry_max_elapsed_time: 1m
`
	filePermission os.FileMode = 0o644
)

// Init creates a configuration file unless it already exists.
func (c *Controller) Init(logE *logrus.Entry, configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		logE.WithField("config", configFilePath).Info("the configuration file already exists")
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	logE.WithField("config", configFilePath).Info("created a configuration file")
	return nil
}
