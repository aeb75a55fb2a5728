package run

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
	"github.com/suzuki-shunsuke/leakreview/pkg/sarif"
)

const (
	ruleSecretDetected  = "secret-detected"
	fingerprintKey      = "leakreviewFinding/v1"
	sarifFilePermission = 0o644
)

// writeSARIF writes the findings to param.SARIFPath so that they can be uploaded to code scanning.
// The report is written even if there is no finding.
func (c *Controller) writeSARIF(findings []*finding.Finding) error {
	log := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "leakreview",
						InformationURI: "https://github.com/suzuki-shunsuke/leakreview",
						Rules: []sarif.Rule{
							{
								ID: ruleSecretDetected,
								ShortDescription: sarif.Message{
									Text: "A secret is committed to the repository",
								},
							},
						},
					},
				},
				Results: buildSARIFResults(findings),
			},
		},
	}
	b, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.param.SARIFPath, append(b, '\n'), sarifFilePermission); err != nil {
		return fmt.Errorf("write a SARIF file: %w", err)
	}
	return nil
}

func buildSARIFResults(findings []*finding.Finding) []sarif.Result {
	results := make([]sarif.Result, 0, len(findings))
	for _, f := range findings {
		level := "warning"
		msg := "Secret detected at line " + strconv.Itoa(f.Line) + " in file " + f.File
		if f.Detector != "" {
			msg = f.Detector + " secret detected at line " + strconv.Itoa(f.Line) + " in file " + f.File
		}
		if f.Verified {
			// Verified secrets are confirmed to be live.
			level = "error"
		}
		results = append(results, sarif.Result{
			RuleID:  ruleSecretDetected,
			Level:   level,
			Message: sarif.Message{Text: msg},
			Locations: []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: f.File,
						},
						Region: sarif.Region{
							StartLine: f.Line,
						},
					},
				},
			},
			PartialFingerprints: map[string]string{
				fingerprintKey: f.Detector + ":" + f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Commit,
			},
			Properties: &sarif.Properties{
				Detector: f.Detector,
				Verified: f.Verified,
				Commit:   f.Commit,
			},
		})
	}
	return results
}
