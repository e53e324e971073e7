package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/connmask/internal/application/dto"
)

const sensitiveKeyRuleID = "sensitive-key"

type sarifMapper struct {
	resp      *dto.PrintConfigResponse
	cwd       string
	artifacts map[string]*sarif.Artifact
}

func newSARIFMapper(resp *dto.PrintConfigResponse) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		resp:      resp,
		cwd:       cwd,
		artifacts: make(map[string]*sarif.Artifact),
	}
}

// mapToRun populates the SARIF run with the rule, results, artifacts, and invocation.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRule(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)
}

func (m *sarifMapper) addRule(run *sarif.Run) {
	name := "Sensitive configuration key"
	desc := "The value of a connector configuration key that holds credentials was masked before logging."

	rule := sarif.NewReportingDescriptor().WithID(sensitiveKeyRuleID)
	rule.WithName(name)
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &name})
	rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &desc})
	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "note"})

	run.Tool.Driver.AddRule(rule)
}

func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, printed := range m.resp.Printed {
		loc := m.createLocation(printed.Path)
		for _, key := range printed.MaskedKeys {
			result := sarif.NewRuleResult(sensitiveKeyRuleID)
			result.Level = "note"
			result.Kind = "informational"
			result.Message = sarif.NewTextMessage(
				fmt.Sprintf("Value of %s masked in %s configuration", key, printed.Component),
			)
			result.Locations = []*sarif.Location{loc}

			props := sarif.NewPropertyBag()
			props.Add("key", key)
			props.Add("component", printed.Component)
			result.WithProperties(props)

			run.AddResult(result)
		}
	}
}

func (m *sarifMapper) createLocation(path string) *sarif.Location {
	uri := m.normalizeURI(path)
	if _, ok := m.artifacts[uri]; !ok {
		m.artifacts[uri] = sarif.NewArtifact().
			WithLocation(sarif.NewArtifactLocation().WithURI(uri))
	}

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))
	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	for _, printed := range m.resp.Printed {
		uri := m.normalizeURI(printed.Path)
		if artifact, ok := m.artifacts[uri]; ok {
			run.AddArtifact(artifact)
			delete(m.artifacts, uri)
		}
	}
}

func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(true)

	if m.cwd != "" {
		cwd := "file://" + filepath.ToSlash(m.cwd)
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI(cwd)
	}

	props := sarif.NewPropertyBag()
	props.Add("runId", m.resp.RunID)
	props.Add("configurations", len(m.resp.Printed))
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}
