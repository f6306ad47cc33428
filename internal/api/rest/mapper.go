package rest

import (
	"net/url"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

const experimentsPath = "/api/experiments/"

func experimentLinks(exp catalog.Experiment) Links {
	self := experimentsPath + url.PathEscape(exp.Name)
	links := Links{
		Self:   self,
		Script: self + "/script",
	}
	if shell.HasSample(exp) {
		links.Sample = self + "/sample"
	}
	return links
}

func toExperimentSummary(exp catalog.Experiment) ExperimentSummary {
	return ExperimentSummary{
		Name:       exp.Name,
		Filename:   exp.Filename,
		SampleFile: exp.SampleFile,
		Links:      experimentLinks(exp),
	}
}

func toGetExperimentResponse(exp catalog.Experiment) GetExperimentResponse {
	return GetExperimentResponse{
		Name:             exp.Name,
		Filename:         exp.Filename,
		Code:             exp.Code,
		ExecutionCommand: exp.ExecutionCommand,
		SampleFile:       exp.SampleFile,
		SampleAvailable:  shell.HasSample(exp),
		Links:            experimentLinks(exp),
	}
}
