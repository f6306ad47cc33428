package rest

type Links struct {
	Self   string `json:"self"`
	Script string `json:"script"`
	Sample string `json:"sample,omitempty"`
}

type ExperimentSummary struct {
	Name       string `json:"name"`
	Filename   string `json:"filename"`
	SampleFile string `json:"sample_file"`
	Links      Links  `json:"links"`
}

type ListExperimentsResponse struct {
	Experiments []ExperimentSummary `json:"experiments"`
	Total       int                 `json:"total"`
}

type GetExperimentResponse struct {
	Name             string `json:"name"`
	Filename         string `json:"filename"`
	Code             string `json:"code"`
	ExecutionCommand string `json:"execution_command"`
	SampleFile       string `json:"sample_file"`
	SampleAvailable  bool   `json:"sample_available"`
	Links            Links  `json:"links"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
