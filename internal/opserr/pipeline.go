package opserr

import "fmt"

func NewPipelineError(message string, code string, context map[string]any) *Error {
	return New(message, code, context, false).with("PipelineError", ErrPipeline)
}

func NewBuildFailed(pipelineName string, buildNumber int, reason string) *Error {
	return NewPipelineError(
		fmt.Sprintf("Build #%d of '%s' failed: %s", buildNumber, pipelineName, reason),
		"BUILD_FAILED",
		map[string]any{
			"pipeline":     pipelineName,
			"build_number": buildNumber,
		},
	).with("BuildFailedError", ErrPipeline)
}

func NewArtifactNotFound(artifactPath string) *Error {
	return NewPipelineError(
		fmt.Sprintf("Artifact not found: %s", artifactPath),
		"ARTIFACT_NOT_FOUND",
		nil,
	).with("ArtifactNotFoundError", ErrPipeline)
}
