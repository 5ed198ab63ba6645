package assessmentController

import (
	"context"

	"kardetailing/internal/assessment"

	logger "github.com/Bparsons0904/goLogger"
)

type AssessmentController struct {
	log logger.Logger
}

type AssessmentControllerInterface interface {
	Questions() assessment.Catalog
	Resolve(ctx context.Context, req ResolveRequest) assessment.Result
}

type ResolveRequest struct {
	ServiceType string             `json:"serviceType"`
	Answers     assessment.Answers `json:"answers"`
}

func New() AssessmentControllerInterface {
	return &AssessmentController{
		log: logger.New("assessmentController"),
	}
}

func (ac *AssessmentController) Questions() assessment.Catalog {
	return assessment.Questions()
}

func (ac *AssessmentController) Resolve(ctx context.Context, req ResolveRequest) assessment.Result {
	result := assessment.Resolve(req.Answers, assessment.ServiceType(req.ServiceType))

	ac.log.TraceFromContext(ctx).Function("Resolve").Debug(
		"assessment resolved",
		"serviceType", result.ServiceType,
		"category", result.Category,
		"answered", result.Answered,
	)

	return result
}
