package adapter

import (
	"fmt"

	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
		}
	}

	return api.JobResponse{
		Id:         job.Id,
		Status:     string(job.Status),
		Step:       string(job.CurrentStep),
		SourceName: job.JobPayload.SourceName,
		DocId:      job.JobPayload.DocId,
		StartTime:  job.CreatedTime,
		EndTime:    job.EndTime,
		Error:      errorPtr,
	}
}

func BadRequest(id string, error string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Id:     id,
		Detail: error,
		Code:   code,
	}
}
