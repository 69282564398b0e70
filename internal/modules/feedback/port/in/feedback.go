package in

import (
	"context"

	"fittrack/internal/modules/feedback/dto"
)

type Usecase interface {
	Today(ctx context.Context) (dto.FeedbackOutput, error)
	ForDate(ctx context.Context, date string) (dto.FeedbackOutput, error)
	Evaluate(input dto.EvaluateInput) []dto.MessageOutput
}
