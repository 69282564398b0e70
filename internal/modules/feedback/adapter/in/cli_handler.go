package in

import (
	"context"
	"strings"

	"fittrack/internal/modules/feedback/dto"
	feedbackin "fittrack/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Feedback evaluates the entry for date, or today when date is empty.
func (h CLIHandler) Feedback(ctx context.Context, date string) (dto.FeedbackOutput, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return h.usecase.Today(ctx)
	}
	return h.usecase.ForDate(ctx, date)
}

func (h CLIHandler) Evaluate(input dto.EvaluateInput) []dto.MessageOutput {
	return h.usecase.Evaluate(input)
}
