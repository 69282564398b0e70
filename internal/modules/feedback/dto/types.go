package dto

import trackerdto "fittrack/internal/modules/tracker/dto"

type MessageOutput struct {
	Type     string
	Text     string
	Achieved bool
}

// FeedbackOutput is the evaluated feedback for one date.
type FeedbackOutput struct {
	Date     string
	Draft    bool
	Messages []MessageOutput
}

// EvaluateInput is an explicit snapshot for callers that already hold the data.
type EvaluateInput struct {
	Today   trackerdto.EntryOutput
	History []trackerdto.EntryOutput
	Goals   trackerdto.GoalsOutput
}
