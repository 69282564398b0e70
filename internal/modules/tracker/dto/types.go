package dto

type SaveEntryInput struct {
	ID     string
	Date   string
	Weight *float64
	Steps  *int
	Water  *int
}

type EntryOutput struct {
	ID     string
	Date   string
	Weight *float64
	Steps  *int
	Water  *int
}

// TodayOutput is today's entry; Draft entries have not been saved yet.
type TodayOutput struct {
	Entry EntryOutput
	Draft bool
}

type GoalsInput struct {
	DailySteps   int
	DailyWater   int
	TargetWeight *float64
}

type GoalsOutput struct {
	DailySteps   int
	DailyWater   int
	TargetWeight *float64
}

type ListEntriesInput struct {
	Ascending bool
}

// LoadDataOutput is the full snapshot the presentation layer renders from.
type LoadDataOutput struct {
	Entries []EntryOutput
	Goals   GoalsOutput
	Today   TodayOutput
}

type TimelineInput struct {
	Period string
}

type TimelinePointOutput struct {
	Date   string
	Weight *float64
	Steps  *int
	Water  *int
}

type TimelineOutput struct {
	Period string
	Points []TimelinePointOutput
}

type RebuildJournalOutput struct {
	Notes int
}
