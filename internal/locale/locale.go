// Package locale holds display strings and the date layout for each
// supported language.
package locale

import (
	"fmt"
	"strings"

	"routine/internal/dates"
)

type Key string

const (
	TodayHeading        Key = "today_heading"
	Description         Key = "description"
	Due                 Key = "due"
	CompletedOrPushBack Key = "completed_or_push_back"
	Category            Key = "category"
	NoItemsDue          Key = "no_items_due"
	Add                 Key = "add"
	EditSearch          Key = "edit_search"
	LookAheadBack       Key = "look_ahead_back"
	Snooze              Key = "snooze"
	MarkCompleted       Key = "mark_completed"
	InitiallyDue        Key = "initially_due"
	Frequency           Key = "frequency"
	Back                Key = "back"
	Submit              Key = "submit"
	TrackHistory        Key = "track_history"
	Yes                 Key = "yes"
	No                  Key = "no"
	DescriptionTaken    Key = "description_collision"
	NoApostrophes       Key = "no_apostrophes"
	InvalidDate         Key = "invalid_date"
	InvalidFrequency    Key = "invalid_frequency"
	From                Key = "from"
	To                  Key = "to"
	Look                Key = "look"
	Ahead               Key = "ahead"
	StartBeforeEnd      Key = "start_before_end"
	NoHistInRange       Key = "no_hist_in_range"
	NoItemsInRange      Key = "no_items_in_range"
	ItemsDueInRange     Key = "items_due_in_range"
	ItemsDoneInRange    Key = "items_completed_in_range"
	Remove              Key = "remove"
	ChangeDate          Key = "change_date"
	CompletedOn         Key = "completed_on"
	RepeatEvery         Key = "repeat_every"
	NotDue              Key = "not_due"
	ChangeDueDate       Key = "change_due_date"
	ChangeFreq          Key = "change_frequency"
	ChangeCategory      Key = "change_category"
	RemoveFromUpcoming  Key = "remove_from_upcoming"
	PurgeWarn           Key = "purge_warn"
	PurgeItem           Key = "purge_item"
	Success             Key = "success"
	PurgeSuccess        Key = "purge_success"
	DatabaseError       Key = "database_error"
	FatalNoAccess       Key = "fatal_no_access"
	TrackingFailed      Key = "tracking_failed"
	MarkCompleteFailed  Key = "mark_complete_failed"
	SnoozeFailed        Key = "snooze_failed"
	AddFailed           Key = "add_failed"
	ChangeCategoryFail  Key = "change_category_failed"
	ChangeDueDateFail   Key = "change_due_date_failed"
	FreqFailed          Key = "freq_failed"
	EditHistFailed      Key = "edit_hist_failed"
	RemoveHistFailed    Key = "remove_hist_failed"
	RemoveUpcomingFail  Key = "remove_upcoming_failed"
	PurgeFailed         Key = "purge_failed"
	LoadFailed          Key = "load_failed"
	History             Key = "history"
	Tasks               Key = "tasks"
	Days                Key = "days"
	Weeks               Key = "weeks"
	Months              Key = "months"
	Years               Key = "years"
	NoRepeat            Key = "no_repeat"
)

// Locale is chosen once at startup.
type Locale struct {
	Name    string
	Layout  dates.Layout
	strings map[Key]string
}

// T looks up a display string, falling back to English and then to the key.
func (l Locale) T(k Key) string {
	if s, ok := l.strings[k]; ok {
		return s
	}
	if s, ok := english[k]; ok {
		return s
	}
	return string(k)
}

// InvalidDateMessage appends the expected layout to the invalid date error.
func (l Locale) InvalidDateMessage() string {
	return l.T(InvalidDate) + l.Layout.Explain()
}

// Names lists the supported languages.
func Names() []string {
	return []string{"en", "es"}
}

// Lookup returns the locale for a language name.
func Lookup(name string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "en":
		return Locale{Name: "en", Layout: dates.Layout{Order: dates.MDY, Delimiter: "/"}, strings: english}, nil
	case "es":
		return Locale{Name: "es", Layout: dates.Layout{Order: dates.DMY, Delimiter: "-"}, strings: spanish}, nil
	}
	return Locale{}, fmt.Errorf("unsupported language %q", name)
}

// WithLayout overrides the language's default date layout.
func (l Locale) WithLayout(layout dates.Layout) Locale {
	l.Layout = layout
	return l
}
