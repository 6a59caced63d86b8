package instance

import (
	"golang.org/x/text/language"

	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// View is a copy as rendered to clients, with the derived fields filled in.
type View struct {
	*BookInstance
	StatusLabel string `json:"status_label"`
	IsOverdue   bool   `json:"is_overdue"`
}

// NewView evaluates the derived fields for today in the given language.
func NewView(tag language.Tag, today date.Date, instance *BookInstance) *View {
	return &View{
		BookInstance: instance,
		StatusLabel:  instance.Status.Label(tag),
		IsOverdue:    instance.IsOverdue(today),
	}
}

// NewViews is [NewView] over a listing. It never returns nil.
func NewViews(tag language.Tag, today date.Date, instances []*BookInstance) []*View {
	if instances == nil {
		return []*View{}
	}
	return slice.Map(instances, func(instance *BookInstance) *View {
		return NewView(tag, today, instance)
	})
}

// RenewForm is what the renewal page needs to render.
type RenewForm struct {
	Instance    *View     `json:"instance"`
	RenewalDate date.Date `json:"renewal_date"`
	MinDate     date.Date `json:"min_date"`
	MaxDate     date.Date `json:"max_date"`
	HelpText    string    `json:"help_text"`
}
