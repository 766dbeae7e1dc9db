package httpapi

import (
	"embed"
	"html/template"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// taskView is the shape of a task on the wire and on the dashboard.
type taskView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Date        string `json:"date"`
}

func newTaskView(t models.Task) taskView {
	return taskView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Done:        t.Done,
		Date:        t.LastModified.Format(common.TaskDateLayout),
	}
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}
