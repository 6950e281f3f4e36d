package history

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"redtomato/internal/storage"
)

// Window lists recently completed focus phases.
type Window struct {
	window  fyne.Window
	list    *widget.List
	empty   *widget.Label
	records []storage.FocusRecord
}

// New creates a history window.
func New(app fyne.App) *Window {
	window := app.NewWindow("Focus History")

	historyWindow := &Window{window: window}
	historyWindow.list = widget.NewList(
		func() int {
			return len(historyWindow.records)
		},
		func() fyne.CanvasObject {
			task := widget.NewLabel("task")
			task.TextStyle = fyne.TextStyle{Bold: true}
			return container.NewVBox(task, widget.NewLabel("detail"))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(historyWindow.records) {
				return
			}
			record := historyWindow.records[id]
			box := item.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(taskTitle(record.Task))
			box.Objects[1].(*widget.Label).SetText(recordDetail(record))
		},
	)

	historyWindow.empty = widget.NewLabel("No completed pomodoros yet.")
	historyWindow.empty.Hide()

	window.SetContent(container.NewStack(historyWindow.list, container.NewCenter(historyWindow.empty)))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return historyWindow
}

// Show displays the window with the given records, newest first.
func (historyWindow *Window) Show(records []storage.FocusRecord) {
	historyWindow.records = records
	if len(records) == 0 {
		historyWindow.empty.Show()
	} else {
		historyWindow.empty.Hide()
	}
	historyWindow.list.Refresh()
	historyWindow.window.Show()
	historyWindow.window.RequestFocus()
}

func taskTitle(task string) string {
	if task == "" {
		return "(no task)"
	}
	return task
}

func recordDetail(record storage.FocusRecord) string {
	minutes := record.DurationSeconds / 60
	return fmt.Sprintf("%d min · %s",
		minutes,
		record.CompletedAt.Local().Format("2006-01-02 15:04"),
	)
}
