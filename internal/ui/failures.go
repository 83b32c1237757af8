package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"cfr/internal/analysis"
	"cfr/internal/archive"
	"cfr/internal/config"
	"cfr/internal/domain"
	"cfr/internal/parser"
	"cfr/internal/remediation"
	"cfr/internal/storage"
	"cfr/internal/triage"
)

// FailureViewer displays grouped test cases and records triage decisions
type FailureViewer struct {
	config  *config.Config
	storage storage.Storage
	archive archive.Archive
	log     logrus.FieldLogger
}

// NewFailureViewer creates a new FailureViewer. The archive is used to export screenshots.
func NewFailureViewer(cfg *config.Config, st storage.Storage, a archive.Archive, log logrus.FieldLogger) *FailureViewer {
	return &FailureViewer{
		config:  cfg,
		storage: st,
		archive: a,
		log:     log,
	}
}

// row is one line of the list: a group header (item < 0) or a test case
type row struct {
	group int
	item  int
}

func buildRows(groups []domain.FailureGroup) []row {
	var rows []row
	for g, group := range groups {
		rows = append(rows, row{group: g, item: -1})
		for i := range group.Items {
			rows = append(rows, row{group: g, item: i})
		}
	}
	return rows
}

// View displays the result and blocks until the user quits
func (fv *FailureViewer) View(ctx context.Context, result *domain.Result, state *triage.State) error {
	if len(result.Groups) == 0 {
		color.Green("✓ No test cases found!")
		return nil
	}

	groups := result.Groups
	rows := buildRows(groups)

	app := tview.NewApplication()
	pages := tview.NewPages()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for _, r := range rows {
		list.AddItem(rowText(groups, r, state), "", 0, nil)
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	statusView := tview.NewTextView().
		SetDynamicColors(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	setStatus := func(format string, args ...interface{}) {
		statusView.SetText(fmt.Sprintf(format, args...))
	}

	updateHeader := func() {
		headerView.SetText(headerText(result, state))
	}

	refreshRows := func() {
		for i, r := range rows {
			list.SetItemText(i, rowText(groups, r, state), "")
		}
		updateHeader()
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(rows) {
			return
		}
		r := rows[index]
		group := groups[r.group]
		if r.item < 0 {
			statsView.SetText(fmt.Sprintf("[cyan]group:[white] [yellow]%s[white] (%d)", tview.Escape(group.Title()), len(group.Items)))
			detailsView.SetText(formatGroupDetails(group, state))
			return
		}
		item := group.Items[r.item]
		statsView.SetText(formatItemStats(item))
		detailsView.SetText(formatItemDetails(item, group.Title(), state))
	}

	save := func() {
		if err := fv.storage.SaveState(result.ArchiveHash, result.Source, state); err != nil {
			fv.log.WithError(err).Warn("Failed to save triage state")
			setStatus("[red]Failed to save triage state: %s[white]", tview.Escape(err.Error()))
		}
	}

	changed := func() {
		refreshRows()
		updateDetails()
		save()
	}

	closeModal := func() {
		pages.RemovePage("modal")
		app.SetFocus(list)
	}

	showCommand := func() {
		modal := tview.NewModal().
			SetText(remediation.BatchRevertCommand(state.SelectedFiles())).
			AddButtons([]string{"Close"}).
			SetDoneFunc(func(int, string) { closeModal() })
		pages.AddPage("modal", modal, true, true)
		app.SetFocus(modal)
	}

	exportScreenshots := func(item *domain.TestCase) {
		if len(item.Attachments) == 0 {
			setStatus("[yellow]No screenshots attached to %s[white]", tview.Escape(item.TestName))
			return
		}
		dir := fv.config.GetExportDir()
		written, err := archive.Export(ctx, fv.archive, item.Attachments, dir)
		if err != nil {
			fv.log.WithError(err).WithField("test", item.TestName).Warn("Failed to export screenshots")
			setStatus("[yellow]Screenshot export failed: %s[white]", tview.Escape(err.Error()))
			return
		}
		setStatus("[green]Exported %d screenshot(s) to %s[white]", len(written), tview.Escape(dir))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			index := list.GetCurrentItem()
			if index < 0 || index >= len(rows) {
				return event
			}
			r := rows[index]
			group := groups[r.group]

			switch event.Rune() {
			case ' ', 'b', 'B':
				if r.item < 0 {
					state.SelectGroup(group, !state.GroupSelected(group))
				} else if file := group.Items[r.item].TestFile; file != "" {
					state.ToggleSelected(file)
				}
				changed()
				return nil
			case 'r', 'R':
				if r.item >= 0 {
					if file := group.Items[r.item].TestFile; file != "" {
						state.ToggleReviewed(file)
						changed()
					}
				}
				return nil
			case 'a', 'A':
				state.SelectGroup(group, !state.GroupSelected(group))
				changed()
				return nil
			case 'c', 'C':
				showCommand()
				return nil
			case 'e', 'E':
				if r.item >= 0 {
					exportScreenshots(group.Items[r.item])
				}
				return nil
			case 'q', 'Q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()
	setStatus("[gray]space/b rollback · r reviewed · a select group · c command · e export screenshots · → details · Ctrl+C quit[white]")

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true).
		AddItem(statusView, 1, 0, false)
	pages.AddPage("main", mainLayout, true, true)

	if err := app.SetRoot(pages, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(result *domain.Result, state *triage.State) string {
	return fmt.Sprintf(" %s | [red]%d failed[white] of %d in %d group(s) | [yellow]%d[white] selected for rollback ",
		tview.Escape(result.Source), result.Stats.Failed, result.Stats.TotalTests,
		result.Stats.GroupCount, len(state.SelectedFiles()))
}

// rowText returns the list label of a row. Processed test cases are dimmed.
func rowText(groups []domain.FailureGroup, r row, state *triage.State) string {
	group := groups[r.group]
	if r.item < 0 {
		check := "[ ]"
		if len(group.TestFiles()) > 0 && state.GroupSelected(group) {
			check = "[x]"
		}
		return fmt.Sprintf("[yellow]%s %s[white] (%d)", tview.Escape(check), tview.Escape(group.Title()), len(group.Items))
	}

	item := group.Items[r.item]
	name := tview.Escape(item.TestName)
	switch {
	case item.TestFile != "" && state.IsSelected(item.TestFile):
		return fmt.Sprintf("  [gray]%s %s[white]", tview.Escape("[rollback]"), name)
	case item.TestFile != "" && state.IsReviewed(item.TestFile):
		return fmt.Sprintf("  [gray]%s %s[white]", tview.Escape("[reviewed]"), name)
	case item.IsFailure():
		return fmt.Sprintf("  [red]✗[white] %s", name)
	default:
		return fmt.Sprintf("  [green]✓[white] %s", name)
	}
}

func formatItemStats(item *domain.TestCase) string {
	path := item.TestFile
	if path == "" {
		path = "Unknown path"
	}
	line := fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]", tview.Escape(path), tview.Escape(item.TestName))
	if item.Time != "" {
		line += fmt.Sprintf(" [gray]%ss[white]", tview.Escape(item.Time))
	}
	return line + "\n"
}

// formatItemDetails formats a test case for display using tview color tags
func formatItemDetails(item *domain.TestCase, reason string, state *triage.State) string {
	var b strings.Builder

	if item.IsFailure() {
		fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(reason))
	} else {
		fmt.Fprintf(&b, "[green]✓ %s[white]\n\n", parser.SuccessReason)
	}

	if item.TestFile != "" {
		status := "none"
		switch {
		case state.IsSelected(item.TestFile):
			status = "[red]rollback[white]"
		case state.IsReviewed(item.TestFile):
			status = "[gray]reviewed[white]"
		}
		fmt.Fprintf(&b, "[cyan]Triage:[white] %s\n\n", status)
	}

	for _, d := range item.InitialDetails() {
		writeDetailRows(&b, d, false)
	}
	if retries := item.RetryDetails(); len(retries) > 0 {
		fmt.Fprintf(&b, "[yellow]Retries (%d)[white]\n", len(retries))
		for _, d := range retries {
			writeDetailRows(&b, d, true)
		}
	}

	if item.FailureText != "" {
		fmt.Fprintf(&b, "[yellow]Failure Details:[white]\n%s\n\n", tview.Escape(item.FailureText))
	}

	if len(item.Attachments) > 0 {
		fmt.Fprintf(&b, "[yellow]Screenshots:[white]\n")
		for _, shot := range item.Attachments {
			fmt.Fprintf(&b, "  %s\n", tview.Escape(analysis.ScreenshotLabel(item.TestName, shot)))
		}
		b.WriteString("\n")
	}

	if item.TestFile != "" && item.IsFailure() {
		fmt.Fprintf(&b, "[yellow]Revert:[white]\n%s\n", tview.Escape(remediation.RevertCommand(item.TestFile)))
	}

	return b.String()
}

func writeDetailRows(b *strings.Builder, d domain.FailureDetail, showRetry bool) {
	if showRetry {
		fmt.Fprintf(b, "  [cyan]Retry:[white] %d\n", d.Retry)
	}
	for _, field := range [][2]string{
		{"URL", d.URL},
		{"Expected CMP", d.ExpectedComponent},
		{"Action", d.AutoAction},
		{"Region", d.Region},
		{"Form Factor", d.FormFactor},
	} {
		if field[1] != "" {
			fmt.Fprintf(b, "  [cyan]%s:[white] %s\n", field[0], tview.Escape(field[1]))
		}
	}
	b.WriteString("\n")
}

func formatGroupDetails(group domain.FailureGroup, state *triage.State) string {
	var b strings.Builder
	files := group.TestFiles()
	fmt.Fprintf(&b, "[yellow]%d test case(s), %d test file(s)[white]\n\n", len(group.Items), len(files))
	for _, f := range files {
		mark := " "
		switch {
		case state.IsSelected(f):
			mark = "[red]R[white]"
		case state.IsReviewed(f):
			mark = "[gray]✓[white]"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, tview.Escape(f))
	}
	if len(files) > 0 && group.Reason != parser.SuccessReason {
		fmt.Fprintf(&b, "\n[yellow]Revert group:[white]\n%s\n", tview.Escape(remediation.BatchRevertCommand(files)))
	}
	return b.String()
}
