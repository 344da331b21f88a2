package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bborn/duedate/internal/clock"
	"github.com/bborn/duedate/internal/config"
	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/bborn/duedate/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// itemView is the JSON form of a checklist item.
type itemView struct {
	ID        string `json:"id"`
	Checklist string `json:"checklist,omitempty"`
	Title     string `json:"title"`
	Due       string `json:"due,omitempty"`
	Mode      string `json:"mode"`
	Label     string `json:"label"`
	Style     string `json:"style"`
}

func viewItem(it *db.ChecklistItem, now time.Time) itemView {
	v := itemView{
		ID:        it.ID,
		Checklist: it.Checklist,
		Title:     it.Title,
		Mode:      it.DueMode.String(),
		Style:     duedate.StyleNormal.String(),
	}
	if !it.Due.IsSet() {
		v.Label = duedate.ButtonLabel(duedate.None, now).Text
		return v
	}
	if it.DueMode == duedate.ModeDuration {
		v.Due = (time.Duration(it.Due.Millis()) * time.Millisecond).String()
		v.Label = duedate.OptionFromMillis(it.Due.Millis(), it.DueMode, now.Location()).Label
		return v
	}
	v.Due = it.Due.Time(now.Location()).Format(time.RFC3339)
	v.Label = duedate.ButtonLabel(it.Due, now).Text
	v.Style = duedate.StyleFor(duedate.Classify(it.Due, now)).String()
	return v
}

func newItemsCmd() *cobra.Command {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Manage checklist items",
	}
	itemsCmd.AddCommand(
		newItemsAddCmd(),
		newItemsListCmd(),
		newItemsDueCmd(),
		newItemsClearCmd(),
		newItemsRmCmd(),
		newItemsPickCmd(),
	)
	return itemsCmd
}

func newItemsAddCmd() *cobra.Command {
	var (
		dueFlag   string
		modeFlag  string
		checklist string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a checklist item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := duedate.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			var title string
			if len(args) > 0 {
				title = args[0]
			}
			if strings.TrimSpace(title) == "" {
				if !isInteractive() {
					return errors.New("title is required")
				}
				if err := promptItem(&title, &dueFlag, &checklist); err != nil {
					return err
				}
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			now := s.now()
			due, err := parseDue(dueFlag, mode, now)
			if err != nil {
				return err
			}
			if due.IsSet() && !s.cfg.Licensed() {
				return errors.New("due dates are not available on the " + s.cfg.Plan + " plan")
			}

			it := &db.ChecklistItem{Title: title, Checklist: checklist, Due: due, DueMode: mode}
			if err := s.db.CreateItem(it); err != nil {
				return err
			}

			if opts.json {
				return printJSON(viewItem(it, now))
			}
			msg := fmt.Sprintf("Created %s: %s", it.ID, it.Title)
			if due.IsSet() {
				msg += " (" + viewItem(it, now).Label + ")"
			}
			fmt.Println(successStyle.Render(msg))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dueFlag, "due", "d", "", "Due date (today, tomorrow, next week, in 3 days, 2024-06-01 ...)")
	cmd.Flags().StringVar(&modeFlag, "mode", "datetime", "Due mode: datetime or duration")
	cmd.Flags().StringVarP(&checklist, "checklist", "c", "", "Checklist name")
	return cmd
}

// promptItem asks for the item fields with a form.
func promptItem(title, due, checklist *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Checklist").
				Value(checklist),

			huh.NewInput().
				Title("Due").
				Description("e.g., tomorrow, in 3 days, 2024-06-01 09:00 (empty for none)").
				Value(due).
				Validate(func(s string) error {
					_, err := duedate.Parse(s, time.Now())
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
	return form.Run()
}

func newItemsListCmd() *cobra.Command {
	var (
		checklist   string
		onlyWithDue bool
		limit       int
		markdown    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklist items by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			items, err := s.db.ListItems(db.ListItemsOptions{
				Checklist:   checklist,
				OnlyWithDue: onlyWithDue,
				Limit:       limit,
			})
			if err != nil {
				return err
			}
			now := s.now()

			if opts.json {
				views := make([]itemView, 0, len(items))
				for _, it := range items {
					views = append(views, viewItem(it, now))
				}
				return printJSON(views)
			}

			if markdown {
				md := ui.RenderItemsMarkdown(items, now)
				if isTTY() {
					width, _, err := term.GetSize(int(os.Stdout.Fd()))
					if err != nil {
						width = 80
					}
					md = ui.RenderMarkdown(md, width)
				}
				fmt.Println(md)
				return nil
			}

			if len(items) == 0 {
				fmt.Println(dimStyle.Render("No items."))
				return nil
			}
			access := duedate.Access{Editable: false, Licensed: s.cfg.Licensed()}
			theme := ui.CurrentTheme()
			for _, it := range items {
				button := dimStyle.Render(viewItem(it, now).Label)
				if it.DueMode == duedate.ModeDateTime {
					button = ui.RenderButton(it.Due, now, access, theme)
				}
				fmt.Printf("%s  %s  %s\n", dimStyle.Render(it.ID), boldStyle.Render(it.Title), button)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&checklist, "checklist", "c", "", "Only items in this checklist")
	cmd.Flags().BoolVar(&onlyWithDue, "with-due", false, "Only items with a due date")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of items")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render as a markdown table")
	return cmd
}

func newItemsDueCmd() *cobra.Command {
	var modeFlag string
	cmd := &cobra.Command{
		Use:   "due <id> <when>",
		Short: "Set an item's due date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := duedate.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.cfg.Licensed() {
				return errors.New("due dates are not available on the " + s.cfg.Plan + " plan")
			}
			now := s.now()
			due, err := parseDue(args[1], mode, now)
			if err != nil {
				return err
			}
			if !due.IsSet() {
				return clearDue(s, args[0])
			}
			if err := s.db.SetItemDue(args[0], due, mode); err != nil {
				return err
			}
			it, err := s.db.GetItem(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(viewItem(it, now))
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("%s: %s", it.ID, viewItem(it, now).Label)))
			return nil
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", "datetime", "Due mode: datetime or duration")
	return cmd
}

func clearDue(s *session, id string) error {
	if err := s.db.ClearItemDue(id); err != nil {
		return err
	}
	if opts.json {
		return printJSON(map[string]string{"id": id, "due": "none"})
	}
	fmt.Println(successStyle.Render(id + ": no due date"))
	return nil
}

func newItemsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Remove an item's due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.cfg.Licensed() {
				return errors.New("due dates are not available on the " + s.cfg.Plan + " plan")
			}
			return clearDue(s, args[0])
		},
	}
}

func newItemsRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			it, err := s.db.GetItem(args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !isInteractive() {
					return errors.New("refusing to delete without --yes")
				}
				confirm := false
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Delete %q?", it.Title)).
							Affirmative("Delete").
							Negative("Cancel").
							Value(&confirm),
					),
				).WithTheme(huh.ThemeDracula()).Run()
				if err != nil {
					return err
				}
				if !confirm {
					fmt.Println(dimStyle.Render("Cancelled."))
					return nil
				}
			}

			if err := s.db.DeleteItem(it.ID); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Deleted " + it.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newItemsPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <id>",
		Short: "Choose an item's due date interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			it, err := s.db.GetItem(args[0])
			if err != nil {
				return err
			}

			kb, err := config.LoadKeybindings()
			if err != nil {
				newLogger("due").Warn("Ignoring keybindings file", "error", err)
			}

			model := ui.NewPickerModel(ui.PickerOptions{
				Due:          it.Due,
				Mode:         it.DueMode,
				Access:       duedate.Access{Editable: true, Licensed: s.cfg.Licensed()},
				Theme:        ui.CurrentTheme(),
				Keys:         ui.ApplyKeybindingsConfig(ui.DefaultKeyMap(), kb),
				Clock:        clock.Real{},
				Location:     s.cfg.Location,
				QuitOnChange: true,
			})
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return err
			}
			if !model.Changed() {
				return nil
			}

			if !model.Due().IsSet() {
				return clearDue(s, it.ID)
			}
			if err := s.db.SetItemDue(it.ID, model.Due(), model.Mode()); err != nil {
				return err
			}
			it.Due, it.DueMode = model.Due(), model.Mode()
			fmt.Println(successStyle.Render(fmt.Sprintf("%s: %s", it.ID, viewItem(it, s.now()).Label)))
			return nil
		},
	}
}
