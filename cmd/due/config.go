package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bborn/duedate/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change settings",
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Show settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			keys := config.Keys
			if len(args) == 1 {
				keys = args
			}
			values := make(map[string]string, len(keys))
			for _, k := range keys {
				v, err := s.cfg.Get(k)
				if err != nil {
					return err
				}
				values[k] = v
			}

			if opts.json {
				return printJSON(values)
			}
			for _, k := range keys {
				fmt.Printf("%s %s\n", boldStyle.Render(k+":"), values[k])
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Change a setting. Keys: plan (starter, professional, enterprise), theme, timezone.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			v, _ := s.cfg.Get(args[0])
			fmt.Println(successStyle.Render(fmt.Sprintf("%s = %s", args[0], v)))
			if args[0] == config.SettingPlan && os.Getenv("DUE_PLAN") != "" {
				fmt.Println(dimStyle.Render("Note: DUE_PLAN overrides the stored plan"))
			}
			return nil
		},
	}

	configCmd.AddCommand(getCmd, setCmd)
	return configCmd
}

func newKeybindingsCmd() *cobra.Command {
	kbCmd := &cobra.Command{
		Use:   "keybindings",
		Short: "Manage picker keybindings",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default keybindings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultKeybindingsConfigPath()
			if path == "" {
				return errors.New("cannot determine home directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefaultKeybindingsYAML()), 0644); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Wrote " + path))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	kbCmd.AddCommand(initCmd)
	return kbCmd
}
